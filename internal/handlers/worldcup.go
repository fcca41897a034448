package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/requestdata"
  "github.com/twobeats/twobeats-backend/internal/services"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type WorldCupHandler struct {
  log                   *logger.Logger
  candidateService      services.CandidateService
  resultService         services.ResultService
  recommendationService services.RecommendationService
  playlistService       services.PlaylistService
}

func NewWorldCupHandler(log *logger.Logger, candidateService services.CandidateService, resultService services.ResultService, recommendationService services.RecommendationService, playlistService services.PlaylistService) *WorldCupHandler {
  return &WorldCupHandler{
    log:                   log.With("handler", "WorldCupHandler"),
    candidateService:      candidateService,
    resultService:         resultService,
    recommendationService: recommendationService,
    playlistService:       playlistService,
  }
}

// CandidateView is the item summary the bracket page consumes.
type CandidateView struct {
  ID        uuid.UUID `json:"id"`
  Title     string    `json:"title"`
  Singer    string    `json:"singer"`
  MusicType string    `json:"music_type"`
  Thumbnail string    `json:"thumbnail"`
}

func toCandidateViews(musics []*types.Music) []CandidateView {
  views := make([]CandidateView, 0, len(musics))
  for _, music := range musics {
    views = append(views, CandidateView{
      ID:        music.ID,
      Title:     music.Title,
      Singer:    music.Singer,
      MusicType: music.MusicType,
      Thumbnail: music.Thumbnail,
    })
  }
  return views
}

// GetCandidates handles GET /api/worldcup/candidates.
func (h *WorldCupHandler) GetCandidates(c *gin.Context) {
  genre := c.DefaultQuery("genre", types.GenreAll)
  countStr := c.DefaultQuery("count", "16")
  count, err := strconv.Atoi(countStr)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("count must be an integer, got %q", countStr))
    return
  }

  input := services.SelectionInput{
    Genre: genre,
    Count: count,
    Mode:  services.ParseSelectionMode(c.DefaultQuery("sort", "random")),
  }
  if codeStr := c.Query("custom_code"); codeStr != "" {
    code, err := uuid.Parse(codeStr)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("custom_code must be a uuid, got %q", codeStr))
      return
    }
    input.CustomCode = &code
  }

  candidates, err := h.candidateService.Select(c.Request.Context(), input)
  if err != nil {
    h.log.Warn("Candidate selection failed", "error", err, "genre", genre, "count", count)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"candidates": toCandidateViews(candidates)})
}

type saveResultRequest struct {
  UserUID     string `json:"user_uid"`
  TotalRounds int    `json:"total_rounds"`
  Results     []struct {
    MusicID uuid.UUID `json:"music_id"`
    Rank    int       `json:"rank"`
  } `json:"results"`
  CustomCode string `json:"custom_code"`
}

// SaveResult handles POST /api/worldcup/save.
func (h *WorldCupHandler) SaveResult(c *gin.Context) {
  var req saveResultRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", err)
    return
  }

  input := services.RecordGameInput{TotalRounds: req.TotalRounds}
  for _, entry := range req.Results {
    input.Results = append(input.Results, services.ResultEntry{MusicID: entry.MusicID, Rank: entry.Rank})
  }
  if req.UserUID != "" {
    userUID, err := uuid.Parse(req.UserUID)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("user_uid must be a uuid, got %q", req.UserUID))
      return
    }
    input.UserUID = &userUID
  }
  if req.CustomCode != "" {
    code, err := uuid.Parse(req.CustomCode)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("custom_code must be a uuid, got %q", req.CustomCode))
      return
    }
    input.CustomCode = &code
  }

  gameID, err := h.resultService.RecordGame(c.Request.Context(), input)
  if err != nil {
    h.log.Error("SaveResult failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"message": "saved", "game_id": gameID})
}

// GetResult handles GET /api/worldcup/result/:game_id. Recommendations use
// the collaborative strategy, falling back to same-genre random picks when
// no similar users exist yet.
func (h *WorldCupHandler) GetResult(c *gin.Context) {
  gameID, err := uuid.Parse(c.Param("game_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("game_id must be a uuid"))
    return
  }

  detail, err := h.resultService.GameDetail(c.Request.Context(), gameID)
  if err != nil {
    h.log.Error("GetResult failed", "error", err, "game_id", gameID)
    RespondServiceError(c, err)
    return
  }
  if detail == nil {
    RespondError(c, http.StatusNotFound, "not_found", services.NewValidationError("unknown game %s", gameID.String()))
    return
  }

  var recommendations []*types.Music
  if detail.Winner != nil {
    recommendations, err = h.recommendationService.Collaborative(c.Request.Context(), detail.Winner.MusicID, detail.Game.UserID)
    if err != nil {
      h.log.Warn("Collaborative recommendation failed", "error", err, "game_id", gameID)
      recommendations = nil
    }
    if len(recommendations) == 0 {
      recommendations, err = h.recommendationService.SameGenreRandom(c.Request.Context(), detail.Winner.MusicID)
      if err != nil {
        h.log.Warn("Fallback recommendation failed", "error", err, "game_id", gameID)
        recommendations = nil
      }
    }
  }

  RespondOK(c, gin.H{
    "game":            detail.Game,
    "winner":          detail.Winner,
    "others":          detail.Others,
    "recommendations": toCandidateViews(recommendations),
  })
}

// SavePlaylist handles POST /api/worldcup/result/:game_id/playlist. Requires
// authentication.
func (h *WorldCupHandler) SavePlaylist(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  gameID, err := uuid.Parse(c.Param("game_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("game_id must be a uuid"))
    return
  }

  playlist, err := h.playlistService.SaveWinners(c.Request.Context(), gameID, rd.UserID)
  if err != nil {
    h.log.Error("SavePlaylist failed", "error", err, "game_id", gameID, "user_id", rd.UserID)
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"message": "saved", "playlist_id": playlist.ID})
}
