package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/services"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type RankingHandler struct {
  log            *logger.Logger
  rankingService services.RankingService
}

func NewRankingHandler(log *logger.Logger, rankingService services.RankingService) *RankingHandler {
  return &RankingHandler{
    log:            log.With("handler", "RankingHandler"),
    rankingService: rankingService,
  }
}

// Ranking handles GET /api/worldcup/ranking — the hall of fame.
func (h *RankingHandler) Ranking(c *gin.Context) {
  genre := c.DefaultQuery("genre", types.GenreAll)
  entries, err := h.rankingService.Leaderboard(c.Request.Context(), genre)
  if err != nil {
    h.log.Error("Ranking failed", "error", err, "genre", genre)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "rankings":       entries,
    "selected_genre": genre,
    "genres":         types.GenreChoices,
  })
}

// PopularChart handles GET /api/worldcup/chart.
func (h *RankingHandler) PopularChart(c *gin.Context) {
  entries, err := h.rankingService.PopularChart(c.Request.Context())
  if err != nil {
    h.log.Error("PopularChart failed", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "musics":      entries,
    "chart_type":  "wc_popular",
    "chart_title": "worldcup top chart",
  })
}
