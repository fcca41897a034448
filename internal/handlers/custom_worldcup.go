package handlers

import (
  "fmt"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/requestdata"
  "github.com/twobeats/twobeats-backend/internal/services"
)

type CustomWorldCupHandler struct {
  log           *logger.Logger
  customService services.CustomWorldCupService
}

func NewCustomWorldCupHandler(log *logger.Logger, customService services.CustomWorldCupService) *CustomWorldCupHandler {
  return &CustomWorldCupHandler{
    log:           log.With("handler", "CustomWorldCupHandler"),
    customService: customService,
  }
}

type createCustomRequest struct {
  Title    string      `json:"title"`
  MusicIDs []uuid.UUID `json:"music_ids"`
}

// Create handles POST /api/worldcup/custom. Requires authentication; the
// caller becomes the pool's creator.
func (h *CustomWorldCupHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var req createCustomRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", err)
    return
  }

  worldcup, err := h.customService.Create(c.Request.Context(), services.CreateCustomInput{
    Title:     req.Title,
    MusicIDs:  req.MusicIDs,
    CreatorID: rd.UserID,
  })
  if err != nil {
    h.log.Warn("Create custom worldcup failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, err)
    return
  }

  RespondCreated(c, gin.H{
    "custom_worldcup_id": worldcup.ID,
    "access_code":        worldcup.AccessCode,
    "share_url":          fmt.Sprintf("/worldcup/custom/%s", worldcup.AccessCode),
  })
}

// GetByCode handles GET /api/worldcup/custom/:access_code — the custom play
// page bootstrap. Candidates are then fetched with custom_code set.
func (h *CustomWorldCupHandler) GetByCode(c *gin.Context) {
  accessCode, err := uuid.Parse(c.Param("access_code"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("access_code must be a uuid"))
    return
  }

  worldcup, err := h.customService.GetByAccessCode(c.Request.Context(), accessCode)
  if err != nil {
    h.log.Error("GetByCode failed", "error", err, "access_code", accessCode)
    RespondServiceError(c, err)
    return
  }
  if worldcup == nil {
    RespondError(c, http.StatusNotFound, "not_found", services.NewValidationError("unknown custom worldcup code %s", accessCode.String()))
    return
  }
  RespondOK(c, gin.H{"custom_worldcup": worldcup})
}
