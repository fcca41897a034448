package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/services"
)

type RecommendationHandler struct {
  log                   *logger.Logger
  recommendationService services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendationService services.RecommendationService) *RecommendationHandler {
  return &RecommendationHandler{
    log:                   log.With("handler", "RecommendationHandler"),
    recommendationService: recommendationService,
  }
}

// Related handles GET /api/music/:music_id/related — the detail page's
// related-songs strip, driven by tag overlap rather than play history.
func (h *RecommendationHandler) Related(c *gin.Context) {
  musicID, err := uuid.Parse(c.Param("music_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "validation_failed", services.NewValidationError("music_id must be a uuid"))
    return
  }

  related, err := h.recommendationService.TagOverlap(c.Request.Context(), musicID)
  if err != nil {
    h.log.Warn("Related lookup failed", "error", err, "music_id", musicID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"related": toCandidateViews(related)})
}
