package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/twobeats/twobeats-backend/internal/services"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
  c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps the worldcup error taxonomy onto HTTP statuses.
func RespondServiceError(c *gin.Context, err error) {
  var validationErr *services.ValidationError
  if errors.As(err, &validationErr) {
    RespondError(c, http.StatusBadRequest, "validation_failed", err)
    return
  }
  var insufficientErr *services.InsufficientCandidatesError
  if errors.As(err, &insufficientErr) {
    RespondError(c, http.StatusBadRequest, "insufficient_candidates", err)
    return
  }
  var persistenceErr *services.PersistenceError
  if errors.As(err, &persistenceErr) {
    RespondError(c, http.StatusInternalServerError, "persistence_failed", err)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
