package app

import (
	"github.com/twobeats/twobeats-backend/internal/logger"
	"github.com/twobeats/twobeats-backend/internal/middleware"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Token),
	}
}
