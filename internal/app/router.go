package app

import (
	"github.com/gin-gonic/gin"

	"github.com/twobeats/twobeats-backend/internal/server"
)

func wireRouter(handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:        middlewareset.Auth,
		WorldCupHandler:       handlerset.WorldCup,
		RankingHandler:        handlerset.Ranking,
		CustomWorldCupHandler: handlerset.CustomWorldCup,
		RecommendationHandler: handlerset.Recommendation,
	})
}
