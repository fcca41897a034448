package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/twobeats/twobeats-backend/internal/handlers"
  "github.com/twobeats/twobeats-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware        *middleware.AuthMiddleware
  WorldCupHandler       *handlers.WorldCupHandler
  RankingHandler        *handlers.RankingHandler
  CustomWorldCupHandler *handlers.CustomWorldCupHandler
  RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.OptionalAuth())
  {
    api.GET("/worldcup/candidates", cfg.WorldCupHandler.GetCandidates)
    api.POST("/worldcup/save", cfg.WorldCupHandler.SaveResult)
    api.GET("/worldcup/result/:game_id", cfg.WorldCupHandler.GetResult)
    api.GET("/worldcup/ranking", cfg.RankingHandler.Ranking)
    api.GET("/worldcup/chart", cfg.RankingHandler.PopularChart)
    api.GET("/worldcup/custom/:access_code", cfg.CustomWorldCupHandler.GetByCode)
    api.GET("/music/:music_id/related", cfg.RecommendationHandler.Related)
  }

  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  {
    protected.POST("/worldcup/custom", cfg.CustomWorldCupHandler.Create)
    protected.POST("/worldcup/result/:game_id/playlist", cfg.WorldCupHandler.SavePlaylist)
  }

  return router
}
