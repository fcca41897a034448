package app

import (
	"github.com/twobeats/twobeats-backend/internal/handlers"
	"github.com/twobeats/twobeats-backend/internal/logger"
)

type Handlers struct {
	WorldCup       *handlers.WorldCupHandler
	Ranking        *handlers.RankingHandler
	CustomWorldCup *handlers.CustomWorldCupHandler
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		WorldCup:       handlers.NewWorldCupHandler(log, serviceset.Candidate, serviceset.Result, serviceset.Recommendation, serviceset.Playlist),
		Ranking:        handlers.NewRankingHandler(log, serviceset.Ranking),
		CustomWorldCup: handlers.NewCustomWorldCupHandler(log, serviceset.CustomWorldCup),
		Recommendation: handlers.NewRecommendationHandler(log, serviceset.Recommendation),
	}
}
