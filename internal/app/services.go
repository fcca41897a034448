package app

import (
	"gorm.io/gorm"

	redisclient "github.com/twobeats/twobeats-backend/internal/clients/redis"
	"github.com/twobeats/twobeats-backend/internal/logger"
	"github.com/twobeats/twobeats-backend/internal/services"
)

type Services struct {
	Token          services.TokenService
	Candidate      services.CandidateService
	Result         services.ResultService
	Ranking        services.RankingService
	Recommendation services.RecommendationService
	CustomWorldCup services.CustomWorldCupService
	Playlist       services.PlaylistService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	// The chart cache is optional; without REDIS_ADDR every chart read hits
	// the database.
	chartCache, err := redisclient.NewChartCache(log, cfg.ChartCacheTTL)
	if err != nil {
		log.Warn("Chart cache disabled", "error", err)
		chartCache = nil
	}

	return Services{
		Token:          services.NewTokenService(log, cfg.JWTSecretKey),
		Candidate:      services.NewCandidateService(db, log, reposet.Music, reposet.CustomWorldCup, nil),
		Result:         services.NewResultService(db, log, reposet.User, reposet.CustomWorldCup, reposet.WorldCupGame, reposet.WorldCupResult),
		Ranking:        services.NewRankingService(db, log, reposet.WorldCupResult, chartCache),
		Recommendation: services.NewRecommendationService(db, log, reposet.Music, reposet.MusicLike, reposet.WorldCupResult),
		CustomWorldCup: services.NewCustomWorldCupService(db, log, reposet.CustomWorldCup, reposet.Music, reposet.User),
		Playlist:       services.NewPlaylistService(db, log, reposet.User, reposet.WorldCupGame, reposet.WorldCupResult, reposet.Playlist),
	}
}
