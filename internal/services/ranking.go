package services

import (
  "context"
  "fmt"
  "gorm.io/gorm"
  redisclient "github.com/twobeats/twobeats-backend/internal/clients/redis"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

const (
  leaderboardLimit  = 100
  popularChartLimit = 50
)

type RankingService interface {
  // Leaderboard is the hall-of-fame listing: top 100 by cumulative score,
  // optionally filtered to one genre. Musics with zero total never appear.
  Leaderboard(ctx context.Context, genre string) ([]*types.RankingEntry, error)
  // PopularChart is the worldcup chart page: top 50 across all genres.
  PopularChart(ctx context.Context) ([]*types.RankingEntry, error)
}

type rankingService struct {
  db         *gorm.DB
  log        *logger.Logger
  resultRepo repos.WorldCupResultRepo
  cache      redisclient.ChartCache
}

// NewRankingService builds the aggregator. cache may be nil (cache off).
func NewRankingService(db *gorm.DB, log *logger.Logger, resultRepo repos.WorldCupResultRepo, cache redisclient.ChartCache) RankingService {
  serviceLog := log.With("service", "RankingService")
  return &rankingService{
    db:         db,
    log:        serviceLog,
    resultRepo: resultRepo,
    cache:      cache,
  }
}

func (rs *rankingService) Leaderboard(ctx context.Context, genre string) ([]*types.RankingEntry, error) {
  if genre == "" {
    genre = types.GenreAll
  }
  return rs.cached(ctx, fmt.Sprintf("wc_ranking:%s", genre), genre, leaderboardLimit)
}

func (rs *rankingService) PopularChart(ctx context.Context) ([]*types.RankingEntry, error) {
  return rs.cached(ctx, "wc_popular", types.GenreAll, popularChartLimit)
}

func (rs *rankingService) cached(ctx context.Context, key, genre string, limit int) ([]*types.RankingEntry, error) {
  if rs.cache != nil {
    if entries, ok := rs.cache.Get(ctx, key); ok {
      return entries, nil
    }
  }

  entries, err := rs.resultRepo.Leaderboard(ctx, nil, genre, limit)
  if err != nil {
    return nil, err
  }

  if rs.cache != nil {
    rs.cache.Set(ctx, key, entries)
  }
  return entries, nil
}
