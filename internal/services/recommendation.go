package services

import (
  "context"
  "sort"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

const recommendLimit = 5

type RecommendationService interface {
  // Collaborative recommends up to 5 musics favored by "similar users":
  // those whose own games crowned the given winner champion. An empty
  // similar-user set yields an empty slice, not an error; the caller falls
  // back to SameGenreRandom.
  Collaborative(ctx context.Context, winnerID uuid.UUID, excludeUserID *uuid.UUID) ([]*types.Music, error)
  // SameGenreRandom is the fallback: random same-genre musics, winner
  // excluded, capped at 5.
  SameGenreRandom(ctx context.Context, winnerID uuid.UUID) ([]*types.Music, error)
  // TagOverlap is an independent strategy for the related-songs surface:
  // same genre, at least one shared tag, ordered by overlap then likes.
  TagOverlap(ctx context.Context, winnerID uuid.UUID) ([]*types.Music, error)
}

type recommendationService struct {
  db         *gorm.DB
  log        *logger.Logger
  musicRepo  repos.MusicRepo
  likeRepo   repos.MusicLikeRepo
  resultRepo repos.WorldCupResultRepo
}

func NewRecommendationService(db *gorm.DB, log *logger.Logger, musicRepo repos.MusicRepo, likeRepo repos.MusicLikeRepo, resultRepo repos.WorldCupResultRepo) RecommendationService {
  serviceLog := log.With("service", "RecommendationService")
  return &recommendationService{
    db:         db,
    log:        serviceLog,
    musicRepo:  musicRepo,
    likeRepo:   likeRepo,
    resultRepo: resultRepo,
  }
}

func (rs *recommendationService) Collaborative(ctx context.Context, winnerID uuid.UUID, excludeUserID *uuid.UUID) ([]*types.Music, error) {
  similarUsers, err := rs.resultRepo.ChampionUserIDs(ctx, nil, winnerID, excludeUserID)
  if err != nil {
    return nil, err
  }
  if len(similarUsers) == 0 {
    return []*types.Music{}, nil
  }

  likeCounts, err := rs.likeRepo.LikeCounts(ctx, nil, similarUsers)
  if err != nil {
    return nil, err
  }
  championCounts, err := rs.resultRepo.ChampionCounts(ctx, nil, similarUsers)
  if err != nil {
    return nil, err
  }

  // Combined popularity among similar users: liking users plus crowning
  // users, one point per user either way.
  combined := map[uuid.UUID]int{}
  for musicID, cnt := range likeCounts {
    combined[musicID] += cnt
  }
  for musicID, cnt := range championCounts {
    combined[musicID] += cnt
  }
  delete(combined, winnerID)

  if len(combined) == 0 {
    return []*types.Music{}, nil
  }

  ranked := make([]uuid.UUID, 0, len(combined))
  for musicID := range combined {
    ranked = append(ranked, musicID)
  }
  sort.Slice(ranked, func(i, j int) bool {
    if combined[ranked[i]] != combined[ranked[j]] {
      return combined[ranked[i]] > combined[ranked[j]]
    }
    return ranked[i].String() < ranked[j].String()
  })
  if len(ranked) > recommendLimit {
    ranked = ranked[:recommendLimit]
  }

  musics, err := rs.musicRepo.GetByIDs(ctx, nil, ranked)
  if err != nil {
    return nil, err
  }

  // GetByIDs gives no ordering guarantee; restore the score ordering.
  byID := map[uuid.UUID]*types.Music{}
  for _, music := range musics {
    byID[music.ID] = music
  }
  ordered := make([]*types.Music, 0, len(ranked))
  for _, musicID := range ranked {
    if music, ok := byID[musicID]; ok {
      ordered = append(ordered, music)
    }
  }
  return ordered, nil
}

func (rs *recommendationService) SameGenreRandom(ctx context.Context, winnerID uuid.UUID) ([]*types.Music, error) {
  winner, err := rs.musicRepo.GetByID(ctx, nil, winnerID)
  if err != nil {
    return nil, err
  }
  if winner == nil {
    return nil, NewValidationError("unknown music %s", winnerID.String())
  }
  return rs.musicRepo.ListRandom(ctx, nil, winner.MusicType, nil, []uuid.UUID{winnerID}, recommendLimit)
}

func (rs *recommendationService) TagOverlap(ctx context.Context, winnerID uuid.UUID) ([]*types.Music, error) {
  winner, err := rs.musicRepo.GetByID(ctx, nil, winnerID)
  if err != nil {
    return nil, err
  }
  if winner == nil {
    return nil, NewValidationError("unknown music %s", winnerID.String())
  }
  return rs.musicRepo.ListByTagOverlap(ctx, nil, winnerID, winner.MusicType, recommendLimit)
}
