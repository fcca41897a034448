package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type WorldCupResultRepo interface {
  CreateBulk(ctx context.Context, tx *gorm.DB, results []*types.WorldCupResult) ([]*types.WorldCupResult, error)
  ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) ([]*types.WorldCupResult, error)
  // ChampionUserIDs returns the distinct owners of games that crowned the
  // given music champion (final rank 1). Anonymous games carry no owner and
  // are skipped; excludeUserID, when non-nil, is removed from the set.
  ChampionUserIDs(ctx context.Context, tx *gorm.DB, musicID uuid.UUID, excludeUserID *uuid.UUID) ([]uuid.UUID, error)
  // ChampionCounts counts, per music, how many of the given users crowned it
  // champion. A user crowning the same music in several games counts once.
  ChampionCounts(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int, error)
  // Leaderboard aggregates cumulative score and champion count per music,
  // excluding musics whose total is zero. genre may be types.GenreAll.
  Leaderboard(ctx context.Context, tx *gorm.DB, genre string, limit int) ([]*types.RankingEntry, error)
}

type worldCupResultRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWorldCupResultRepo(db *gorm.DB, baseLog *logger.Logger) WorldCupResultRepo {
  repoLog := baseLog.With("repo", "WorldCupResultRepo")
  return &worldCupResultRepo{db: db, log: repoLog}
}

func (rr *worldCupResultRepo) CreateBulk(ctx context.Context, tx *gorm.DB, results []*types.WorldCupResult) ([]*types.WorldCupResult, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  if len(results) == 0 {
    return []*types.WorldCupResult{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *worldCupResultRepo) ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) ([]*types.WorldCupResult, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  var results []*types.WorldCupResult
  if err := transaction.WithContext(ctx).
    Preload("Music").
    Where("game_id = ?", gameID).
    Order("final_rank ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *worldCupResultRepo) ChampionUserIDs(ctx context.Context, tx *gorm.DB, musicID uuid.UUID, excludeUserID *uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.WorldCupResult{}).
    Distinct("world_cup_game.user_id").
    Joins("JOIN world_cup_game ON world_cup_game.id = world_cup_result.game_id").
    Where("world_cup_result.music_id = ?", musicID).
    Where("world_cup_result.final_rank = ?", 1).
    Where("world_cup_game.user_id IS NOT NULL")
  if excludeUserID != nil {
    query = query.Where("world_cup_game.user_id <> ?", *excludeUserID)
  }

  var userIDs []uuid.UUID
  if err := query.Pluck("world_cup_game.user_id", &userIDs).Error; err != nil {
    return nil, err
  }
  return userIDs, nil
}

type musicCountRow struct {
  MusicID uuid.UUID `gorm:"column:music_id"`
  Cnt     int       `gorm:"column:cnt"`
}

func (rr *worldCupResultRepo) ChampionCounts(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  counts := map[uuid.UUID]int{}
  if len(userIDs) == 0 {
    return counts, nil
  }

  var rows []musicCountRow
  if err := transaction.WithContext(ctx).
    Model(&types.WorldCupResult{}).
    Select("world_cup_result.music_id AS music_id, COUNT(DISTINCT world_cup_game.user_id) AS cnt").
    Joins("JOIN world_cup_game ON world_cup_game.id = world_cup_result.game_id").
    Where("world_cup_game.user_id IN ?", userIDs).
    Where("world_cup_result.final_rank = ?", 1).
    Group("world_cup_result.music_id").
    Scan(&rows).Error; err != nil {
    return nil, err
  }

  for _, row := range rows {
    counts[row.MusicID] = row.Cnt
  }
  return counts, nil
}

func (rr *worldCupResultRepo) Leaderboard(ctx context.Context, tx *gorm.DB, genre string, limit int) ([]*types.RankingEntry, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.WorldCupResult{}).
    Select(`music.id AS music_id,
      music.music_title AS title,
      music.music_singer AS singer,
      music.music_type AS music_type,
      music.music_thumbnail AS thumbnail,
      music.music_created_at AS created_at,
      COALESCE(SUM(world_cup_result.score), 0) AS total_score,
      COUNT(CASE WHEN world_cup_result.final_rank = 1 THEN 1 END) AS win_count`).
    Joins("JOIN music ON music.id = world_cup_result.music_id")
  if genre != types.GenreAll {
    query = query.Where("music.music_type = ?", genre)
  }

  var entries []*types.RankingEntry
  if err := query.
    Group("music.id").
    Having("COALESCE(SUM(world_cup_result.score), 0) > 0").
    Order("total_score DESC, win_count DESC, created_at DESC").
    Limit(limit).
    Scan(&entries).Error; err != nil {
    return nil, err
  }
  return entries, nil
}
