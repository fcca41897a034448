package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

// MusicLikeRepo reads the "user liked music" preference edges. The worldcup
// core only consumes them; like toggling lives with the explore surface.
type MusicLikeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, likes []*types.MusicLike) ([]*types.MusicLike, error)
  // LikeCounts counts, per music, how many of the given users liked it.
  LikeCounts(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type musicLikeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMusicLikeRepo(db *gorm.DB, baseLog *logger.Logger) MusicLikeRepo {
  repoLog := baseLog.With("repo", "MusicLikeRepo")
  return &musicLikeRepo{db: db, log: repoLog}
}

func (lr *musicLikeRepo) Create(ctx context.Context, tx *gorm.DB, likes []*types.MusicLike) ([]*types.MusicLike, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(likes) == 0 {
    return []*types.MusicLike{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&likes).Error; err != nil {
    return nil, err
  }
  return likes, nil
}

func (lr *musicLikeRepo) LikeCounts(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  counts := map[uuid.UUID]int{}
  if len(userIDs) == 0 {
    return counts, nil
  }

  var rows []musicCountRow
  if err := transaction.WithContext(ctx).
    Model(&types.MusicLike{}).
    Select("music_id AS music_id, COUNT(*) AS cnt").
    Where("user_id IN ?", userIDs).
    Group("music_id").
    Scan(&rows).Error; err != nil {
    return nil, err
  }

  for _, row := range rows {
    counts[row.MusicID] = row.Cnt
  }
  return counts, nil
}
