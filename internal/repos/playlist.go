package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type PlaylistRepo interface {
  Create(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error)
}

type playlistRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlaylistRepo(db *gorm.DB, baseLog *logger.Logger) PlaylistRepo {
  repoLog := baseLog.With("repo", "PlaylistRepo")
  return &playlistRepo{db: db, log: repoLog}
}

func (pr *playlistRepo) Create(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).
    Omit("Musics.*").
    Create(playlist).Error; err != nil {
    return nil, err
  }
  return playlist, nil
}
