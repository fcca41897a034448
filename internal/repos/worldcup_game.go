package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type WorldCupGameRepo interface {
  Create(ctx context.Context, tx *gorm.DB, game *types.WorldCupGame) (*types.WorldCupGame, error)
  GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.WorldCupGame, error)
}

type worldCupGameRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWorldCupGameRepo(db *gorm.DB, baseLog *logger.Logger) WorldCupGameRepo {
  repoLog := baseLog.With("repo", "WorldCupGameRepo")
  return &worldCupGameRepo{db: db, log: repoLog}
}

func (gr *worldCupGameRepo) Create(ctx context.Context, tx *gorm.DB, game *types.WorldCupGame) (*types.WorldCupGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  if err := transaction.WithContext(ctx).Create(game).Error; err != nil {
    return nil, err
  }
  return game, nil
}

func (gr *worldCupGameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.WorldCupGame, error) {
  transaction := tx
  if transaction == nil {
    transaction = gr.db
  }

  var result types.WorldCupGame
  if err := transaction.WithContext(ctx).
    Where("id = ?", gameID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}
