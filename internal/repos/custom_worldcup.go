package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type CustomWorldCupRepo interface {
  Create(ctx context.Context, tx *gorm.DB, worldcup *types.CustomWorldCup) (*types.CustomWorldCup, error)
  // GetByAccessCode returns (nil, nil) when the code is unknown. Result
  // recording treats an unknown code as "no pool".
  GetByAccessCode(ctx context.Context, tx *gorm.DB, accessCode uuid.UUID) (*types.CustomWorldCup, error)
  MusicIDs(ctx context.Context, tx *gorm.DB, worldcupID uuid.UUID) ([]uuid.UUID, error)
}

type customWorldCupRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCustomWorldCupRepo(db *gorm.DB, baseLog *logger.Logger) CustomWorldCupRepo {
  repoLog := baseLog.With("repo", "CustomWorldCupRepo")
  return &customWorldCupRepo{db: db, log: repoLog}
}

func (cr *customWorldCupRepo) Create(ctx context.Context, tx *gorm.DB, worldcup *types.CustomWorldCup) (*types.CustomWorldCup, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  // Attach join rows only; the referenced musics already exist.
  if err := transaction.WithContext(ctx).
    Omit("Musics.*").
    Create(worldcup).Error; err != nil {
    return nil, err
  }
  return worldcup, nil
}

func (cr *customWorldCupRepo) GetByAccessCode(ctx context.Context, tx *gorm.DB, accessCode uuid.UUID) (*types.CustomWorldCup, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.CustomWorldCup
  if err := transaction.WithContext(ctx).
    Where("access_code = ?", accessCode).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (cr *customWorldCupRepo) MusicIDs(ctx context.Context, tx *gorm.DB, worldcupID uuid.UUID) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var musicIDs []uuid.UUID
  if err := transaction.WithContext(ctx).
    Table("custom_worldcup_musics").
    Where("custom_world_cup_id = ?", worldcupID).
    Pluck("music_id", &musicIDs).Error; err != nil {
    return nil, err
  }
  return musicIDs, nil
}
