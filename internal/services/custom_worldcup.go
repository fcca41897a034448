package services

import (
  "context"
  "strings"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

// A bracket needs at least one full first-round pairing on each side.
const minCustomPoolSize = 4

type CreateCustomInput struct {
  Title     string
  MusicIDs  []uuid.UUID
  CreatorID uuid.UUID
}

type CustomWorldCupService interface {
  Create(ctx context.Context, input CreateCustomInput) (*types.CustomWorldCup, error)
  // GetByAccessCode returns (nil, nil) for an unknown code.
  GetByAccessCode(ctx context.Context, accessCode uuid.UUID) (*types.CustomWorldCup, error)
}

type customWorldCupService struct {
  db         *gorm.DB
  log        *logger.Logger
  customRepo repos.CustomWorldCupRepo
  musicRepo  repos.MusicRepo
  userRepo   repos.UserRepo
}

func NewCustomWorldCupService(db *gorm.DB, log *logger.Logger, customRepo repos.CustomWorldCupRepo, musicRepo repos.MusicRepo, userRepo repos.UserRepo) CustomWorldCupService {
  serviceLog := log.With("service", "CustomWorldCupService")
  return &customWorldCupService{
    db:         db,
    log:        serviceLog,
    customRepo: customRepo,
    musicRepo:  musicRepo,
    userRepo:   userRepo,
  }
}

func (cs *customWorldCupService) Create(ctx context.Context, input CreateCustomInput) (*types.CustomWorldCup, error) {
  title := strings.TrimSpace(input.Title)
  if title == "" {
    return nil, NewValidationError("title must not be empty")
  }

  seen := map[uuid.UUID]bool{}
  musicIDs := make([]uuid.UUID, 0, len(input.MusicIDs))
  for _, musicID := range input.MusicIDs {
    if musicID == uuid.Nil || seen[musicID] {
      continue
    }
    seen[musicID] = true
    musicIDs = append(musicIDs, musicID)
  }
  if len(musicIDs) < minCustomPoolSize {
    return nil, NewValidationError("a custom worldcup needs at least %d distinct musics, got %d", minCustomPoolSize, len(musicIDs))
  }

  musics, err := cs.musicRepo.GetByIDs(ctx, nil, musicIDs)
  if err != nil {
    return nil, err
  }
  if len(musics) != len(musicIDs) {
    return nil, NewValidationError("some musics do not exist")
  }

  creator, err := cs.userRepo.GetByID(ctx, nil, input.CreatorID)
  if err != nil {
    return nil, err
  }
  if creator == nil {
    return nil, NewValidationError("unknown creator %s", input.CreatorID.String())
  }

  worldcup := &types.CustomWorldCup{
    Title:     title,
    CreatorID: creator.ID,
    Musics:    musics,
  }
  if _, err := cs.customRepo.Create(ctx, nil, worldcup); err != nil {
    return nil, &PersistenceError{Err: err}
  }

  cs.log.Info("Created custom worldcup", "custom_worldcup_id", worldcup.ID, "musics", len(musics))
  return worldcup, nil
}

func (cs *customWorldCupService) GetByAccessCode(ctx context.Context, accessCode uuid.UUID) (*types.CustomWorldCup, error) {
  return cs.customRepo.GetByAccessCode(ctx, nil, accessCode)
}
