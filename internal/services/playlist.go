package services

import (
  "context"
  "fmt"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

// Winners worth keeping: semifinalists and better.
const playlistRankCutoff = 4

type PlaylistService interface {
  // SaveWinners persists a finished game's rank <= 4 musics into a new
  // playlist owned by the given user.
  SaveWinners(ctx context.Context, gameID uuid.UUID, userID uuid.UUID) (*types.Playlist, error)
}

type playlistService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  gameRepo     repos.WorldCupGameRepo
  resultRepo   repos.WorldCupResultRepo
  playlistRepo repos.PlaylistRepo
}

func NewPlaylistService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, gameRepo repos.WorldCupGameRepo, resultRepo repos.WorldCupResultRepo, playlistRepo repos.PlaylistRepo) PlaylistService {
  serviceLog := log.With("service", "PlaylistService")
  return &playlistService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    gameRepo:     gameRepo,
    resultRepo:   resultRepo,
    playlistRepo: playlistRepo,
  }
}

func (ps *playlistService) SaveWinners(ctx context.Context, gameID uuid.UUID, userID uuid.UUID) (*types.Playlist, error) {
  user, err := ps.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, err
  }
  if user == nil {
    return nil, NewValidationError("unknown user %s", userID.String())
  }

  game, err := ps.gameRepo.GetByID(ctx, nil, gameID)
  if err != nil {
    return nil, err
  }
  if game == nil {
    return nil, NewValidationError("unknown game %s", gameID.String())
  }

  results, err := ps.resultRepo.ListByGame(ctx, nil, gameID)
  if err != nil {
    return nil, err
  }

  var winners []*types.Music
  for _, result := range results {
    if result.FinalRank > playlistRankCutoff {
      continue
    }
    if result.Music != nil {
      winners = append(winners, result.Music)
    }
  }
  if len(winners) == 0 {
    return nil, NewValidationError("game %s has no winners to save", gameID.String())
  }

  playlist := &types.Playlist{
    UserID: user.ID,
    Title:  fmt.Sprintf("Worldcup winners %s", time.Now().Format("2006-01-02")),
    Musics: winners,
  }
  if _, err := ps.playlistRepo.Create(ctx, nil, playlist); err != nil {
    return nil, &PersistenceError{Err: err}
  }

  ps.log.Info("Saved worldcup winners to playlist", "game_id", gameID, "playlist_id", playlist.ID, "musics", len(winners))
  return playlist, nil
}
