package services

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

// scoreByRank is the fixed rank-to-score table. Ranks outside the table
// score 0; they are stored as played (a rank of 3 is accepted and simply
// earns nothing).
var scoreByRank = map[int]int{
  1:  50,
  2:  30,
  4:  10,
  8:  5,
  16: 0,
}

func ScoreForRank(rank int) int {
  return scoreByRank[rank]
}

type ResultEntry struct {
  MusicID uuid.UUID `json:"music_id"`
  Rank    int       `json:"rank"`
}

type RecordGameInput struct {
  UserUID     *uuid.UUID
  TotalRounds int
  Results     []ResultEntry
  CustomCode  *uuid.UUID
}

// GameDetail is one finished game with its rows split for the result page:
// the champion first, everyone else in rank order after.
type GameDetail struct {
  Game   *types.WorldCupGame
  Winner *types.WorldCupResult
  Others []*types.WorldCupResult
}

type ResultService interface {
  // RecordGame persists one finished bracket: the game header plus all
  // result rows in a single transaction. Unknown user uids and unknown
  // custom codes degrade to anonymous / no pool rather than failing.
  RecordGame(ctx context.Context, input RecordGameInput) (uuid.UUID, error)
  // GameDetail returns (nil, nil) for an unknown game id.
  GameDetail(ctx context.Context, gameID uuid.UUID) (*GameDetail, error)
}

type resultService struct {
  db         *gorm.DB
  log        *logger.Logger
  userRepo   repos.UserRepo
  customRepo repos.CustomWorldCupRepo
  gameRepo   repos.WorldCupGameRepo
  resultRepo repos.WorldCupResultRepo
}

func NewResultService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, customRepo repos.CustomWorldCupRepo, gameRepo repos.WorldCupGameRepo, resultRepo repos.WorldCupResultRepo) ResultService {
  serviceLog := log.With("service", "ResultService")
  return &resultService{
    db:         db,
    log:        serviceLog,
    userRepo:   userRepo,
    customRepo: customRepo,
    gameRepo:   gameRepo,
    resultRepo: resultRepo,
  }
}

func (rs *resultService) RecordGame(ctx context.Context, input RecordGameInput) (uuid.UUID, error) {
  if len(input.Results) == 0 {
    return uuid.Nil, NewValidationError("results must not be empty")
  }
  if input.TotalRounds <= 0 {
    return uuid.Nil, NewValidationError("total_rounds must be a positive integer, got %d", input.TotalRounds)
  }
  for _, entry := range input.Results {
    if entry.Rank <= 0 {
      return uuid.Nil, NewValidationError("rank must be a positive integer, got %d", entry.Rank)
    }
    if entry.MusicID == uuid.Nil {
      return uuid.Nil, NewValidationError("music_id must be set")
    }
  }

  userID, err := rs.resolveUser(ctx, input.UserUID)
  if err != nil {
    return uuid.Nil, err
  }
  customID, err := rs.resolveCustom(ctx, input.CustomCode)
  if err != nil {
    return uuid.Nil, err
  }

  game := &types.WorldCupGame{
    UserID:           userID,
    TotalRounds:      input.TotalRounds,
    CustomWorldCupID: customID,
  }

  txErr := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, err := rs.gameRepo.Create(ctx, tx, game); err != nil {
      return err
    }

    results := make([]*types.WorldCupResult, 0, len(input.Results))
    for _, entry := range input.Results {
      results = append(results, &types.WorldCupResult{
        GameID:    game.ID,
        MusicID:   entry.MusicID,
        FinalRank: entry.Rank,
        Score:     ScoreForRank(entry.Rank),
      })
    }

    if _, err := rs.resultRepo.CreateBulk(ctx, tx, results); err != nil {
      return err
    }
    return nil
  })
  if txErr != nil {
    rs.log.Error("RecordGame transaction failed", "error", txErr)
    return uuid.Nil, &PersistenceError{Err: txErr}
  }

  rs.log.Info("Recorded worldcup game", "game_id", game.ID, "results", len(input.Results))
  return game.ID, nil
}

func (rs *resultService) GameDetail(ctx context.Context, gameID uuid.UUID) (*GameDetail, error) {
  game, err := rs.gameRepo.GetByID(ctx, nil, gameID)
  if err != nil {
    return nil, err
  }
  if game == nil {
    return nil, nil
  }

  results, err := rs.resultRepo.ListByGame(ctx, nil, gameID)
  if err != nil {
    return nil, err
  }

  detail := &GameDetail{Game: game}
  if len(results) > 0 {
    detail.Winner = results[0]
    detail.Others = results[1:]
  }
  return detail, nil
}

// resolveUser maps an unknown or absent uid to an anonymous game.
func (rs *resultService) resolveUser(ctx context.Context, userUID *uuid.UUID) (*uuid.UUID, error) {
  if userUID == nil {
    return nil, nil
  }
  user, err := rs.userRepo.GetByID(ctx, nil, *userUID)
  if err != nil {
    return nil, &PersistenceError{Err: err}
  }
  if user == nil {
    rs.log.Debug("Unknown user uid on save, recording anonymous game", "user_uid", userUID.String())
    return nil, nil
  }
  id := user.ID
  return &id, nil
}

// resolveCustom maps an unknown or absent access code to "no pool".
func (rs *resultService) resolveCustom(ctx context.Context, customCode *uuid.UUID) (*uuid.UUID, error) {
  if customCode == nil {
    return nil, nil
  }
  worldcup, err := rs.customRepo.GetByAccessCode(ctx, nil, *customCode)
  if err != nil {
    return nil, &PersistenceError{Err: err}
  }
  if worldcup == nil {
    rs.log.Debug("Unknown custom worldcup code on save, recording without pool", "custom_code", customCode.String())
    return nil, nil
  }
  id := worldcup.ID
  return &id, nil
}
