package services

import (
  "context"
  "errors"
  "fmt"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

func newResultService(t *testing.T, db *gorm.DB) ResultService {
  t.Helper()
  log := newTestLogger()
  return NewResultService(
    db,
    log,
    repos.NewUserRepo(db, log),
    repos.NewCustomWorldCupRepo(db, log),
    repos.NewWorldCupGameRepo(db, log),
    repos.NewWorldCupResultRepo(db, log),
  )
}

func TestScoreForRank(t *testing.T) {
  cases := []struct {
    rank int
    want int
  }{
    {1, 50},
    {2, 30},
    {4, 10},
    {8, 5},
    {16, 0},
    {3, 0},
    {99, 0},
  }
  for _, tc := range cases {
    if got := ScoreForRank(tc.rank); got != tc.want {
      t.Fatalf("ScoreForRank(%d)=%d, want %d", tc.rank, got, tc.want)
    }
  }
}

func TestRecordGameStoresDerivedScores(t *testing.T) {
  db := newTestDB(t)
  musics := seedMusics(t, db, "ballad", 4)
  rs := newResultService(t, db)

  gameID, err := rs.RecordGame(context.Background(), RecordGameInput{
    TotalRounds: 16,
    Results: []ResultEntry{
      {MusicID: musics[0].ID, Rank: 1},
      {MusicID: musics[1].ID, Rank: 2},
      {MusicID: musics[2].ID, Rank: 4},
      {MusicID: musics[3].ID, Rank: 4},
    },
  })
  if err != nil {
    t.Fatalf("RecordGame: %v", err)
  }
  if gameID == uuid.Nil {
    t.Fatalf("RecordGame returned nil game id")
  }

  var results []*types.WorldCupResult
  if err := db.Where("game_id = ?", gameID).Order("final_rank ASC").Find(&results).Error; err != nil {
    t.Fatalf("load results: %v", err)
  }
  if len(results) != 4 {
    t.Fatalf("got %d result rows, want 4", len(results))
  }
  wantScores := []int{50, 30, 10, 10}
  for i, result := range results {
    if result.Score != wantScores[i] {
      t.Fatalf("result %d: score=%d, want %d", i, result.Score, wantScores[i])
    }
  }
}

func TestRecordGameValidation(t *testing.T) {
  db := newTestDB(t)
  rs := newResultService(t, db)
  musicID := uuid.New()

  cases := []struct {
    name  string
    input RecordGameInput
  }{
    {
      name:  "empty_results",
      input: RecordGameInput{TotalRounds: 16},
    },
    {
      name: "non_positive_rank",
      input: RecordGameInput{
        TotalRounds: 16,
        Results:     []ResultEntry{{MusicID: musicID, Rank: 0}},
      },
    },
    {
      name: "non_positive_total_rounds",
      input: RecordGameInput{
        TotalRounds: 0,
        Results:     []ResultEntry{{MusicID: musicID, Rank: 1}},
      },
    },
    {
      name: "missing_music_id",
      input: RecordGameInput{
        TotalRounds: 16,
        Results:     []ResultEntry{{Rank: 1}},
      },
    },
  }

  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      _, err := rs.RecordGame(context.Background(), tc.input)
      var validationErr *ValidationError
      if !errors.As(err, &validationErr) {
        t.Fatalf("got %v, want ValidationError", err)
      }

      var count int64
      if err := db.Model(&types.WorldCupGame{}).Count(&count).Error; err != nil {
        t.Fatalf("count games: %v", err)
      }
      if count != 0 {
        t.Fatalf("validation failure persisted %d games", count)
      }
    })
  }
}

func TestRecordGameUnknownReferencesDegrade(t *testing.T) {
  db := newTestDB(t)
  musics := seedMusics(t, db, "ballad", 1)
  rs := newResultService(t, db)

  unknownUser := uuid.New()
  unknownCode := uuid.New()
  gameID, err := rs.RecordGame(context.Background(), RecordGameInput{
    UserUID:     &unknownUser,
    TotalRounds: 16,
    Results:     []ResultEntry{{MusicID: musics[0].ID, Rank: 1}},
    CustomCode:  &unknownCode,
  })
  if err != nil {
    t.Fatalf("RecordGame: %v", err)
  }

  var game types.WorldCupGame
  if err := db.First(&game, "id = ?", gameID).Error; err != nil {
    t.Fatalf("load game: %v", err)
  }
  if game.UserID != nil {
    t.Fatalf("unknown user uid should record an anonymous game, got owner %s", game.UserID)
  }
  if game.CustomWorldCupID != nil {
    t.Fatalf("unknown custom code should record no pool, got %s", game.CustomWorldCupID)
  }
}

func TestRecordGameKnownUserOwnsGame(t *testing.T) {
  db := newTestDB(t)
  user := seedUser(t, db, "player")
  musics := seedMusics(t, db, "ballad", 1)
  rs := newResultService(t, db)

  userID := user.ID
  gameID, err := rs.RecordGame(context.Background(), RecordGameInput{
    UserUID:     &userID,
    TotalRounds: 16,
    Results:     []ResultEntry{{MusicID: musics[0].ID, Rank: 1}},
  })
  if err != nil {
    t.Fatalf("RecordGame: %v", err)
  }

  var game types.WorldCupGame
  if err := db.First(&game, "id = ?", gameID).Error; err != nil {
    t.Fatalf("load game: %v", err)
  }
  if game.UserID == nil || *game.UserID != user.ID {
    t.Fatalf("game owner not recorded")
  }
}

// failingResultRepo breaks the bulk insert to exercise the rollback path.
type failingResultRepo struct {
  repos.WorldCupResultRepo
}

func (fr *failingResultRepo) CreateBulk(ctx context.Context, tx *gorm.DB, results []*types.WorldCupResult) ([]*types.WorldCupResult, error) {
  return nil, fmt.Errorf("injected insert failure")
}

func TestRecordGameRollsBackOnResultFailure(t *testing.T) {
  db := newTestDB(t)
  musics := seedMusics(t, db, "ballad", 1)
  log := newTestLogger()

  rs := NewResultService(
    db,
    log,
    repos.NewUserRepo(db, log),
    repos.NewCustomWorldCupRepo(db, log),
    repos.NewWorldCupGameRepo(db, log),
    &failingResultRepo{WorldCupResultRepo: repos.NewWorldCupResultRepo(db, log)},
  )

  _, err := rs.RecordGame(context.Background(), RecordGameInput{
    TotalRounds: 16,
    Results:     []ResultEntry{{MusicID: musics[0].ID, Rank: 1}},
  })
  var persistenceErr *PersistenceError
  if !errors.As(err, &persistenceErr) {
    t.Fatalf("got %v, want PersistenceError", err)
  }

  // The game header created inside the transaction must have been rolled
  // back with the failed insert.
  var count int64
  if err := db.Model(&types.WorldCupGame{}).Count(&count).Error; err != nil {
    t.Fatalf("count games: %v", err)
  }
  if count != 0 {
    t.Fatalf("rollback left %d orphan game rows", count)
  }
}

func TestGameDetail(t *testing.T) {
  db := newTestDB(t)
  musics := seedMusics(t, db, "ballad", 3)
  rs := newResultService(t, db)

  gameID, err := rs.RecordGame(context.Background(), RecordGameInput{
    TotalRounds: 16,
    Results: []ResultEntry{
      {MusicID: musics[0].ID, Rank: 4},
      {MusicID: musics[1].ID, Rank: 1},
      {MusicID: musics[2].ID, Rank: 2},
    },
  })
  if err != nil {
    t.Fatalf("RecordGame: %v", err)
  }

  detail, err := rs.GameDetail(context.Background(), gameID)
  if err != nil {
    t.Fatalf("GameDetail: %v", err)
  }
  if detail == nil || detail.Winner == nil {
    t.Fatalf("GameDetail returned no winner")
  }
  if detail.Winner.MusicID != musics[1].ID {
    t.Fatalf("winner is %s, want the rank-1 music", detail.Winner.MusicID)
  }
  if len(detail.Others) != 2 {
    t.Fatalf("got %d others, want 2", len(detail.Others))
  }
  if detail.Others[0].FinalRank > detail.Others[1].FinalRank {
    t.Fatalf("others not ordered by rank")
  }

  missing, err := rs.GameDetail(context.Background(), uuid.New())
  if err != nil {
    t.Fatalf("GameDetail unknown: %v", err)
  }
  if missing != nil {
    t.Fatalf("unknown game should yield nil detail")
  }
}
