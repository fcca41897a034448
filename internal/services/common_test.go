package services

import (
  "context"
  "fmt"
  "testing"

  "github.com/google/uuid"
  "go.uber.org/zap"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

func newTestLogger() *logger.Logger {
  return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()

  // A named shared-cache DSN keeps every pooled connection on the same
  // in-memory database.
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }

  if err := db.AutoMigrate(
    &types.User{},
    &types.Tag{},
    &types.Music{},
    &types.MusicLike{},
    &types.Playlist{},
    &types.CustomWorldCup{},
    &types.WorldCupGame{},
    &types.WorldCupResult{},
  ); err != nil {
    t.Fatalf("automigrate: %v", err)
  }
  return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *types.User {
  t.Helper()
  users, err := repos.NewUserRepo(db, newTestLogger()).
    Create(context.Background(), nil, []*types.User{{Username: username}})
  if err != nil {
    t.Fatalf("seed user %s: %v", username, err)
  }
  return users[0]
}

func seedMusic(t *testing.T, db *gorm.DB, title, genre string) *types.Music {
  t.Helper()
  musics, err := repos.NewMusicRepo(db, newTestLogger()).
    Create(context.Background(), nil, []*types.Music{{Title: title, Singer: "artist", MusicType: genre}})
  if err != nil {
    t.Fatalf("seed music %s: %v", title, err)
  }
  return musics[0]
}

func seedMusics(t *testing.T, db *gorm.DB, genre string, n int) []*types.Music {
  t.Helper()
  musics := make([]*types.Music, 0, n)
  for i := 0; i < n; i++ {
    musics = append(musics, seedMusic(t, db, fmt.Sprintf("%s-%d", genre, i), genre))
  }
  return musics
}

// seedGameWithResults writes a finished game the way the recorder would,
// bypassing the service so tests control scores directly.
func seedGameWithResults(t *testing.T, db *gorm.DB, userID *uuid.UUID, entries map[uuid.UUID]int) *types.WorldCupGame {
  t.Helper()
  game := &types.WorldCupGame{UserID: userID, TotalRounds: 16}
  if err := db.Create(game).Error; err != nil {
    t.Fatalf("seed game: %v", err)
  }
  for musicID, rank := range entries {
    result := &types.WorldCupResult{
      GameID:    game.ID,
      MusicID:   musicID,
      FinalRank: rank,
      Score:     ScoreForRank(rank),
    }
    if err := db.Create(result).Error; err != nil {
      t.Fatalf("seed result: %v", err)
    }
  }
  return game
}

func seedLike(t *testing.T, db *gorm.DB, userID, musicID uuid.UUID) {
  t.Helper()
  _, err := repos.NewMusicLikeRepo(db, newTestLogger()).
    Create(context.Background(), nil, []*types.MusicLike{{UserID: userID, MusicID: musicID}})
  if err != nil {
    t.Fatalf("seed like: %v", err)
  }
}

func musicIDSet(musics []*types.Music) map[uuid.UUID]bool {
  set := map[uuid.UUID]bool{}
  for _, music := range musics {
    set[music.ID] = true
  }
  return set
}
