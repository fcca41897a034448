package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

func newRecommendationService(t *testing.T, db *gorm.DB) RecommendationService {
  t.Helper()
  log := newTestLogger()
  return NewRecommendationService(
    db,
    log,
    repos.NewMusicRepo(db, log),
    repos.NewMusicLikeRepo(db, log),
    repos.NewWorldCupResultRepo(db, log),
  )
}

func TestCollaborativeEmptyWithoutSimilarUsers(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  rs := newRecommendationService(t, db)

  // Nobody ever crowned this music champion, so there is nothing to mine.
  recommendations, err := rs.Collaborative(context.Background(), winner.ID, nil)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  if len(recommendations) != 0 {
    t.Fatalf("got %d recommendations, want 0", len(recommendations))
  }
}

func TestCollaborativeScoringAndOrdering(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  liked := seedMusic(t, db, "liked-by-both", "dance")
  crowned := seedMusic(t, db, "crowned-once", "rock")
  alice := seedUser(t, db, "alice")
  bob := seedUser(t, db, "bob")
  rs := newRecommendationService(t, db)

  // Both users' games crowned the winner champion.
  aliceID, bobID := alice.ID, bob.ID
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{winner.ID: 1})
  seedGameWithResults(t, db, &bobID, map[uuid.UUID]int{winner.ID: 1})

  // Both like one music; one of alice's other games crowned another.
  seedLike(t, db, alice.ID, liked.ID)
  seedLike(t, db, bob.ID, liked.ID)
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{crowned.ID: 1})

  recommendations, err := rs.Collaborative(context.Background(), winner.ID, nil)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  if len(recommendations) != 2 {
    t.Fatalf("got %d recommendations, want 2", len(recommendations))
  }
  if recommendations[0].ID != liked.ID {
    t.Fatalf("top recommendation is %s, want the music liked by both users", recommendations[0].Title)
  }
  if recommendations[1].ID != crowned.ID {
    t.Fatalf("second recommendation is %s, want the once-crowned music", recommendations[1].Title)
  }
}

func TestCollaborativeCountsUsersNotGames(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  likedByBoth := seedMusic(t, db, "liked-by-both", "dance")
  crownedThrice := seedMusic(t, db, "crowned-thrice-by-one", "rock")
  alice := seedUser(t, db, "alice")
  bob := seedUser(t, db, "bob")
  rs := newRecommendationService(t, db)

  aliceID, bobID := alice.ID, bob.ID
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{winner.ID: 1})
  seedGameWithResults(t, db, &bobID, map[uuid.UUID]int{winner.ID: 1})

  // Two users like one music; a single user crowns another in three
  // separate games. Scoring is per user, so 2 must beat 1 regardless of
  // how often the one user replays.
  seedLike(t, db, alice.ID, likedByBoth.ID)
  seedLike(t, db, bob.ID, likedByBoth.ID)
  for i := 0; i < 3; i++ {
    seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{crownedThrice.ID: 1})
  }

  recommendations, err := rs.Collaborative(context.Background(), winner.ID, nil)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  if len(recommendations) != 2 {
    t.Fatalf("got %d recommendations, want 2", len(recommendations))
  }
  if recommendations[0].ID != likedByBoth.ID {
    t.Fatalf("top recommendation is %s, want the music favored by two users", recommendations[0].Title)
  }
  if recommendations[1].ID != crownedThrice.ID {
    t.Fatalf("second recommendation is %s, want the single-user music", recommendations[1].Title)
  }
}

func TestCollaborativeNeverRecommendsWinner(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  alice := seedUser(t, db, "alice")
  rs := newRecommendationService(t, db)

  // The similar user both crowned and liked the winner itself; that must
  // not make the winner recommend itself.
  aliceID := alice.ID
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{winner.ID: 1})
  seedLike(t, db, alice.ID, winner.ID)

  recommendations, err := rs.Collaborative(context.Background(), winner.ID, nil)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  for _, music := range recommendations {
    if music.ID == winner.ID {
      t.Fatalf("winner recommended itself")
    }
  }
}

func TestCollaborativeExcludesRequestingUser(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  other := seedMusic(t, db, "other", "dance")
  alice := seedUser(t, db, "alice")
  rs := newRecommendationService(t, db)

  // Only the requesting user's own games crowned the winner; their tastes
  // must not feed their own recommendations.
  aliceID := alice.ID
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{winner.ID: 1})
  seedLike(t, db, alice.ID, other.ID)

  recommendations, err := rs.Collaborative(context.Background(), winner.ID, &aliceID)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  if len(recommendations) != 0 {
    t.Fatalf("got %d recommendations, want 0 when the only similar user is excluded", len(recommendations))
  }
}

func TestCollaborativeCapsAtFive(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  alice := seedUser(t, db, "alice")
  rs := newRecommendationService(t, db)

  aliceID := alice.ID
  seedGameWithResults(t, db, &aliceID, map[uuid.UUID]int{winner.ID: 1})
  for _, music := range seedMusics(t, db, "dance", 8) {
    seedLike(t, db, alice.ID, music.ID)
  }

  recommendations, err := rs.Collaborative(context.Background(), winner.ID, nil)
  if err != nil {
    t.Fatalf("Collaborative: %v", err)
  }
  if len(recommendations) != 5 {
    t.Fatalf("got %d recommendations, want 5", len(recommendations))
  }
}

func TestSameGenreRandomFallback(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  seedMusics(t, db, "ballad", 8)
  seedMusics(t, db, "dance", 8)
  rs := newRecommendationService(t, db)

  recommendations, err := rs.SameGenreRandom(context.Background(), winner.ID)
  if err != nil {
    t.Fatalf("SameGenreRandom: %v", err)
  }
  if len(recommendations) != 5 {
    t.Fatalf("got %d recommendations, want 5", len(recommendations))
  }
  for _, music := range recommendations {
    if music.ID == winner.ID {
      t.Fatalf("fallback recommended the winner itself")
    }
    if music.MusicType != "ballad" {
      t.Fatalf("fallback left the winner's genre: %s", music.MusicType)
    }
  }
}

func seedTags(t *testing.T, db *gorm.DB, music *types.Music, names ...string) {
  t.Helper()
  for _, name := range names {
    var tag types.Tag
    if err := db.Where("name = ?", name).FirstOrCreate(&tag, types.Tag{Name: name}).Error; err != nil {
      t.Fatalf("seed tag %s: %v", name, err)
    }
    if err := db.Model(music).Association("Tags").Append(&tag); err != nil {
      t.Fatalf("attach tag %s: %v", name, err)
    }
  }
}

func TestTagOverlapOrdering(t *testing.T) {
  db := newTestDB(t)
  winner := seedMusic(t, db, "winner", "ballad")
  twoShared := seedMusic(t, db, "two-shared", "ballad")
  oneShared := seedMusic(t, db, "one-shared", "ballad")
  otherGenre := seedMusic(t, db, "other-genre", "dance")
  noShared := seedMusic(t, db, "no-shared", "ballad")
  rs := newRecommendationService(t, db)

  seedTags(t, db, winner, "night", "drive", "mellow")
  seedTags(t, db, twoShared, "night", "drive")
  seedTags(t, db, oneShared, "mellow")
  seedTags(t, db, otherGenre, "night", "drive", "mellow")
  seedTags(t, db, noShared, "workout")

  recommendations, err := rs.TagOverlap(context.Background(), winner.ID)
  if err != nil {
    t.Fatalf("TagOverlap: %v", err)
  }
  if len(recommendations) != 2 {
    t.Fatalf("got %d recommendations, want 2 same-genre tag sharers", len(recommendations))
  }
  if recommendations[0].ID != twoShared.ID {
    t.Fatalf("top recommendation is %s, want the two-tag overlap", recommendations[0].Title)
  }
  if recommendations[1].ID != oneShared.ID {
    t.Fatalf("second recommendation is %s, want the one-tag overlap", recommendations[1].Title)
  }
}
