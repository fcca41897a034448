package services

import (
  "context"
  "math/rand"
  "sync"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/repos"
  "github.com/twobeats/twobeats-backend/internal/types"
)

type SelectionMode int

const (
  ModeRandom SelectionMode = iota
  ModeRank
)

// ParseSelectionMode maps the query parameter onto a mode; anything other
// than "rank" falls back to random.
func ParseSelectionMode(s string) SelectionMode {
  if s == "rank" {
    return ModeRank
  }
  return ModeRandom
}

type SelectionInput struct {
  Genre      string
  Count      int
  Mode       SelectionMode
  CustomCode *uuid.UUID
}

type CandidateService interface {
  Select(ctx context.Context, input SelectionInput) ([]*types.Music, error)
}

type candidateService struct {
  db         *gorm.DB
  log        *logger.Logger
  musicRepo  repos.MusicRepo
  customRepo repos.CustomWorldCupRepo

  // rand.Rand is not safe for concurrent use.
  mu  sync.Mutex
  rng *rand.Rand
}

// NewCandidateService builds the selector. rng may be nil, in which case a
// time-seeded source is used; tests pass a fixed seed.
func NewCandidateService(db *gorm.DB, log *logger.Logger, musicRepo repos.MusicRepo, customRepo repos.CustomWorldCupRepo, rng *rand.Rand) CandidateService {
  serviceLog := log.With("service", "CandidateService")
  if rng == nil {
    rng = rand.New(rand.NewSource(time.Now().UnixNano()))
  }
  return &candidateService{
    db:         db,
    log:        serviceLog,
    musicRepo:  musicRepo,
    customRepo: customRepo,
    rng:        rng,
  }
}

func (cs *candidateService) Select(ctx context.Context, input SelectionInput) ([]*types.Music, error) {
  if input.Count <= 0 {
    return nil, NewValidationError("count must be a positive integer, got %d", input.Count)
  }
  if input.Genre == "" {
    input.Genre = types.GenreAll
  }

  poolIDs, err := cs.resolvePool(ctx, input.CustomCode)
  if err != nil {
    return nil, err
  }

  var candidates []*types.Music
  switch {
  case input.Mode == ModeRank && input.Genre == types.GenreAll:
    candidates, err = cs.selectRankAll(ctx, poolIDs, input.Count)
  case input.Mode == ModeRank:
    candidates, err = cs.selectRankGenre(ctx, input.Genre, poolIDs, input.Count)
  default:
    candidates, err = cs.musicRepo.ListRandom(ctx, nil, input.Genre, poolIDs, nil, input.Count)
  }
  if err != nil {
    return nil, err
  }

  if len(candidates) < input.Count {
    return nil, &InsufficientCandidatesError{Have: len(candidates), Want: input.Count}
  }
  return candidates, nil
}

func (cs *candidateService) resolvePool(ctx context.Context, customCode *uuid.UUID) ([]uuid.UUID, error) {
  if customCode == nil {
    return nil, nil
  }
  worldcup, err := cs.customRepo.GetByAccessCode(ctx, nil, *customCode)
  if err != nil {
    return nil, err
  }
  if worldcup == nil {
    return nil, NewValidationError("unknown custom worldcup code %s", customCode.String())
  }
  musicIDs, err := cs.customRepo.MusicIDs(ctx, nil, worldcup.ID)
  if err != nil {
    return nil, err
  }
  return musicIDs, nil
}

// selectRankGenre ranks one genre by cumulative score, then shuffles the
// selected set so the bracket does not leak seed positions to the player.
func (cs *candidateService) selectRankGenre(ctx context.Context, genre string, poolIDs []uuid.UUID, count int) ([]*types.Music, error) {
  top, err := cs.musicRepo.TopByScore(ctx, nil, genre, poolIDs, count)
  if err != nil {
    return nil, err
  }
  cs.shuffle(top)
  return top, nil
}

// selectRankAll applies genre-quota sampling: the quota's worth of top-scored
// musics per genre, deduplicated, shuffled, truncated, then topped up with
// random draws when the quotas come up short.
func (cs *candidateService) selectRankAll(ctx context.Context, poolIDs []uuid.UUID, count int) ([]*types.Music, error) {
  quota := (count + len(types.GenreChoices) - 1) / len(types.GenreChoices)

  seen := map[uuid.UUID]bool{}
  var selected []*types.Music
  for _, genre := range types.GenreChoices {
    top, err := cs.musicRepo.TopByScore(ctx, nil, genre, poolIDs, quota)
    if err != nil {
      return nil, err
    }
    for _, music := range top {
      if seen[music.ID] {
        continue
      }
      seen[music.ID] = true
      selected = append(selected, music)
    }
  }

  cs.shuffle(selected)
  if len(selected) > count {
    selected = selected[:count]
  }

  if len(selected) < count {
    exclude := make([]uuid.UUID, 0, len(selected))
    for _, music := range selected {
      exclude = append(exclude, music.ID)
    }
    extras, err := cs.musicRepo.ListRandom(ctx, nil, types.GenreAll, poolIDs, exclude, count-len(selected))
    if err != nil {
      return nil, err
    }
    selected = append(selected, extras...)
  }
  return selected, nil
}

func (cs *candidateService) shuffle(musics []*types.Music) {
  cs.mu.Lock()
  defer cs.mu.Unlock()
  cs.rng.Shuffle(len(musics), func(i, j int) {
    musics[i], musics[j] = musics[j], musics[i]
  })
}
