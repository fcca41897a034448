package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/twobeats/twobeats-backend/internal/logger"
  "github.com/twobeats/twobeats-backend/internal/types"
)

// MusicRepo is the catalog accessor. The catalog is read-only from the
// worldcup core's perspective.
type MusicRepo interface {
  Create(ctx context.Context, tx *gorm.DB, musics []*types.Music) ([]*types.Music, error)
  GetByID(ctx context.Context, tx *gorm.DB, musicID uuid.UUID) (*types.Music, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, musicIDs []uuid.UUID) ([]*types.Music, error)
  // ListRandom draws up to limit musics in uniformly random order. genre may
  // be types.GenreAll; poolIDs, when non-nil, restricts to that id set;
  // exclude removes already-selected ids.
  ListRandom(ctx context.Context, tx *gorm.DB, genre string, poolIDs []uuid.UUID, exclude []uuid.UUID, limit int) ([]*types.Music, error)
  // TopByScore ranks musics of one genre by cumulative worldcup score
  // (musics with no results score 0) and returns the top limit rows.
  TopByScore(ctx context.Context, tx *gorm.DB, genre string, poolIDs []uuid.UUID, limit int) ([]*types.Music, error)
  // ListByTagOverlap returns same-genre musics sharing at least one tag with
  // the given music, ordered by shared-tag count then like count.
  ListByTagOverlap(ctx context.Context, tx *gorm.DB, musicID uuid.UUID, genre string, limit int) ([]*types.Music, error)
}

type musicRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMusicRepo(db *gorm.DB, baseLog *logger.Logger) MusicRepo {
  repoLog := baseLog.With("repo", "MusicRepo")
  return &musicRepo{db: db, log: repoLog}
}

func (mr *musicRepo) Create(ctx context.Context, tx *gorm.DB, musics []*types.Music) ([]*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(musics) == 0 {
    return []*types.Music{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&musics).Error; err != nil {
    return nil, err
  }
  return musics, nil
}

func (mr *musicRepo) GetByID(ctx context.Context, tx *gorm.DB, musicID uuid.UUID) (*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var result types.Music
  if err := transaction.WithContext(ctx).
    Preload("Tags").
    Where("id = ?", musicID).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (mr *musicRepo) GetByIDs(ctx context.Context, tx *gorm.DB, musicIDs []uuid.UUID) ([]*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Music
  if len(musicIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", musicIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *musicRepo) ListRandom(ctx context.Context, tx *gorm.DB, genre string, poolIDs []uuid.UUID, exclude []uuid.UUID, limit int) ([]*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  query := transaction.WithContext(ctx).Model(&types.Music{})
  if genre != types.GenreAll {
    query = query.Where("music_type = ?", genre)
  }
  if poolIDs != nil {
    query = query.Where("id IN ?", poolIDs)
  }
  if len(exclude) > 0 {
    query = query.Where("id NOT IN ?", exclude)
  }

  var results []*types.Music
  if err := query.Order("RANDOM()").Limit(limit).Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *musicRepo) TopByScore(ctx context.Context, tx *gorm.DB, genre string, poolIDs []uuid.UUID, limit int) ([]*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  query := transaction.WithContext(ctx).
    Model(&types.Music{}).
    Select("music.*, COALESCE(SUM(world_cup_result.score), 0) AS total_score").
    Joins("LEFT JOIN world_cup_result ON world_cup_result.music_id = music.id").
    Where("music.music_type = ?", genre)
  if poolIDs != nil {
    query = query.Where("music.id IN ?", poolIDs)
  }

  var results []*types.Music
  if err := query.
    Group("music.id").
    Order("total_score DESC, music.music_created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (mr *musicRepo) ListByTagOverlap(ctx context.Context, tx *gorm.DB, musicID uuid.UUID, genre string, limit int) ([]*types.Music, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  var results []*types.Music
  if err := transaction.WithContext(ctx).
    Model(&types.Music{}).
    Select("music.*, COUNT(music_tags.tag_id) AS tag_overlap").
    Joins("JOIN music_tags ON music_tags.music_id = music.id").
    Where("music_tags.tag_id IN (?)",
      transaction.Table("music_tags").Select("tag_id").Where("music_id = ?", musicID)).
    Where("music.music_type = ?", genre).
    Where("music.id <> ?", musicID).
    Group("music.id").
    Order("tag_overlap DESC, music.music_like_count DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
