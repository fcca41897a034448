package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenreChoices is the fixed genre enumeration for the catalog. "all" is a
// query sentinel, never a stored value.
var GenreChoices = []string{
	"ballad", "dance", "hiphop", "rnb", "rock", "indie",
	"trot", "pop", "jazz", "electronic", "ost",
}

const GenreAll = "all"

func ValidGenre(g string) bool {
	for _, choice := range GenreChoices {
		if g == choice {
			return true
		}
	}
	return false
}

type Music struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:music_title;not null" json:"title"`
	Singer    string    `gorm:"column:music_singer;not null" json:"singer"`
	MusicType string    `gorm:"column:music_type;not null;index" json:"music_type"`
	Thumbnail string    `gorm:"column:music_thumbnail" json:"thumbnail"`
	PlayCount int       `gorm:"column:music_count;not null;default:0" json:"play_count"`
	LikeCount int       `gorm:"column:music_like_count;not null;default:0" json:"like_count"`
	Tags      []*Tag    `gorm:"many2many:music_tags" json:"tags,omitempty"`
	CreatedAt time.Time `gorm:"column:music_created_at;not null" json:"created_at"`
}

func (Music) TableName() string { return "music" }

func (m *Music) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string { return "tag" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
