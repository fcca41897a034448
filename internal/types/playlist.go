package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Playlist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Musics    []*Music  `gorm:"many2many:playlist_musics" json:"musics,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Playlist) TableName() string { return "playlist" }

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
