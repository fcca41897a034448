package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MusicLike is the "user liked item" preference edge. One row per (user, music).
type MusicLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_music_like_user_music" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	MusicID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_music_like_user_music" json:"music_id"`
	Music     *Music    `gorm:"constraint:OnDelete:CASCADE;foreignKey:MusicID;references:ID" json:"music,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (MusicLike) TableName() string { return "music_like" }

func (ml *MusicLike) BeforeCreate(tx *gorm.DB) error {
	if ml.ID == uuid.Nil {
		ml.ID = uuid.New()
	}
	return nil
}
