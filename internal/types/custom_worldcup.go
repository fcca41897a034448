package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomWorldCup is a creator-curated, fixed candidate pool shared by its
// access code in a URL path segment. Musics are immutable once attached.
type CustomWorldCup struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	CreatorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator    *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`
	AccessCode uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"access_code"`
	Musics     []*Music  `gorm:"many2many:custom_worldcup_musics" json:"musics,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (CustomWorldCup) TableName() string { return "custom_worldcup" }

func (cw *CustomWorldCup) BeforeCreate(tx *gorm.DB) error {
	if cw.ID == uuid.Nil {
		cw.ID = uuid.New()
	}
	if cw.AccessCode == uuid.Nil {
		cw.AccessCode = uuid.New()
	}
	return nil
}
