package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorldCupGame is the header row for one completed playthrough. Anonymous
// play is allowed, so the owner is nullable.
type WorldCupGame struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User             *User           `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalRounds      int             `gorm:"column:total_rounds;not null;default:16" json:"total_rounds"`
	CustomWorldCupID *uuid.UUID      `gorm:"type:uuid;index" json:"custom_worldcup_id,omitempty"`
	CustomWorldCup   *CustomWorldCup `gorm:"constraint:OnDelete:SET NULL;foreignKey:CustomWorldCupID;references:ID" json:"custom_worldcup,omitempty"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
}

func (WorldCupGame) TableName() string { return "world_cup_game" }

func (g *WorldCupGame) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
