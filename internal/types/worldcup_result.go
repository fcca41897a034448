package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorldCupResult records the final rank one music reached inside one game.
// Score is derived from the rank at record time and never recomputed.
type WorldCupResult struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	GameID    uuid.UUID     `gorm:"column:game_id;type:uuid;not null;index" json:"game_id"`
	Game      *WorldCupGame `gorm:"constraint:OnDelete:CASCADE;foreignKey:GameID;references:ID" json:"game,omitempty"`
	MusicID   uuid.UUID     `gorm:"column:music_id;type:uuid;not null;index" json:"music_id"`
	Music     *Music        `gorm:"constraint:OnDelete:CASCADE;foreignKey:MusicID;references:ID" json:"music,omitempty"`
	FinalRank int           `gorm:"column:final_rank;not null" json:"final_rank"`
	Score     int           `gorm:"column:score;not null;default:0" json:"score"`
}

func (WorldCupResult) TableName() string { return "world_cup_result" }

func (r *WorldCupResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
