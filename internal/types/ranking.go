package types

import (
	"time"

	"github.com/google/uuid"
)

// RankingEntry is one leaderboard row: a music with its cumulative worldcup
// score and champion count aggregated across all games.
type RankingEntry struct {
	MusicID    uuid.UUID `json:"music_id"`
	Title      string    `json:"title"`
	Singer     string    `json:"singer"`
	MusicType  string    `json:"music_type"`
	Thumbnail  string    `json:"thumbnail"`
	TotalScore int       `json:"total_score"`
	WinCount   int       `json:"win_count"`
	CreatedAt  time.Time `json:"created_at"`
}
