package app

import (
	"gorm.io/gorm"

	"github.com/twobeats/twobeats-backend/internal/logger"
	"github.com/twobeats/twobeats-backend/internal/repos"
)

type Repos struct {
	User           repos.UserRepo
	Music          repos.MusicRepo
	MusicLike      repos.MusicLikeRepo
	Playlist       repos.PlaylistRepo
	CustomWorldCup repos.CustomWorldCupRepo
	WorldCupGame   repos.WorldCupGameRepo
	WorldCupResult repos.WorldCupResultRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           repos.NewUserRepo(db, log),
		Music:          repos.NewMusicRepo(db, log),
		MusicLike:      repos.NewMusicLikeRepo(db, log),
		Playlist:       repos.NewPlaylistRepo(db, log),
		CustomWorldCup: repos.NewCustomWorldCupRepo(db, log),
		WorldCupGame:   repos.NewWorldCupGameRepo(db, log),
		WorldCupResult: repos.NewWorldCupResultRepo(db, log),
	}
}
