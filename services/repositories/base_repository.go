package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository holds the shared connection handle embedded by the
// category and post repositories.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}
