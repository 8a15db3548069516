package repository

import (
	"context"
	"errors"
	"fmt"

	"chinook/model"

	"gorm.io/gorm"
)

// AlbumRepository defines album persistence.
type AlbumRepository interface {
	// GetWithArtist returns the album and its artist, or nil, nil.
	GetWithArtist(ctx context.Context, id int64) (*model.AlbumWithArtist, error)
}

type gormAlbumRepository struct {
	db *gorm.DB
}

// NewGormAlbumRepository creates a gorm-backed AlbumRepository.
func NewGormAlbumRepository(db *gorm.DB) AlbumRepository {
	return &gormAlbumRepository{db: db}
}

func (r *gormAlbumRepository) GetWithArtist(ctx context.Context, id int64) (*model.AlbumWithArtist, error) {
	var album model.AlbumWithArtist
	err := r.db.WithContext(ctx).Preload("Artist").First(&album, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get album %d: %w", id, err)
	}
	return &album, nil
}
