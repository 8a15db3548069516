package repository

import (
	"context"
	"errors"
	"fmt"

	"chinook/model"

	"gorm.io/gorm"
)

// ArtistRepository defines artist persistence.
type ArtistRepository interface {
	// GetWithAlbums returns the artist and its albums, or nil, nil.
	GetWithAlbums(ctx context.Context, id int64) (*model.ArtistWithAlbums, error)
}

type gormArtistRepository struct {
	db *gorm.DB
}

// NewGormArtistRepository creates a gorm-backed ArtistRepository.
func NewGormArtistRepository(db *gorm.DB) ArtistRepository {
	return &gormArtistRepository{db: db}
}

func (r *gormArtistRepository) GetWithAlbums(ctx context.Context, id int64) (*model.ArtistWithAlbums, error) {
	var artist model.ArtistWithAlbums
	err := r.db.WithContext(ctx).
		Preload("Albums", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("AlbumId")
		}).
		First(&artist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artist %d: %w", id, err)
	}

	if artist.Albums == nil {
		artist.Albums = []model.Album{}
	}
	return &artist, nil
}
