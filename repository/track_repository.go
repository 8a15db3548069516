package repository

import (
	"context"
	"errors"
	"fmt"

	"chinook/model"

	"gorm.io/gorm"
)

// TrackRepository defines track persistence.
type TrackRepository interface {
	// GetByID returns nil, nil when the track does not exist.
	GetByID(ctx context.Context, id int64) (*model.Track, error)
	// GetWithPlaylists returns the track and every playlist containing it,
	// or nil, nil.
	GetWithPlaylists(ctx context.Context, id int64) (*model.TrackWithPlaylists, error)
}

type gormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates a gorm-backed TrackRepository.
func NewGormTrackRepository(db *gorm.DB) TrackRepository {
	return &gormTrackRepository{db: db}
}

func (r *gormTrackRepository) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	var track model.Track
	err := r.db.WithContext(ctx).First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get track %d: %w", id, err)
	}
	return &track, nil
}

func (r *gormTrackRepository) GetWithPlaylists(ctx context.Context, id int64) (*model.TrackWithPlaylists, error) {
	track, err := r.GetByID(ctx, id)
	if err != nil || track == nil {
		return nil, err
	}

	playlists := make([]model.Playlist, 0)
	err = r.db.WithContext(ctx).
		Joins("JOIN playlist_track ON playlist_track.PlaylistId = playlists.PlaylistId").
		Where("playlist_track.TrackId = ?", id).
		Order("playlists.PlaylistId").
		Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists of track %d: %w", id, err)
	}

	return &model.TrackWithPlaylists{Track: *track, Playlists: playlists}, nil
}
