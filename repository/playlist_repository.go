package repository

import (
	"context"
	"errors"
	"fmt"

	"chinook/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines playlist persistence, including its track
// membership.
type PlaylistRepository interface {
	List(ctx context.Context) ([]model.Playlist, error)
	// GetByID returns nil, nil when the playlist does not exist.
	GetByID(ctx context.Context, id int64) (*model.Playlist, error)
	// GetWithTracks returns the playlist and its tracks, or nil, nil.
	GetWithTracks(ctx context.Context, id int64) (*model.PlaylistWithTracks, error)
	// Delete detaches every track from the playlist, then deletes the row.
	Delete(ctx context.Context, id int64) error
	// AddTrack links a track to the playlist. Adding an existing link is a no-op.
	AddTrack(ctx context.Context, playlistID, trackID int64) error
	// RemoveTrack unlinks a track from the playlist.
	RemoveTrack(ctx context.Context, playlistID, trackID int64) error
}

type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a gorm-backed PlaylistRepository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) List(ctx context.Context) ([]model.Playlist, error) {
	playlists := make([]model.Playlist, 0)
	if err := r.db.WithContext(ctx).Order("PlaylistId").Find(&playlists).Error; err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).First(&playlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist %d: %w", id, err)
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) GetWithTracks(ctx context.Context, id int64) (*model.PlaylistWithTracks, error) {
	playlist, err := r.GetByID(ctx, id)
	if err != nil || playlist == nil {
		return nil, err
	}

	tracks := make([]model.Track, 0)
	err = r.db.WithContext(ctx).
		Joins("JOIN playlist_track ON playlist_track.TrackId = tracks.TrackId").
		Where("playlist_track.PlaylistId = ?", id).
		Order("tracks.TrackId").
		Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tracks of playlist %d: %w", id, err)
	}

	return &model.PlaylistWithTracks{Playlist: *playlist, Tracks: tracks}, nil
}

func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// playlist_track references the playlist, so links go first
		if err := tx.Where("PlaylistId = ?", id).Delete(&model.PlaylistTrack{}).Error; err != nil {
			return fmt.Errorf("failed to detach tracks from playlist %d: %w", id, err)
		}
		if err := tx.Delete(&model.Playlist{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete playlist %d: %w", id, err)
		}
		return nil
	})
}

func (r *gormPlaylistRepository) AddTrack(ctx context.Context, playlistID, trackID int64) error {
	link := model.PlaylistTrack{PlaylistID: playlistID, TrackID: trackID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to add track %d to playlist %d: %w", trackID, playlistID, err)
	}
	return nil
}

func (r *gormPlaylistRepository) RemoveTrack(ctx context.Context, playlistID, trackID int64) error {
	err := r.db.WithContext(ctx).
		Where("PlaylistId = ? AND TrackId = ?", playlistID, trackID).
		Delete(&model.PlaylistTrack{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove track %d from playlist %d: %w", trackID, playlistID, err)
	}
	return nil
}
