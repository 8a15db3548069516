package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chinook/model"

	"gorm.io/gorm"
)

// GenreRepository defines genre persistence.
type GenreRepository interface {
	// List returns genres ordered by id. A non-empty prefix keeps only names
	// starting with it, compared case-sensitively.
	List(ctx context.Context, prefix string) ([]model.Genre, error)
	// GetByID returns nil, nil when the genre does not exist.
	GetByID(ctx context.Context, id int64) (*model.Genre, error)
	// Create validates and inserts genre, filling in its id.
	Create(ctx context.Context, genre *model.Genre) error
	// Update validates genre and writes its name.
	Update(ctx context.Context, genre *model.Genre) error
}

type gormGenreRepository struct {
	db *gorm.DB
}

// NewGormGenreRepository creates a gorm-backed GenreRepository.
func NewGormGenreRepository(db *gorm.DB) GenreRepository {
	return &gormGenreRepository{db: db}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *gormGenreRepository) List(ctx context.Context, prefix string) ([]model.Genre, error) {
	query := r.db.WithContext(ctx).Order("GenreId")
	if prefix != "" {
		query = query.Where("Name LIKE ? ESCAPE '!'", likeEscaper.Replace(prefix)+"%")
	}

	var genres []model.Genre
	if err := query.Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}

	// LIKE ignores case under MySQL's default collations and in SQLite.
	result := make([]model.Genre, 0, len(genres))
	for _, g := range genres {
		if strings.HasPrefix(g.Name, prefix) {
			result = append(result, g)
		}
	}
	return result, nil
}

func (r *gormGenreRepository) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get genre %d: %w", id, err)
	}
	return &genre, nil
}

func (r *gormGenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	if err := genre.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

func (r *gormGenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	if err := genre.Validate(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Model(&model.Genre{ID: genre.ID}).
		Update("Name", genre.Name).Error
	if err != nil {
		return fmt.Errorf("failed to update genre %d: %w", genre.ID, err)
	}
	return nil
}
