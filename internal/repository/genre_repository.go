package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// GenreRepository defines genre persistence operations.
type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	// FindBySlugs resolves a batch of slugs, preserving no particular order.
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error)
	// DeleteBySlug removes the genre and reports whether a row matched.
	// Only the genre_titles link rows cascade; titles stay untouched.
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, search string) ([]model.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository builds a GORM-backed repository.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	var genres []model.Genre
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	res := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&model.Genre{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *genreRepository) List(ctx context.Context, search string) ([]model.Genre, error) {
	q := r.db.WithContext(ctx).Order("id")
	if search != "" {
		q = q.Where("name LIKE ?", "%"+search+"%")
	}
	var genres []model.Genre
	if err := q.Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
