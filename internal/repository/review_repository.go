package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Save(ctx context.Context, review *model.Review) error
	// FindByID resolves a review scoped to its title; a review id that
	// exists under a different title does not match.
	FindByID(ctx context.Context, titleID, id uint) (*model.Review, error)
	Delete(ctx context.Context, id uint) error
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
	// AverageScore returns the mean review score for a title, or nil when
	// the title has no reviews.
	AverageScore(ctx context.Context, titleID uint) (*float64, error)
	// AverageScores returns mean scores keyed by title id. Titles without
	// reviews are absent from the map.
	AverageScores(ctx context.Context, titleIDs []uint) (map[uint]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, titleID, id uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes the review row. Its comments cascade at the database level.
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Review{}, id).Error
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("id").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	var result struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(score) AS avg").
		Where("title_id = ?", titleID).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result.Avg, nil
}

func (r *reviewRepository) AverageScores(ctx context.Context, titleIDs []uint) (map[uint]float64, error) {
	if len(titleIDs) == 0 {
		return map[uint]float64{}, nil
	}

	var rows []struct {
		TitleID uint
		Avg     float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make(map[uint]float64, len(rows))
	for _, row := range rows {
		ratings[row.TitleID] = row.Avg
	}
	return ratings, nil
}
