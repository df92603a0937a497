package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/cache"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// ReviewUpdate carries a partial review update. Nil fields stay unchanged.
type ReviewUpdate struct {
	Text  *string
	Score *int
}

// ReviewService handles reviews nested under titles.
type ReviewService interface {
	ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error)
	Get(ctx context.Context, titleID, id uint) (*model.Review, error)
	Create(ctx context.Context, actor *model.User, titleID uint, text string, score int) (*model.Review, error)
	Update(ctx context.Context, actor *model.User, titleID, id uint, upd ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, actor *model.User, titleID, id uint) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
	cache   *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, titles repository.TitleRepository, cache *cache.Client) ReviewService {
	return &reviewService{
		reviews: reviews,
		titles:  titles,
		cache:   cache,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	return s.reviews.ListByTitle(ctx, titleID)
}

func (s *reviewService) Get(ctx context.Context, titleID, id uint) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

// Create persists a review for the acting user. The unique
// (author, title) constraint is the authoritative duplicate check: two
// concurrent creates cannot both pass it.
func (s *reviewService) Create(ctx context.Context, actor *model.User, titleID uint, text string, score int) (*model.Review, error) {
	if err := permission.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &model.Review{
		Text:     text,
		Score:    score,
		AuthorID: actor.ID,
		TitleID:  titleID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateReview
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.Author = *actor

	_ = s.cache.Delete(ctx, ratingCacheKey(titleID))
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *model.User, titleID, id uint, upd ReviewUpdate) (*model.Review, error) {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if err := permission.RequireContentOwner(actor, review.AuthorID); err != nil {
		return nil, err
	}

	if upd.Text != nil {
		review.Text = *upd.Text
	}
	if upd.Score != nil {
		review.Score = *upd.Score
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	_ = s.cache.Delete(ctx, ratingCacheKey(titleID))
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *model.User, titleID, id uint) error {
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return err
	}
	if err := permission.RequireContentOwner(actor, review.AuthorID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	_ = s.cache.Delete(ctx, ratingCacheKey(titleID))
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	if _, err := s.titles.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTitleNotFound
		}
		return fmt.Errorf("find title: %w", err)
	}
	return nil
}
