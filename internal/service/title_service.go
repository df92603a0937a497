package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/cache"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

const ratingCacheTTL = 30 * time.Second

// TitleInput carries the flat, slug-based write shape for titles.
type TitleInput struct {
	Name        string
	Year        int
	Description *string
	Category    string
	Genres      []string
}

// TitleUpdate carries a partial title update. Nil fields stay unchanged;
// a nil Genres slice leaves the links alone.
type TitleUpdate struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// RatedTitle pairs a title with its computed average rating. Rating is
// nil when the title has no reviews, never zero.
type RatedTitle struct {
	Title  *model.Title
	Rating *float64
}

// TitleService handles title management and rating aggregation.
type TitleService interface {
	List(ctx context.Context, filters repository.TitleFilters) ([]RatedTitle, error)
	Get(ctx context.Context, id uint) (*RatedTitle, error)
	Create(ctx context.Context, actor *model.User, input TitleInput) (*RatedTitle, error)
	Update(ctx context.Context, actor *model.User, id uint, upd TitleUpdate) (*RatedTitle, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	reviews    repository.ReviewRepository
	cache      *cache.Client
}

// NewTitleService creates a new title service.
func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	reviews repository.ReviewRepository,
	cache *cache.Client,
) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		reviews:    reviews,
		cache:      cache,
	}
}

func ratingCacheKey(titleID uint) string {
	return fmt.Sprintf("title:%d:rating", titleID)
}

// List returns titles annotated with their average rating, computed in a
// single grouped query over the review scores.
func (s *titleService) List(ctx context.Context, filters repository.TitleFilters) ([]RatedTitle, error) {
	titles, err := s.titles.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	ids := make([]uint, len(titles))
	for i := range titles {
		ids[i] = titles[i].ID
	}
	ratings, err := s.reviews.AverageScores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	rated := make([]RatedTitle, len(titles))
	for i := range titles {
		rated[i] = RatedTitle{Title: &titles[i]}
		if avg, ok := ratings[titles[i].ID]; ok {
			rated[i].Rating = &avg
		}
	}
	return rated, nil
}

// Get retrieves a title with its rating. The rating goes through the
// fail-safe cache; review writes invalidate it and the short TTL bounds
// staleness when redis drops an invalidation.
func (s *titleService) Get(ctx context.Context, id uint) (*RatedTitle, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("find title: %w", err)
	}

	rating, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RatedTitle{Title: title, Rating: rating}, nil
}

func (s *titleService) rating(ctx context.Context, titleID uint) (*float64, error) {
	if data, _ := s.cache.Get(ctx, ratingCacheKey(titleID)); data != nil {
		var cached *float64
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	rating, err := s.reviews.AverageScore(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating: %w", err)
	}

	if payload, err := json.Marshal(rating); err == nil {
		_ = s.cache.Set(ctx, ratingCacheKey(titleID), payload, ratingCacheTTL)
	}
	return rating, nil
}

func (s *titleService) Create(ctx context.Context, actor *model.User, input TitleInput) (*RatedTitle, error) {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return nil, err
	}

	category, err := s.categories.FindBySlug(ctx, input.Category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnknownCategory
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	genres, err := s.resolveGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}

	title := &model.Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		CategoryID:  &category.ID,
		Category:    category,
		Genres:      genres,
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return &RatedTitle{Title: title}, nil
}

func (s *titleService) Update(ctx context.Context, actor *model.User, id uint, upd TitleUpdate) (*RatedTitle, error) {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return nil, err
	}

	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("find title: %w", err)
	}

	if upd.Name != nil {
		title.Name = *upd.Name
	}
	if upd.Year != nil {
		title.Year = *upd.Year
	}
	if upd.Description != nil {
		title.Description = upd.Description
	}
	if upd.Category != nil {
		category, err := s.categories.FindBySlug(ctx, *upd.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUnknownCategory
			}
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titles.Save(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	if upd.Genres != nil {
		genres, err := s.resolveGenres(ctx, upd.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titles.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
		title.Genres = genres
	}

	rating, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	return &RatedTitle{Title: title, Rating: rating}, nil
}

func (s *titleService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return err
	}
	if _, err := s.titles.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTitleNotFound
		}
		return fmt.Errorf("find title: %w", err)
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	_ = s.cache.Delete(ctx, ratingCacheKey(id))
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]model.Genre, error) {
	genres, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("resolve genres: %w", err)
	}
	if len(genres) != len(slugs) {
		return nil, apperrors.ErrUnknownGenre
	}
	return genres, nil
}
