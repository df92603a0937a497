package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// GenreService handles genre management.
type GenreService interface {
	List(ctx context.Context, search string) ([]model.Genre, error)
	Create(ctx context.Context, actor *model.User, name, slug string) (*model.Genre, error)
	Delete(ctx context.Context, actor *model.User, slug string) error
}

type genreService struct {
	genres repository.GenreRepository
}

// NewGenreService creates a new genre service.
func NewGenreService(genres repository.GenreRepository) GenreService {
	return &genreService{genres: genres}
}

func (s *genreService) List(ctx context.Context, search string) ([]model.Genre, error) {
	return s.genres.List(ctx, search)
}

func (s *genreService) Create(ctx context.Context, actor *model.User, name, slug string) (*model.Genre, error) {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return nil, err
	}
	genre := &model.Genre{Name: name, Slug: slug}
	if err := s.genres.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

// Delete removes a genre. Only the genre_titles link rows cascade; the
// titles themselves stay.
func (s *genreService) Delete(ctx context.Context, actor *model.User, slug string) error {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return err
	}
	deleted, err := s.genres.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	if !deleted {
		return apperrors.ErrGenreNotFound
	}
	return nil
}
