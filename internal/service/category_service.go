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

// CategoryService handles category management. Listing is public; writes
// go through the catalog-write permission rule.
type CategoryService interface {
	List(ctx context.Context, search string) ([]model.Category, error)
	Create(ctx context.Context, actor *model.User, name, slug string) (*model.Category, error)
	Delete(ctx context.Context, actor *model.User, slug string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, search string) ([]model.Category, error) {
	return s.categories.List(ctx, search)
}

func (s *categoryService) Create(ctx context.Context, actor *model.User, name, slug string) (*model.Category, error) {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return nil, err
	}
	category := &model.Category{Name: name, Slug: slug}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// Delete removes a category. Titles referencing it survive with a null
// category through the ON DELETE SET NULL constraint.
func (s *categoryService) Delete(ctx context.Context, actor *model.User, slug string) error {
	if err := permission.RequireCatalogWrite(actor); err != nil {
		return err
	}
	deleted, err := s.categories.DeleteBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
