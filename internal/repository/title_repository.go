package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/model"
)

// TitleFilters narrows title listings. Zero values mean "no filter".
type TitleFilters struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // name substring
	Year     *int
}

// TitleRepository defines title persistence operations.
type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	Save(ctx context.Context, title *model.Title) error
	// ReplaceGenres swaps the genre link rows for the title.
	ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error
	FindByID(ctx context.Context, id uint) (*model.Title, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters TitleFilters) ([]model.Title, error)
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository builds a GORM-backed repository.
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Save(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Omit("Genres").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	var title model.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// Delete removes the title row. Reviews and genre links cascade at the
// database level.
func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Title{}, id).Error
}

func (r *titleRepository) List(ctx context.Context, filters TitleFilters) ([]model.Title, error) {
	q := r.db.WithContext(ctx).Model(&model.Title{}).
		Preload("Category").
		Preload("Genres").
		Order("titles.id")

	if filters.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filters.Category)
	}
	if filters.Genre != "" {
		q = q.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filters.Genre)
	}
	if filters.Name != "" {
		q = q.Where("titles.name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		q = q.Where("titles.year = ?", *filters.Year)
	}

	var titles []model.Title
	if err := q.Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}
