package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, titleID, id uint) (*model.Review, error) {
	args := m.Called(ctx, titleID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID uint) ([]model.Review, error) {
	args := m.Called(ctx, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageScore(ctx context.Context, titleID uint) (*float64, error) {
	args := m.Called(ctx, titleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockReviewRepository) AverageScores(ctx context.Context, titleIDs []uint) (map[uint]float64, error) {
	args := m.Called(ctx, titleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]float64), args.Error(1)
}

// MockTitleRepository is a mock implementation of TitleRepository.
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Create(ctx context.Context, title *model.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) Save(ctx context.Context, title *model.Title) error {
	args := m.Called(ctx, title)
	return args.Error(0)
}

func (m *MockTitleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	args := m.Called(ctx, title, genres)
	return args.Error(0)
}

func (m *MockTitleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTitleRepository) List(ctx context.Context, filters repository.TitleFilters) ([]model.Title, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Title), args.Error(1)
}

func TestReviewService_Create(t *testing.T) {
	reader := &model.User{ID: 7, Username: "reader", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		titleID       uint
		setupMock     func(*MockReviewRepository, *MockTitleRepository)
		expectedError error
	}{
		{
			name:    "successful create",
			actor:   reader,
			titleID: 1,
			setupMock: func(reviews *MockReviewRepository, titles *MockTitleRepository) {
				titles.On("FindByID", mock.Anything, uint(1)).Return(&model.Title{ID: 1}, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "anonymous actor",
			actor:         nil,
			titleID:       1,
			setupMock:     func(reviews *MockReviewRepository, titles *MockTitleRepository) {},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
		{
			name:    "unknown title",
			actor:   reader,
			titleID: 99,
			setupMock: func(reviews *MockReviewRepository, titles *MockTitleRepository) {
				titles.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTitleNotFound,
		},
		{
			name:    "second review for the same title",
			actor:   reader,
			titleID: 1,
			setupMock: func(reviews *MockReviewRepository, titles *MockTitleRepository) {
				titles.On("FindByID", mock.Anything, uint(1)).Return(&model.Title{ID: 1}, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateReview,
		},
		{
			name:    "title deleted between check and insert",
			actor:   reader,
			titleID: 1,
			setupMock: func(reviews *MockReviewRepository, titles *MockTitleRepository) {
				titles.On("FindByID", mock.Anything, uint(1)).Return(&model.Title{ID: 1}, nil)
				reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(gorm.ErrForeignKeyViolated)
			},
			expectedError: apperrors.ErrTitleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			mockTitles := new(MockTitleRepository)
			tt.setupMock(mockReviews, mockTitles)

			service := NewReviewService(mockReviews, mockTitles, nil)
			review, err := service.Create(context.Background(), tt.actor, tt.titleID, "great title", 8)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, review)
				assert.Equal(t, tt.actor.ID, review.AuthorID)
				assert.Equal(t, tt.titleID, review.TitleID)
				assert.Equal(t, tt.actor.Username, review.Author.Username)
			}

			mockReviews.AssertExpectations(t)
			mockTitles.AssertExpectations(t)
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	owner := &model.User{ID: 7, Username: "reader", Role: model.RoleUser}
	other := &model.User{ID: 8, Username: "stranger", Role: model.RoleUser}
	moderator := &model.User{ID: 9, Username: "mod", Role: model.RoleModerator}
	admin := &model.User{ID: 10, Username: "boss", Role: model.RoleAdmin}

	stored := func() *model.Review {
		return &model.Review{ID: 3, Text: "original", Score: 5, AuthorID: owner.ID, TitleID: 1}
	}
	newText := "revised"
	newScore := 9

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockReviewRepository)
		expectedError error
	}{
		{
			name:  "owner can edit",
			actor: owner,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(stored(), nil)
				reviews.On("Save", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "moderator can edit someone else's review",
			actor: moderator,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(stored(), nil)
				reviews.On("Save", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "admin can edit someone else's review",
			actor: admin,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(stored(), nil)
				reviews.On("Save", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "unrelated user is forbidden",
			actor: other,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(stored(), nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "anonymous actor must authenticate",
			actor: nil,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(stored(), nil)
			},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
		{
			name:  "review under another title is not found",
			actor: owner,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			tt.setupMock(mockReviews)

			service := NewReviewService(mockReviews, new(MockTitleRepository), nil)
			review, err := service.Update(context.Background(), tt.actor, 1, 3, ReviewUpdate{Text: &newText, Score: &newScore})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, review)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newText, review.Text)
				assert.Equal(t, newScore, review.Score)
			}

			mockReviews.AssertExpectations(t)
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	owner := &model.User{ID: 7, Username: "reader", Role: model.RoleUser}
	other := &model.User{ID: 8, Username: "stranger", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockReviewRepository)
		expectedError error
	}{
		{
			name:  "owner can delete",
			actor: owner,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, AuthorID: owner.ID, TitleID: 1}, nil)
				reviews.On("Delete", mock.Anything, uint(3)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "unrelated user is forbidden",
			actor: other,
			setupMock: func(reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, AuthorID: owner.ID, TitleID: 1}, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReviews := new(MockReviewRepository)
			tt.setupMock(mockReviews)

			service := NewReviewService(mockReviews, new(MockTitleRepository), nil)
			err := service.Delete(context.Background(), tt.actor, 1, 3)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockReviews.AssertExpectations(t)
		})
	}
}
