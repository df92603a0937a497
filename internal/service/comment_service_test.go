package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
)

// MockCommentRepository is a mock implementation of CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, reviewID, id uint) (*model.Comment, error) {
	args := m.Called(ctx, reviewID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID uint) ([]model.Comment, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func TestCommentService_Create(t *testing.T) {
	reader := &model.User{ID: 7, Username: "reader", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockCommentRepository, *MockReviewRepository)
		expectedError error
	}{
		{
			name:  "successful create",
			actor: reader,
			setupMock: func(comments *MockCommentRepository, reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, TitleID: 1}, nil)
				comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "anonymous actor",
			actor:         nil,
			setupMock:     func(comments *MockCommentRepository, reviews *MockReviewRepository) {},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
		{
			name:  "review not under this title",
			actor: reader,
			setupMock: func(comments *MockCommentRepository, reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReviewNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			mockReviews := new(MockReviewRepository)
			tt.setupMock(mockComments, mockReviews)

			service := NewCommentService(mockComments, mockReviews)
			comment, err := service.Create(context.Background(), tt.actor, 1, 3, "agreed")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.actor.ID, comment.AuthorID)
				assert.Equal(t, uint(3), comment.ReviewID)
			}

			mockComments.AssertExpectations(t)
			mockReviews.AssertExpectations(t)
		})
	}
}

func TestCommentService_Delete(t *testing.T) {
	owner := &model.User{ID: 7, Username: "reader", Role: model.RoleUser}
	other := &model.User{ID: 8, Username: "stranger", Role: model.RoleUser}
	moderator := &model.User{ID: 9, Username: "mod", Role: model.RoleModerator}

	stored := func() *model.Comment {
		return &model.Comment{ID: 5, AuthorID: owner.ID, ReviewID: 3}
	}

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockCommentRepository, *MockReviewRepository)
		expectedError error
	}{
		{
			name:  "owner can delete",
			actor: owner,
			setupMock: func(comments *MockCommentRepository, reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, TitleID: 1}, nil)
				comments.On("FindByID", mock.Anything, uint(3), uint(5)).Return(stored(), nil)
				comments.On("Delete", mock.Anything, uint(5)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "moderator can delete someone else's comment",
			actor: moderator,
			setupMock: func(comments *MockCommentRepository, reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, TitleID: 1}, nil)
				comments.On("FindByID", mock.Anything, uint(3), uint(5)).Return(stored(), nil)
				comments.On("Delete", mock.Anything, uint(5)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "unrelated user is forbidden",
			actor: other,
			setupMock: func(comments *MockCommentRepository, reviews *MockReviewRepository) {
				reviews.On("FindByID", mock.Anything, uint(1), uint(3)).
					Return(&model.Review{ID: 3, TitleID: 1}, nil)
				comments.On("FindByID", mock.Anything, uint(3), uint(5)).Return(stored(), nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockComments := new(MockCommentRepository)
			mockReviews := new(MockReviewRepository)
			tt.setupMock(mockComments, mockReviews)

			service := NewCommentService(mockComments, mockReviews)
			err := service.Delete(context.Background(), tt.actor, 1, 3, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockComments.AssertExpectations(t)
			mockReviews.AssertExpectations(t)
		})
	}
}
