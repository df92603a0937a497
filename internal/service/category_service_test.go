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

func TestCategoryService_Create(t *testing.T) {
	admin := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}
	reader := &model.User{ID: 3, Username: "reader", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name:  "admin creates a category",
			actor: admin,
			setupMock: func(categories *MockCategoryRepository) {
				categories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "plain user is forbidden",
			actor:         reader,
			setupMock:     func(*MockCategoryRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "anonymous actor must authenticate",
			actor:         nil,
			setupMock:     func(*MockCategoryRepository) {},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
		{
			name:  "slug already taken",
			actor: admin,
			setupMock: func(categories *MockCategoryRepository) {
				categories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			category, err := service.Create(context.Background(), tt.actor, "Movies", "movie")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Movies", category.Name)
				assert.Equal(t, "movie", category.Slug)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	admin := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}

	tests := []struct {
		name          string
		slug          string
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name: "existing slug",
			slug: "movie",
			setupMock: func(categories *MockCategoryRepository) {
				categories.On("DeleteBySlug", mock.Anything, "movie").Return(true, nil)
			},
			expectedError: nil,
		},
		{
			name: "unknown slug",
			slug: "ghost",
			setupMock: func(categories *MockCategoryRepository) {
				categories.On("DeleteBySlug", mock.Anything, "ghost").Return(false, nil)
			},
			expectedError: apperrors.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			err := service.Delete(context.Background(), admin, tt.slug)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
