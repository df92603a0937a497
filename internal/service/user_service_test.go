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

func TestUserService_Create(t *testing.T) {
	admin := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}
	staff := &model.User{ID: 2, Username: "staff", Role: model.RoleUser, IsStaff: true}
	reader := &model.User{ID: 3, Username: "reader", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "admin creates a user",
			actor: admin,
			setupMock: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "staff flag grants admin power",
			actor: staff,
			setupMock: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "plain user is forbidden",
			actor:         reader,
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "anonymous actor must authenticate",
			actor:         nil,
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
		{
			name:  "username or email already taken",
			actor: admin,
			setupMock: func(users *MockUserRepository) {
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Create(context.Background(), tt.actor, &model.User{
				Username: "newbie",
				Email:    "newbie@example.com",
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, user.ConfirmationState)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_RoleChange(t *testing.T) {
	admin := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}
	newRole := model.RoleModerator

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "reader").Return(&model.User{
		ID:       3,
		Username: "reader",
		Role:     model.RoleUser,
	}, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := NewUserService(mockRepo)
	user, err := service.Update(context.Background(), admin, "reader", UserUpdate{Role: &newRole})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	reader := &model.User{ID: 3, Username: "reader", Role: model.RoleUser}
	newBio := "casual reviewer"

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "authenticated user edits own profile",
			actor: reader,
			setupMock: func(users *MockUserRepository) {
				users.On("FindByID", mock.Anything, uint(3)).Return(&model.User{
					ID:       3,
					Username: "reader",
					Role:     model.RoleUser,
				}, nil)
				users.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "anonymous actor must authenticate",
			actor:         nil,
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrAuthenticationRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.UpdateProfile(context.Background(), tt.actor, ProfileUpdate{Bio: &newBio})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, newBio, user.Bio)
				// Self-service updates never touch the role.
				assert.Equal(t, model.RoleUser, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	admin := &model.User{ID: 1, Username: "boss", Role: model.RoleAdmin}
	reader := &model.User{ID: 3, Username: "reader", Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		username      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "admin fetches any user",
			actor:    admin,
			username: "reader",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "reader").Return(reader, nil)
			},
			expectedError: nil,
		},
		{
			name:          "plain user is forbidden",
			actor:         reader,
			username:      "boss",
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:     "unknown username",
			actor:    admin,
			username: "ghost",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo)
			user, err := service.Get(context.Background(), tt.actor, tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
