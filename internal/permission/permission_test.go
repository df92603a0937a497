package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/errors"
	"reviewhub/internal/model"
)

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		expectedError error
	}{
		{
			name:          "anonymous actor",
			actor:         nil,
			expectedError: errors.ErrAuthenticationRequired,
		},
		{
			name:          "plain user",
			actor:         &model.User{ID: 1, Role: model.RoleUser},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "moderator is not admin",
			actor:         &model.User{ID: 2, Role: model.RoleModerator},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "admin role",
			actor:         &model.User{ID: 3, Role: model.RoleAdmin},
			expectedError: nil,
		},
		{
			name:          "staff flag grants admin",
			actor:         &model.User{ID: 4, Role: model.RoleUser, IsStaff: true},
			expectedError: nil,
		},
		{
			name:          "superuser flag grants admin",
			actor:         &model.User{ID: 5, Role: model.RoleUser, IsSuperuser: true},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.actor)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(nil), errors.ErrAuthenticationRequired)
	assert.NoError(t, RequireAuthenticated(&model.User{ID: 1, Role: model.RoleUser}))
}

func TestRequireContentOwner(t *testing.T) {
	const authorID = 42

	tests := []struct {
		name          string
		actor         *model.User
		expectedError error
	}{
		{
			name:          "anonymous actor",
			actor:         nil,
			expectedError: errors.ErrAuthenticationRequired,
		},
		{
			name:          "unrelated user",
			actor:         &model.User{ID: 7, Role: model.RoleUser},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "author",
			actor:         &model.User{ID: authorID, Role: model.RoleUser},
			expectedError: nil,
		},
		{
			name:          "moderator",
			actor:         &model.User{ID: 8, Role: model.RoleModerator},
			expectedError: nil,
		},
		{
			name:          "admin",
			actor:         &model.User{ID: 9, Role: model.RoleAdmin},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireContentOwner(tt.actor, authorID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// The 401/403 split must survive HTTP mapping: callers distinguish
// "authentication required" from "insufficient role".
func TestPermissionErrorsStayDistinguishable(t *testing.T) {
	assert.Equal(t, 401, errors.MapErrorToHTTP(RequireAdmin(nil)).StatusCode)
	assert.Equal(t, 403, errors.MapErrorToHTTP(RequireAdmin(&model.User{ID: 1, Role: model.RoleUser})).StatusCode)
}
