package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reviewhub/internal/auth"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/model"
	"reviewhub/internal/permission"
	"reviewhub/internal/repository"
)

// UserUpdate carries a partial admin-side user update. Nil fields stay unchanged.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *model.Role
}

// ProfileUpdate carries a partial self-service update. Role is deliberately
// absent: only admins change roles.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

// UserService handles user account management.
type UserService interface {
	Create(ctx context.Context, actor *model.User, user *model.User) (*model.User, error)
	Get(ctx context.Context, actor *model.User, username string) (*model.User, error)
	List(ctx context.Context, actor *model.User) ([]model.User, error)
	Update(ctx context.Context, actor *model.User, username string, upd UserUpdate) (*model.User, error)
	Delete(ctx context.Context, actor *model.User, username string) error
	UpdateProfile(ctx context.Context, actor *model.User, upd ProfileUpdate) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// Create registers a user on behalf of an admin. The account starts
// unconfirmed: the user requests a confirmation code through signup.
func (s *userService) Create(ctx context.Context, actor *model.User, user *model.User) (*model.User, error) {
	if err := permission.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.ConfirmationState = auth.NewConfirmationState()
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, actor *model.User, username string) (*model.User, error) {
	if err := permission.RequireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if err := permission.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

func (s *userService) Update(ctx context.Context, actor *model.User, username string, upd UserUpdate) (*model.User, error) {
	user, err := s.Get(ctx, actor, username)
	if err != nil {
		return nil, err
	}

	applyProfileFields(user, upd.Email, upd.FirstName, upd.LastName, upd.Bio)
	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor *model.User, username string) error {
	user, err := s.Get(ctx, actor, username)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// UpdateProfile lets any authenticated user edit their own profile.
func (s *userService) UpdateProfile(ctx context.Context, actor *model.User, upd ProfileUpdate) (*model.User, error) {
	if err := permission.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	applyProfileFields(user, upd.Email, upd.FirstName, upd.LastName, upd.Bio)

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func applyProfileFields(user *model.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
