package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"reviewhub/internal/auth"
	apperrors "reviewhub/internal/errors"
	"reviewhub/internal/mailer"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

const (
	confirmationSubject  = "Your confirmation code"
	confirmationBodyTmpl = "Code: %s"
)

// AuthService handles signup and token issuance.
type AuthService interface {
	// Signup registers a user (or re-requests a code for an existing one)
	// and emails a confirmation code. Returns the echoed user row.
	Signup(ctx context.Context, username, email string) (*model.User, error)
	// IssueToken exchanges a valid confirmation code for a signed access token.
	IssueToken(ctx context.Context, username, code string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	jwt    *auth.JWTService
	codes  *auth.ConfirmationService
	mailer mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, codes *auth.ConfirmationService, m mailer.Mailer) AuthService {
	return &authService{
		users:  users,
		jwt:    jwt,
		codes:  codes,
		mailer: m,
	}
}

// Signup validates the username, finds or creates the user, rotates the
// confirmation state and emails a fresh code. A request matching an
// existing user's exact (username, email) pair is a resend; any partial
// collision is a conflict. Email delivery failure fails the request.
func (s *authService) Signup(ctx context.Context, username, email string) (*model.User, error) {
	// "me" is reserved for the self-service profile endpoint.
	if strings.EqualFold(username, "me") {
		return nil, apperrors.ErrReservedUsername
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if user.Email != email {
			return nil, apperrors.ErrUserExists
		}
		user.ConfirmationState = auth.NewConfirmationState()
		if err := s.users.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("rotate confirmation state: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.users.FindByEmail(ctx, email); err == nil {
			return nil, apperrors.ErrUserExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user = &model.User{
			Username:          username,
			Email:             email,
			Role:              model.RoleUser,
			ConfirmationState: auth.NewConfirmationState(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			// Concurrent signups race past the pre-checks; the unique
			// constraint is the authoritative conflict source.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrUserExists
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	default:
		return nil, fmt.Errorf("check username: %w", err)
	}

	code := s.codes.Code(user)
	if err := s.mailer.Send(user.Email, confirmationSubject, fmt.Sprintf(confirmationBodyTmpl, code)); err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}

	return user, nil
}

// IssueToken looks the user up by username, validates the confirmation
// code against the user's current state and mints an access token. An
// unknown username is not-found; a wrong code is an explicit invalid-code
// error, never not-found.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.codes.Check(user, code) {
		return "", apperrors.ErrInvalidConfirmationCode
	}

	token, err := s.jwt.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}
