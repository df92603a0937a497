package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// actorKey is the context key under which the authenticated user is stored.
const actorKey = "actor"

// Middleware validates bearer tokens and hydrates the acting user.
type Middleware struct {
	jwt   *JWTService
	users repository.UserRepository
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(jwt *JWTService, users repository.UserRepository) *Middleware {
	return &Middleware{jwt: jwt, users: users}
}

// Authenticate returns echo-jwt middleware that validates the token and
// loads the user behind it into the request context. The actor is re-read
// from the database on every request so role changes apply immediately.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := m.jwt.ValidateToken(tokenString)
			if err != nil {
				return nil, err
			}
			user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return nil, errors.New("token user no longer exists")
			}
			c.Set(actorKey, user)
			return claims, nil
		},
	})
}

// Actor returns the authenticated user for the request, or nil when the
// request is anonymous.
func Actor(c echo.Context) *model.User {
	if user, ok := c.Get(actorKey).(*model.User); ok {
		return user
	}
	return nil
}
