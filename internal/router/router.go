package router

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"reviewhub/internal/auth"
	"reviewhub/internal/handler"
)

// Register wires routes and middleware. Reads stay on the open group;
// every mutating route goes through the JWT middleware, with role and
// ownership rules enforced in the services.
func Register(
	e *echo.Echo,
	authMW *auth.Middleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	genreHandler *handler.GenreHandler,
	titleHandler *handler.TitleHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Anonymous auth flow
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/token", authHandler.Token)

	// Public reads
	api.GET("/categories", categoryHandler.List)
	api.GET("/genres", genreHandler.List)
	api.GET("/titles", titleHandler.List)
	api.GET("/titles/:title_id", titleHandler.Get)
	api.GET("/titles/:title_id/reviews", reviewHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id", reviewHandler.Get)
	api.GET("/titles/:title_id/reviews/:review_id/comments", commentHandler.List)
	api.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", authMW.Authenticate())

	// User management (admin) and self-service profile
	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.GET("/users/me", userHandler.GetProfile)
	secured.PATCH("/users/me", userHandler.UpdateProfile)
	secured.GET("/users/:username", userHandler.GetUser)
	secured.PATCH("/users/:username", userHandler.UpdateUser)
	secured.DELETE("/users/:username", userHandler.DeleteUser)

	// Catalog writes
	secured.POST("/categories", categoryHandler.Create)
	secured.DELETE("/categories/:slug", categoryHandler.Delete)
	secured.POST("/genres", genreHandler.Create)
	secured.DELETE("/genres/:slug", genreHandler.Delete)
	secured.POST("/titles", titleHandler.Create)
	secured.PATCH("/titles/:title_id", titleHandler.Update)
	secured.DELETE("/titles/:title_id", titleHandler.Delete)

	// Review and comment writes
	secured.POST("/titles/:title_id/reviews", reviewHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:review_id", reviewHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:review_id", reviewHandler.Delete)
	secured.POST("/titles/:title_id/reviews/:review_id/comments", commentHandler.Create)
	secured.PATCH("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Update)
	secured.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", commentHandler.Delete)
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the extra slug rule.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
