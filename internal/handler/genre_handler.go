package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/service"
)

// GenreHandler handles genre endpoints.
type GenreHandler struct {
	svc service.GenreService
}

// NewGenreHandler creates a new genre handler.
func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

// List godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} SlugResponse
// @Router /genres [get]
func (h *GenreHandler) List(c echo.Context) error {
	genres, err := h.svc.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	out := make([]SlugResponse, len(genres))
	for i := range genres {
		out[i] = genreResponse(&genres[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create genre
// @Tags genres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSlugRequest true "Genre data"
// @Success 201 {object} SlugResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /genres [post]
func (h *GenreHandler) Create(c echo.Context) error {
	var req CreateSlugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	genre, err := h.svc.Create(c.Request().Context(), auth.Actor(c), req.Name, req.Slug)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, genreResponse(genre))
}

// Delete godoc
// @Summary Delete genre by slug
// @Tags genres
// @Security BearerAuth
// @Param slug path string true "Genre slug"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /genres/{slug} [delete]
func (h *GenreHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), auth.Actor(c), c.Param("slug")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
