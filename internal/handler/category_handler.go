package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CreateSlugRequest represents a category or genre creation request.
type CreateSlugRequest struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} SlugResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.svc.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	out := make([]SlugResponse, len(categories))
	for i := range categories {
		out[i] = categoryResponse(&categories[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSlugRequest true "Category data"
// @Success 201 {object} SlugResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateSlugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.svc.Create(c.Request().Context(), auth.Actor(c), req.Name, req.Slug)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, categoryResponse(category))
}

// Delete godoc
// @Summary Delete category by slug
// @Tags categories
// @Security BearerAuth
// @Param slug path string true "Category slug"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{slug} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), auth.Actor(c), c.Param("slug")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
