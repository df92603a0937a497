package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

// TitleHandler handles title endpoints.
type TitleHandler struct {
	svc service.TitleService
}

// NewTitleHandler creates a new title handler.
func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// CreateTitleRequest is the flat write shape: slugs for category and
// genres, resolved and validated server-side.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" validate:"required,max=50"`
	Genre       []string `json:"genre" validate:"required,min=1,dive,max=50"`
}

// UpdateTitleRequest is the partial write shape. Nil fields stay
// unchanged; an empty genre list is rejected.
type UpdateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Genre       []string `json:"genre" validate:"omitempty,min=1,dive,max=50"`
}

// List godoc
// @Summary List titles with computed ratings
// @Tags titles
// @Produce json
// @Param category query string false "Category slug filter"
// @Param genre query string false "Genre slug filter"
// @Param name query string false "Name substring filter"
// @Param year query int false "Exact year filter"
// @Success 200 {array} TitleResponse
// @Router /titles [get]
func (h *TitleHandler) List(c echo.Context) error {
	filters := repository.TitleFilters{
		Category: c.QueryParam("category"),
		Genre:    c.QueryParam("genre"),
		Name:     c.QueryParam("name"),
	}
	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year filter")
		}
		filters.Year = &year
	}

	titles, err := h.svc.List(c.Request().Context(), filters)
	if err != nil {
		return httpError(err)
	}
	out := make([]TitleResponse, len(titles))
	for i := range titles {
		out[i] = titleResponse(titles[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve a title with its computed rating
// @Tags titles
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {object} TitleResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id} [get]
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	title, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, titleResponse(*title))
}

// Create godoc
// @Summary Create title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTitleRequest true "Title data"
// @Success 201 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /titles [post]
func (h *TitleHandler) Create(c echo.Context) error {
	var req CreateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.svc.Create(c.Request().Context(), auth.Actor(c), service.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, titleResponse(*title))
}

// Update godoc
// @Summary Update title
// @Tags titles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param request body UpdateTitleRequest true "Fields to update"
// @Success 200 {object} TitleResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id} [patch]
func (h *TitleHandler) Update(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	var req UpdateTitleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title, err := h.svc.Update(c.Request().Context(), auth.Actor(c), id, service.TitleUpdate{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, titleResponse(*title))
}

// Delete godoc
// @Summary Delete title
// @Tags titles
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id} [delete]
func (h *TitleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), auth.Actor(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
