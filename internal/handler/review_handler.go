package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/service"
)

// ReviewHandler handles review endpoints nested under titles.
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// CreateReviewRequest represents a review creation request.
type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// UpdateReviewRequest represents a partial review update.
type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// List godoc
// @Summary List reviews for a title
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Success 200 {array} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviews, err := h.svc.ListByTitle(c.Request().Context(), titleID)
	if err != nil {
		return httpError(err)
	}
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = reviewResponse(&reviews[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve a review
// @Tags reviews
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {object} ReviewResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}
	review, err := h.svc.Get(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviewResponse(review))
}

// Create godoc
// @Summary Create a review for a title
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.svc.Create(c.Request().Context(), auth.Actor(c), titleID, req.Text, req.Score)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reviewResponse(review))
}

// Update godoc
// @Summary Update a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body UpdateReviewRequest true "Fields to update"
// @Success 200 {object} ReviewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id} [patch]
func (h *ReviewHandler) Update(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.svc.Update(c.Request().Context(), auth.Actor(c), titleID, reviewID, service.ReviewUpdate{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviewResponse(review))
}

// Delete godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	titleID, err := pathID(c, "title_id")
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "review_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), auth.Actor(c), titleID, reviewID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
