package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reviewhub/internal/auth"
	"reviewhub/internal/service"
)

// CommentHandler handles comment endpoints nested under reviews.
type CommentHandler struct {
	svc service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateCommentRequest represents a partial comment update.
type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

func commentScope(c echo.Context) (titleID, reviewID uint, err error) {
	titleID, err = pathID(c, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = pathID(c, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// List godoc
// @Summary List comments for a review
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Success 200 {array} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	titleID, reviewID, err := commentScope(c)
	if err != nil {
		return err
	}
	comments, err := h.svc.ListByReview(c.Request().Context(), titleID, reviewID)
	if err != nil {
		return httpError(err)
	}
	out := make([]CommentResponse, len(comments))
	for i := range comments {
		out[i] = commentResponse(&comments[i])
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Retrieve a comment
// @Tags comments
// @Produce json
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	titleID, reviewID, err := commentScope(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	comment, err := h.svc.Get(c.Request().Context(), titleID, reviewID, commentID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, commentResponse(comment))
}

// Create godoc
// @Summary Create a comment on a review
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	titleID, reviewID, err := commentScope(c)
	if err != nil {
		return err
	}
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.svc.Create(c.Request().Context(), auth.Actor(c), titleID, reviewID, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, commentResponse(comment))
}

// Update godoc
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Param request body UpdateCommentRequest true "Fields to update"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [patch]
func (h *CommentHandler) Update(c echo.Context) error {
	titleID, reviewID, err := commentScope(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	var req UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.svc.Update(c.Request().Context(), auth.Actor(c), titleID, reviewID, commentID, service.CommentUpdate{
		Text: req.Text,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, commentResponse(comment))
}

// Delete godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param title_id path int true "Title ID"
// @Param review_id path int true "Review ID"
// @Param comment_id path int true "Comment ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /titles/{title_id}/reviews/{review_id}/comments/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	titleID, reviewID, err := commentScope(c)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), auth.Actor(c), titleID, reviewID, commentID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
