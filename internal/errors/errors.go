package errors

import (
	"errors"
	"net/http"
)

// Authentication and permission errors.
var (
	// ErrAuthenticationRequired is returned when an anonymous actor attempts a gated action.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrForbidden is returned when an authenticated actor lacks the required role or ownership.
	ErrForbidden = errors.New("insufficient role for this action")
)

// Not-found errors.
var (
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category slug does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrGenreNotFound is returned when a genre slug does not resolve.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrTitleNotFound is returned when a title id does not resolve.
	ErrTitleNotFound = errors.New("title not found")
	// ErrReviewNotFound is returned when a review id does not resolve for the given title.
	ErrReviewNotFound = errors.New("review not found")
	// ErrCommentNotFound is returned when a comment id does not resolve for the given review.
	ErrCommentNotFound = errors.New("comment not found")
)

// Conflict errors. These originate from database uniqueness constraints.
var (
	// ErrUserExists is returned when username or email is already taken by another user.
	ErrUserExists = errors.New("username or email already taken")
	// ErrDuplicateReview is returned when the author already reviewed the title.
	ErrDuplicateReview = errors.New("you have already reviewed this title")
	// ErrDuplicateSlug is returned when a category or genre slug is already taken.
	ErrDuplicateSlug = errors.New("slug already taken")
)

// Validation errors.
var (
	// ErrReservedUsername is returned on signup with the reserved username "me".
	ErrReservedUsername = errors.New(`username "me" is reserved`)
	// ErrInvalidConfirmationCode is returned when the confirmation code does not
	// match the user's current state. Distinct from ErrUserNotFound.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	// ErrUnknownCategory is returned when a title write references a missing category slug.
	ErrUnknownCategory = errors.New("unknown category slug")
	// ErrUnknownGenre is returned when a title write references a missing genre slug.
	ErrUnknownGenre = errors.New("unknown genre slug")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAuthenticationRequired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTHENTICATION_REQUIRED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrGenreNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GENRE_NOT_FOUND")
	case errors.Is(err, ErrTitleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TITLE_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REVIEW")
	case errors.Is(err, ErrDuplicateSlug):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_SLUG")
	case errors.Is(err, ErrReservedUsername):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESERVED_USERNAME")
	case errors.Is(err, ErrInvalidConfirmationCode):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CONFIRMATION_CODE")
	case errors.Is(err, ErrUnknownCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CATEGORY")
	case errors.Is(err, ErrUnknownGenre):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_GENRE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
