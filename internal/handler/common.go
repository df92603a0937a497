package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "reviewhub/internal/errors"
)

// httpError translates a domain error into an echo HTTP error with the
// standard {error, code} payload.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(400, "invalid "+name)
	}
	return uint(id), nil
}
