package api

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ErrorResponse is the JSON error envelope for every non-2xx response
type ErrorResponse struct {
	Errors []string `json:"errors"`
}

// StatusFromError maps an error category to an HTTP status code.
// Anything unrecognized is treated as an internal failure.
func StatusFromError(err error) int {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return router.StatusInternalServerError
	}

	switch richErr.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryAuth:
		return router.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return router.StatusForbidden
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	case goerrors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}

// RespondError writes the error envelope with the mapped status code
func RespondError(ctx router.Context, err error) error {
	return ctx.JSON(StatusFromError(err), ErrorResponse{
		Errors: []string{err.Error()},
	})
}
