package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// AvailableQuantity is set only for insufficient-stock failures; Detail only
// in development mode for unexpected errors.
type errorResponse struct {
	Message           string `json:"message"`
	AvailableQuantity *int64 `json:"availableQuantity,omitempty"`
	Detail            string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client
//     (unless development is true).
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp, code := resolveError(err, log, c, development)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, development bool) (errorResponse, int) {
	// Echo's own errors: middleware rejections and router misses.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if errors.Is(err, echo.ErrNotFound) {
			msg = "Route not found"
		}
		return errorResponse{Message: msg}, he.Code
	}

	// Input rejected by a service-level validator.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return errorResponse{Message: ve.Msg}, http.StatusBadRequest
	}

	// Purchase exceeding available stock reports the true remaining quantity.
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return errorResponse{
			Message:           fmt.Sprintf("Insufficient stock. Only %d available", insufficient.Available),
			AvailableQuantity: &insufficient.Available,
		}, http.StatusBadRequest
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return errorResponse{Message: "User already exists"}, http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorResponse{Message: "Invalid credentials"}, http.StatusBadRequest
	case errors.Is(err, domain.ErrTooManyAttempts):
		return errorResponse{Message: "Too many login attempts. Try again later"}, http.StatusTooManyRequests
	case errors.Is(err, domain.ErrSweetNotFound):
		return errorResponse{Message: "Sweet not found"}, http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSweetName):
		return errorResponse{Message: "Sweet with this name already exists"}, http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidSweetID):
		return errorResponse{Message: "Invalid sweet id"}, http.StatusBadRequest
	case errors.Is(err, domain.ErrOutOfStock):
		return errorResponse{Message: "Sweet is out of stock"}, http.StatusBadRequest
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	resp := errorResponse{Message: "Server error"}
	if development {
		resp.Detail = err.Error()
	}
	return resp, http.StatusInternalServerError
}
