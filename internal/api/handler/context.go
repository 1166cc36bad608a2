package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-api/internal/api/middleware"
)

// ctxUserID extracts the account id injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing id means the
// authentication gate never ran for this route — reject with 401 rather than
// proceed anonymously.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
	}
	return id, nil
}
