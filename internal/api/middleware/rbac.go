package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

type forbiddenResponse struct {
	Message  string `json:"message"`
	YourRole string `json:"yourRole"`
}

// RequireAdmin enforces the ADMIN role. It must run after Auth: an absent
// role means the authentication gate never ran, which is a 401, not a 403.
// The caller's actual role is echoed back for diagnostics; roles are not
// secret.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			if role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Message:  "Access denied. Admin privileges required.",
					YourRole: role,
				})
			}
			return next(c)
		}
	}
}
