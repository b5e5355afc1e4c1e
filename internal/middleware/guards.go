package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminGuard ensures only admin users can access admin routes
func AdminGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get("is_admin").(bool)
		if !ok || !isAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "admin access only"})
		}
		return next(c)
	}
}

// RequireSeller gates routes to approved sellers.
func RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isSeller, ok := c.Get("is_seller").(bool)
		if !ok || !isSeller {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Access denied. Only approved sellers can do this."})
		}
		return next(c)
	}
}
