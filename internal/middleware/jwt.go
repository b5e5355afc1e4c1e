package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/auth"
	"github.com/fretio/fretio/internal/db"
)

// JWTMiddleware resolves the bearer token to a principal and stashes
// the fields the handlers need into the request context. The hostel
// join happens here once so downstream guards never refetch it.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized to access this route"})
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Not authorized to access this route"})
		}

		userID, err := auth.UserIDFromToken(header[len(prefix):], auth.Secret())
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Token is not valid"})
		}

		var (
			hostelID   string
			hostelName string
			university string
			isSeller   bool
			isAdmin    bool
		)
		err = db.Conn.QueryRow(context.Background(), `
            SELECT h.id, h.name, h.university, u.is_seller, u.is_admin
            FROM users u
            JOIN hostels h ON h.id = u.hostel_id
            WHERE u.id = $1`, userID).Scan(&hostelID, &hostelName, &university, &isSeller, &isAdmin)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "User not found"})
		}

		c.Set("user_id", userID)
		c.Set("hostel_id", hostelID)
		c.Set("hostel_name", hostelName)
		c.Set("university", university)
		c.Set("is_seller", isSeller)
		c.Set("is_admin", isAdmin)
		return next(c)
	}
}
