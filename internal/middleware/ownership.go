package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/items"
)

// RequireItemOwner loads the item from the path and rejects callers
// who do not own it. The loaded record is attached to the context so
// the handler does not fetch it again.
func RequireItemOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, _ := c.Get("user_id").(string)

		itemID := c.Param("id")
		if itemID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "missing item id"})
		}

		item, err := items.FetchItem(context.Background(), itemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error in ownership validation"})
		}

		if item.Seller.ID != userID {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Access denied. You can only modify your own items."})
		}

		c.Set("item", item)
		return next(c)
	}
}
