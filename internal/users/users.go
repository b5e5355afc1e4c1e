// Package users exposes public member profiles. Visibility is limited
// to the caller's own hostel.
package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/db"
	"github.com/fretio/fretio/internal/items"
)

// Profile is the public view of a member. Contact details stay
// private until the member shares them through a contact exchange.
type Profile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	RoomNumber       string    `json:"roomNumber"`
	Avatar           string    `json:"avatar,omitempty"`
	Rating           float64   `json:"rating"`
	TotalRatings     int       `json:"totalRatings"`
	ItemsSold        int       `json:"itemsSold"`
	ItemsRented      int       `json:"itemsRented"`
	IsSeller         bool      `json:"isSeller"`
	HostelName       string    `json:"hostelName"`
	ActiveItemsCount int       `json:"activeItemsCount"`
	MemberSince      time.Time `json:"memberSince"`
}

// Get returns the public profile of a member from the caller's hostel.
func Get(c echo.Context) error {
	userID := c.Param("id")
	callerHostel, _ := c.Get("hostel_id").(string)

	var p Profile
	var hostelID string
	var avatar *string
	err := db.Conn.QueryRow(context.Background(), `
        SELECT u.id, u.name, u.room_number, u.avatar, u.rating, u.total_ratings,
               u.items_sold, u.items_rented, u.is_seller, u.hostel_id, h.name, u.created_at
        FROM users u
        JOIN hostels h ON h.id = u.hostel_id
        WHERE u.id = $1`, userID).Scan(
		&p.ID, &p.Name, &p.RoomNumber, &avatar, &p.Rating, &p.TotalRatings,
		&p.ItemsSold, &p.ItemsRented, &p.IsSeller, &hostelID, &p.HostelName, &p.MemberSince,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching user"})
	}
	if avatar != nil {
		p.Avatar = *avatar
	}

	if hostelID != callerHostel {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "Access denied. You can only view profiles from your hostel.",
		})
	}

	err = db.Conn.QueryRow(context.Background(), `
        SELECT COUNT(*) FROM items
        WHERE seller_id = $1 AND is_active AND status = 'available'`, userID).Scan(&p.ActiveItemsCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching user"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// GetItems returns the listings posted by a member from the caller's
// hostel. Defaults to available items only; status=all lifts the
// filter.
func GetItems(c echo.Context) error {
	userID := c.Param("id")
	callerHostel, _ := c.Get("hostel_id").(string)

	var hostelID string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT hostel_id FROM users WHERE id = $1`, userID).Scan(&hostelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching user items"})
	}
	if hostelID != callerHostel {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "Access denied. You can only view profiles from your hostel.",
		})
	}

	status := c.QueryParam("status")
	if status == "" {
		status = items.StatusAvailable
	}
	page, limit := items.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

	where := `WHERE i.seller_id = $1 AND i.is_active`
	args := []any{userID}
	if status != "all" {
		where += ` AND i.status = $2`
		args = append(args, status)
	}

	var total int
	if err := db.Conn.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM items i `+where, args...).Scan(&total); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching user items"})
	}

	listed, err := items.FetchPage(context.Background(), where+` ORDER BY i.created_at DESC`, args, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching user items"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       listed,
		"pagination": items.NewPagination(page, limit, len(listed), total),
	})
}
