// Package dashboard serves the seller console: sales analytics,
// listing management and activation toggles. Every route sits behind
// the seller guard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/db"
	"github.com/fretio/fretio/internal/items"
)

type overview struct {
	TotalListings    int     `json:"totalListings"`
	ActiveListings   int     `json:"activeListings"`
	InactiveListings int     `json:"inactiveListings"`
	SoldItems        int     `json:"soldItems"`
	RentedItems      int     `json:"rentedItems"`
	TotalViews       int     `json:"totalViews"`
	Rating           float64 `json:"rating"`
	TotalRatings     int     `json:"totalRatings"`
}

type monthlyPoint struct {
	Month  string `json:"month"`
	Sold   int    `json:"sold"`
	Rented int    `json:"rented"`
}

type categoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	AvgPrice float64 `json:"avgPrice"`
}

type interestEvent struct {
	ItemID    string    `json:"itemId"`
	ItemTitle string    `json:"itemTitle"`
	UserName  string    `json:"userName"`
	Contacted bool      `json:"contacted"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analytics aggregates the caller's selling activity: listing and
// view counts, a six month sold/rented series, category breakdown and
// recent interest on their items.
func Analytics(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	ctx := context.Background()

	var ov overview
	err := db.Conn.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE i.is_active AND i.status = 'available'),
               COUNT(*) FILTER (WHERE NOT i.is_active),
               COUNT(*) FILTER (WHERE i.status = 'sold'),
               COUNT(*) FILTER (WHERE i.status = 'rented'),
               COALESCE(SUM(i.views), 0)
        FROM items i WHERE i.seller_id = $1`, userID).Scan(
		&ov.TotalListings, &ov.ActiveListings, &ov.InactiveListings,
		&ov.SoldItems, &ov.RentedItems, &ov.TotalViews,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
	}

	if err := db.Conn.QueryRow(ctx,
		`SELECT rating, total_ratings FROM users WHERE id = $1`, userID).Scan(&ov.Rating, &ov.TotalRatings); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
	}

	monthly := []monthlyPoint{}
	rows, err := db.Conn.Query(ctx, `
        SELECT to_char(date_trunc('month', updated_at), 'YYYY-MM') AS month,
               COUNT(*) FILTER (WHERE status = 'sold'),
               COUNT(*) FILTER (WHERE status = 'rented')
        FROM items
        WHERE seller_id = $1
          AND status IN ('sold', 'rented')
          AND updated_at >= date_trunc('month', NOW()) - INTERVAL '5 months'
        GROUP BY month
        ORDER BY month`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
	}
	for rows.Next() {
		var p monthlyPoint
		if err := rows.Scan(&p.Month, &p.Sold, &p.Rented); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
		}
		monthly = append(monthly, p)
	}
	rows.Close()

	categories := []categoryStat{}
	rows, err = db.Conn.Query(ctx, `
        SELECT category, COUNT(*), ROUND(AVG(price)::numeric, 2)
        FROM items
        WHERE seller_id = $1
        GROUP BY category
        ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
	}
	for rows.Next() {
		var s categoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.AvgPrice); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
		}
		categories = append(categories, s)
	}
	rows.Close()

	recent := []interestEvent{}
	rows, err = db.Conn.Query(ctx, `
        SELECT i.id, i.title, u.name, ii.contacted_at IS NOT NULL, ii.created_at
        FROM item_interests ii
        JOIN items i ON i.id = ii.item_id
        JOIN users u ON u.id = ii.user_id
        WHERE i.seller_id = $1
        ORDER BY ii.created_at DESC
        LIMIT 10`, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
	}
	for rows.Next() {
		var e interestEvent
		if err := rows.Scan(&e.ItemID, &e.ItemTitle, &e.UserName, &e.Contacted, &e.CreatedAt); err != nil {
			rows.Close()
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error building analytics"})
		}
		recent = append(recent, e)
	}
	rows.Close()

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"overview":       ov,
			"monthlySales":   monthly,
			"categories":     categories,
			"recentInterest": recent,
		},
	})
}

// Listings returns the seller's listings with a status filter and a
// free-text search over title and description.
func Listings(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	status := c.QueryParam("status")
	if status == "" {
		status = "all"
	}
	search := c.QueryParam("search")
	page, limit := items.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

	args := []any{userID}
	where := "WHERE i.seller_id = $1"
	if status != "all" {
		args = append(args, status)
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND (i.title ILIKE $%d OR i.description ILIKE $%d)", len(args), len(args))
	}

	ctx := context.Background()

	var total int
	if err := db.Conn.QueryRow(ctx, "SELECT COUNT(*) FROM items i "+where, args...).Scan(&total); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching listings"})
	}

	listed, err := items.FetchPage(ctx, where+" ORDER BY i.created_at DESC", args, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching listings"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       listed,
		"pagination": items.NewPagination(page, limit, len(listed), total),
	})
}

// ToggleListing flips a listing between active and inactive, keeping
// the hostel's active item counter in step.
func ToggleListing(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	itemID := c.Param("id")
	ctx := context.Background()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error toggling listing"})
	}
	defer tx.Rollback(ctx)

	var sellerID, hostelID string
	var isActive bool
	err = tx.QueryRow(ctx, `
        SELECT seller_id, hostel_id, is_active
        FROM items WHERE id = $1 FOR UPDATE`, itemID).Scan(&sellerID, &hostelID, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error toggling listing"})
	}
	if sellerID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{
			"success": false,
			"message": "Access denied. You can only modify your own items.",
		})
	}

	if _, err := tx.Exec(ctx,
		`UPDATE items SET is_active = NOT is_active, updated_at = NOW() WHERE id = $1`, itemID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error toggling listing"})
	}

	if isActive {
		_, err = tx.Exec(ctx, `
            UPDATE hostels SET total_active_items = total_active_items - 1
            WHERE id = $1 AND total_active_items > 0`, hostelID)
	} else {
		_, err = tx.Exec(ctx, `
            UPDATE hostels SET total_active_items = total_active_items + 1
            WHERE id = $1`, hostelID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error toggling listing"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error toggling listing"})
	}

	message := "Listing activated"
	if isActive {
		message = "Listing deactivated"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    echo.Map{"id": itemID, "isActive": !isActive},
	})
}
