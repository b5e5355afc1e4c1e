package items

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/alerts"
	"github.com/fretio/fretio/internal/db"
)

// MarkSold closes an available listing as sold or rented depending on
// its listing type, deactivates it, and credits the seller's counter.
// The status guard sits in the UPDATE itself so two concurrent calls
// cannot both succeed.
func MarkSold(c echo.Context) error {
	item, ok := c.Get("item").(*Item)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}

	if err := CanClose(item.Status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Item is already marked as sold or rented"})
	}

	target := ClosedStatus(item.ListingType)

	ctx := context.Background()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
        UPDATE items
        SET status = $1, is_active = FALSE, updated_at = NOW()
        WHERE id = $2 AND status = 'available'`,
		target, item.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Item is already marked as sold or rented"})
	}

	counter := "items_sold"
	if item.ListingType == "rent" {
		counter = "items_rented"
	}
	_, err = tx.Exec(ctx, `UPDATE users SET `+counter+` = `+counter+` + 1, updated_at = NOW() WHERE id = $1`, item.Seller.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}

	_, err = tx.Exec(ctx, `UPDATE hostels SET total_active_items = total_active_items - 1 WHERE id = $1 AND total_active_items > 0`, item.Hostel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error marking item as sold"})
	}

	item.Status = target
	item.IsActive = false
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Item marked as " + target + " successfully",
		"data":    item,
	})
}

// ExpressInterest records a buyer's interest, once per buyer and item.
// A repeated call is rejected, unlike contact which is idempotent.
func ExpressInterest(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	hostelID, _ := c.Get("hostel_id").(string)

	itemID := c.Param("id")
	ctx := context.Background()

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error expressing interest"})
	}

	if item.Hostel.ID != hostelID {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Access denied. Item not available in your hostel."})
	}
	if item.Seller.ID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You cannot express interest in your own item"})
	}

	res, err := db.Conn.Exec(ctx, `
        INSERT INTO item_interests (item_id, user_id) VALUES ($1, $2)
        ON CONFLICT (item_id, user_id) DO NOTHING`,
		itemID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error expressing interest"})
	}
	if res.RowsAffected() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You have already expressed interest in this item"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Interest expressed successfully"})
}

// ContactSeller reveals the seller's contact details and records the
// interaction. Safe to call repeatedly; the first call creates the
// interest row, later calls just return the details again.
func ContactSeller(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	hostelID, _ := c.Get("hostel_id").(string)

	itemID := c.Param("id")
	ctx := context.Background()

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error revealing contact information"})
	}

	if item.Hostel.ID != hostelID {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Access denied. Item not available in your hostel."})
	}
	if item.Seller.ID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You cannot contact yourself"})
	}

	_, err = db.Conn.Exec(ctx, `
        INSERT INTO item_interests (item_id, user_id, contacted_at) VALUES ($1, $2, NOW())
        ON CONFLICT (item_id, user_id) DO UPDATE SET contacted_at = NOW()`,
		itemID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error revealing contact information"})
	}

	var phone string
	if err := db.Conn.QueryRow(ctx, `SELECT phone_number FROM users WHERE id = $1`, item.Seller.ID).Scan(&phone); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error revealing contact information"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Contact information revealed",
		"data": echo.Map{
			"seller": echo.Map{
				"name":        item.Seller.Name,
				"roomNumber":  item.Seller.RoomNumber,
				"phoneNumber": phone,
				"rating":      item.Seller.Rating,
				"avatar":      item.Seller.Avatar,
			},
			"hostel": item.Hostel.Name,
		},
	})
}

type RateSellerRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// RateSeller folds a buyer's rating into the seller's running average.
// Only buyers who recorded interest in a completed transaction may
// rate, and only once the listing has left the available state.
func RateSeller(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	itemID := c.Param("id")

	var req RateSellerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Rating must be between 1 and 5"})
	}
	if len(req.Review) > 300 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Review cannot exceed 300 characters"})
	}

	ctx := context.Background()

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}

	if err := CanRate(item.Status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Can only rate completed transactions"})
	}
	if item.Seller.ID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You cannot rate yourself"})
	}

	var hasContacted bool
	err = db.Conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM item_interests WHERE item_id = $1 AND user_id = $2)`,
		itemID, userID).Scan(&hasContacted)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}
	if !hasContacted {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You can only rate sellers you have interacted with"})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}
	defer tx.Rollback(ctx)

	var oldAvg float64
	var oldCount int
	err = tx.QueryRow(ctx, `SELECT rating, total_ratings FROM users WHERE id = $1 FOR UPDATE`, item.Seller.ID).Scan(&oldAvg, &oldCount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}

	newAvg, newCount := UpdatedRating(oldAvg, oldCount, req.Rating)
	_, err = tx.Exec(ctx, `UPDATE users SET rating = $1, total_ratings = $2, updated_at = NOW() WHERE id = $3`,
		newAvg, newCount, item.Seller.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting rating"})
	}

	// Individual ratings are not retained; only the aggregate moves.
	log.Printf("rating submitted: item=%s seller=%s buyer=%s rating=%d review=%q at=%s",
		itemID, item.Seller.ID, userID, req.Rating, req.Review, time.Now().Format(time.RFC3339))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Rating submitted successfully",
		"data": echo.Map{
			"newRating":    newAvg,
			"totalRatings": newCount,
		},
	})
}

type ReportRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// Report submits an abuse report against an item's seller. Reports are
// accepted and recorded for review; nothing else changes.
func Report(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	hostelID, _ := c.Get("hostel_id").(string)

	itemID := c.Param("id")

	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Report reason is required"})
	}
	if len(req.Description) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Description cannot exceed 500 characters"})
	}

	ctx := context.Background()

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting report"})
	}

	if item.Seller.ID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You cannot report yourself"})
	}

	_ = alerts.EnqueueUserReport(userID, item.Seller.ID, itemID, hostelID, req.Reason, req.Description)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Report submitted successfully. Our team will review it shortly.",
	})
}
