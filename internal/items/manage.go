package items

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/db"
)

// Create lists a new item. The listing is pinned to the seller's own
// hostel; sellers cannot list into another community.
func Create(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	hostelID, _ := c.Get("hostel_id").(string)
	if userID == "" || hostelID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	var in NewItemInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	if msg := in.Validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}
	if len(in.Images) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "At least one image is required"})
	}

	var rentDuration *string
	if in.ListingType == "rent" {
		rentDuration = &in.RentDuration
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Specifications == nil {
		in.Specifications = map[string]string{}
	}
	for i, tag := range in.Tags {
		in.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}

	ctx := context.Background()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error creating item"})
	}
	defer tx.Rollback(ctx)

	itemID := uuid.New().String()
	_, err = tx.Exec(ctx, `
        INSERT INTO items (id, title, description, category, condition, listing_type,
                           price, rent_duration, images, tags, specifications, seller_id, hostel_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		itemID, in.Title, in.Description, in.Category, in.Condition, in.ListingType,
		in.Price, rentDuration, in.Images, in.Tags, in.Specifications, userID, hostelID,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error creating item"})
	}

	_, err = tx.Exec(ctx, `UPDATE hostels SET total_active_items = total_active_items + 1 WHERE id = $1`, hostelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error creating item"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error creating item"})
	}

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error creating item"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

// Get returns a single listing. Viewing is hostel-scoped and bumps the
// view counter for everyone but the seller.
func Get(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	hostelID, _ := c.Get("hostel_id").(string)

	itemID := c.Param("id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "missing item id"})
	}

	ctx := context.Background()

	item, err := FetchItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching item"})
	}

	if item.Hostel.ID != hostelID {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Access denied. Item not available in your hostel."})
	}

	if item.Seller.ID != userID {
		if _, err := db.Conn.Exec(ctx, `UPDATE items SET views = views + 1 WHERE id = $1`, itemID); err == nil {
			item.Views++
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": item})
}

type UpdateItemRequest struct {
	Title          *string           `json:"title"`
	Description    *string           `json:"description"`
	Price          *float64          `json:"price"`
	Condition      *string           `json:"condition"`
	Status         *string           `json:"status"`
	Images         []string          `json:"images"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
}

func (r *UpdateItemRequest) validate() string {
	switch {
	case r.Title != nil && (len(strings.TrimSpace(*r.Title)) < 3 || len(*r.Title) > 100):
		return "Title must be between 3 and 100 characters"
	case r.Description != nil && (len(strings.TrimSpace(*r.Description)) < 10 || len(*r.Description) > 1000):
		return "Description must be between 10 and 1000 characters"
	case r.Price != nil && *r.Price < 0:
		return "Price cannot be negative"
	case r.Condition != nil && !contains(Conditions, *r.Condition):
		return "Invalid condition"
	case r.Status != nil && !contains([]string{StatusAvailable, StatusSold, StatusRented, StatusReserved}, *r.Status):
		return "Invalid status"
	}
	return ""
}

// Update edits an owned listing. The ownership guard has already
// loaded the item into the request context.
func Update(c echo.Context) error {
	item, ok := c.Get("item").(*Item)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error updating item"})
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}

	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		add("description", strings.TrimSpace(*req.Description))
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.Condition != nil {
		add("condition", *req.Condition)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.Images != nil {
		add("images", req.Images)
	}
	if req.Tags != nil {
		for i, tag := range req.Tags {
			req.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
		}
		add("tags", req.Tags)
	}
	if req.Specifications != nil {
		add("specifications", req.Specifications)
	}

	if len(sets) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "nothing to update"})
	}

	ctx := context.Background()

	args = append(args, item.ID)
	query := "UPDATE items SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(", updated_at = NOW() WHERE id = $%d", len(args))
	if _, err := db.Conn.Exec(ctx, query, args...); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error updating item"})
	}

	updated, err := FetchItem(ctx, item.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error updating item"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Item updated successfully",
		"data":    updated,
	})
}

// Delete removes an owned listing and releases its slot in the hostel
// active-item counter.
func Delete(c echo.Context) error {
	item, ok := c.Get("item").(*Item)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error deleting item"})
	}

	ctx := context.Background()

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error deleting item"})
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, item.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error deleting item"})
	}
	if item.IsActive {
		_, err = tx.Exec(ctx, `UPDATE hostels SET total_active_items = total_active_items - 1 WHERE id = $1 AND total_active_items > 0`, item.Hostel.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error deleting item"})
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error deleting item"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item deleted successfully"})
}

// MyListings returns the caller's own listings with an optional status
// filter.
func MyListings(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	status := c.QueryParam("status")
	if status == "" {
		status = "all"
	}
	page, limit := ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

	args := []any{userID}
	where := "WHERE i.seller_id = $1"
	if status != "all" {
		args = append(args, status)
		where += fmt.Sprintf(" AND i.status = $%d", len(args))
	}

	ctx := context.Background()

	results, err := FetchPage(ctx, where+" ORDER BY i.created_at DESC", args, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching your items"})
	}

	var total int
	if err := db.Conn.QueryRow(ctx, "SELECT COUNT(*) FROM items i "+where, args...).Scan(&total); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching your items"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"data":       results,
		"pagination": NewPagination(page, limit, len(results), total),
	})
}
