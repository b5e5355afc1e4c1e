// Package admin holds the moderation surface for seller applications.
// Routes are mounted behind the admin guard.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/auth"
	"github.com/fretio/fretio/internal/db"
)

type pendingSeller struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	HostelName        string    `json:"hostelName"`
	RoomNumber        string    `json:"roomNumber"`
	AvailabilityHours string    `json:"availabilityHours"`
	Description       string    `json:"description"`
	AppliedAt         time.Time `json:"appliedAt"`
}

// ListPendingSellers returns seller applications awaiting review,
// oldest first.
func ListPendingSellers(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(), `
        SELECT u.id, u.name, u.email, h.name, u.room_number,
               COALESCE(u.seller_availability, ''), COALESCE(u.seller_description, ''),
               u.seller_applied_at
        FROM users u
        JOIN hostels h ON h.id = u.hostel_id
        WHERE u.seller_status = 'pending'
        ORDER BY u.seller_applied_at`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching applications"})
	}
	defer rows.Close()

	results := []pendingSeller{}
	for rows.Next() {
		var p pendingSeller
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.HostelName, &p.RoomNumber,
			&p.AvailabilityHours, &p.Description, &p.AppliedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to parse application record"})
		}
		results = append(results, p)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}

// ApproveSeller approves a pending application.
func ApproveSeller(c echo.Context) error {
	userID := c.Param("id")

	status, err := sellerStatus(userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error approving seller"})
	}
	if err := auth.CanApprove(status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No pending application for this user"})
	}

	if err := auth.ApproveSellerByID(context.Background(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error approving seller"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Seller application approved"})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// RejectSeller rejects a pending application with a reason. The
// applicant may apply again afterwards.
func RejectSeller(c echo.Context) error {
	userID := c.Param("id")

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request payload"})
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if req.Reason == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Rejection reason is required"})
	}

	status, err := sellerStatus(userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error rejecting seller"})
	}
	if err := auth.CanReject(status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No pending application for this user"})
	}

	tag, err := db.Conn.Exec(context.Background(), `
        UPDATE users
        SET seller_status = 'rejected',
            seller_rejected_at = NOW(),
            seller_rejection_reason = $2,
            updated_at = NOW()
        WHERE id = $1 AND seller_status = 'pending'`, userID, req.Reason)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error rejecting seller"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No pending application for this user"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Seller application rejected"})
}

func sellerStatus(userID string) (string, error) {
	var status string
	err := db.Conn.QueryRow(context.Background(),
		`SELECT seller_status FROM users WHERE id = $1`, userID).Scan(&status)
	return status, err
}
