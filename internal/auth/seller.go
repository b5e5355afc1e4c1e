package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/alerts"
	"github.com/fretio/fretio/internal/db"
)

// Auto-approval settings, wired from config at startup. When enabled,
// every application is approved by a delayed background task; the
// manual admin endpoints keep working either way.
var (
	AutoApprove      bool
	AutoApproveDelay = 30 * time.Second
)

type ApplySellerRequest struct {
	AvailabilityHours  string `json:"availabilityHours"`
	ProfileDescription string `json:"profileDescription"`
}

// ApplySeller submits a seller application for the caller.
func ApplySeller(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	var req ApplySellerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	req.AvailabilityHours = strings.TrimSpace(req.AvailabilityHours)
	if req.AvailabilityHours == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Availability hours is required"})
	}
	if len(req.ProfileDescription) > 500 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Profile description cannot exceed 500 characters"})
	}

	ctx := context.Background()

	var status string
	var isSeller bool
	if err := db.Conn.QueryRow(ctx, `SELECT seller_status, is_seller FROM users WHERE id = $1`, userID).Scan(&status, &isSeller); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	switch CanApply(status, isSeller) {
	case ErrAlreadyApplied:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You have already applied to become a seller. Please wait for approval."})
	case ErrAlreadySeller:
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "You are already a seller."})
	}

	_, err := db.Conn.Exec(ctx, `
        UPDATE users
        SET seller_status = 'pending',
            seller_availability = $1,
            seller_description = $2,
            seller_applied_at = NOW(),
            seller_rejected_at = NULL,
            seller_rejection_reason = NULL,
            updated_at = NOW()
        WHERE id = $3`,
		req.AvailabilityHours, req.ProfileDescription, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error submitting seller application"})
	}

	if AutoApprove {
		_ = alerts.EnqueueSellerAutoApproval(userID, AutoApproveDelay)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Seller application submitted successfully. You will be notified once approved.",
	})
}

// MockApproveSeller immediately approves the caller's own pending
// application. Kept from the MVP flow where approval is self-service.
func MockApproveSeller(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	ctx := context.Background()

	var status string
	if err := db.Conn.QueryRow(ctx, `SELECT seller_status FROM users WHERE id = $1`, userID).Scan(&status); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}
	if err := CanApprove(status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "No pending seller application found."})
	}

	if err := ApproveSellerByID(ctx, userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error approving seller application"})
	}

	user, err := FetchUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error approving seller application"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Congratulations! Your seller application has been approved.",
		"user":    user,
	})
}

// SellerStatus reports the caller's position in the seller workflow.
func SellerStatus(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	user, err := FetchUser(context.Background(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"sellerStatus":  user.SellerStatus,
			"isSeller":      user.IsSeller,
			"sellerProfile": user.SellerProfile,
		},
	})
}

// ApproveSellerByID moves a pending application to approved. The
// status guard in the WHERE clause keeps a concurrent reject from
// being overwritten.
func ApproveSellerByID(ctx context.Context, userID string) error {
	_, err := db.Conn.Exec(ctx, `
        UPDATE users
        SET is_seller = TRUE,
            seller_status = 'approved',
            seller_approved_at = NOW(),
            updated_at = NOW()
        WHERE id = $1 AND seller_status = 'pending'`, userID)
	return err
}
