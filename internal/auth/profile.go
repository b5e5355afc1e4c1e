package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/fretio/fretio/internal/db"
)

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	RoomNumber  string `json:"roomNumber"`
	Avatar      string `json:"avatar"`
}

// UpdateProfile edits the mutable account fields.
func UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}

	if name := strings.TrimSpace(req.Name); name != "" && len(name) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Name must be at least 2 characters"})
	}

	query := `
        UPDATE users
        SET name = COALESCE(NULLIF($1, ''), name),
            phone_number = COALESCE(NULLIF($2, ''), phone_number),
            room_number = COALESCE(NULLIF($3, ''), room_number),
            avatar = COALESCE(NULLIF($4, ''), avatar),
            updated_at = NOW()
        WHERE id = $5
    `
	_, err := db.Conn.Exec(c.Request().Context(), query,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.PhoneNumber),
		strings.TrimSpace(req.RoomNumber), req.Avatar, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error updating profile"})
	}

	user, err := FetchUser(context.Background(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error updating profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password before replacing it.
func ChangePassword(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	if req.CurrentPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Current password is required"})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "New password must be at least 6 characters"})
	}

	ctx := context.Background()

	var stored string
	if err := db.Conn.QueryRow(ctx, `SELECT password FROM users WHERE id = $1`, userID).Scan(&stored); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(req.CurrentPassword)); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error changing password"})
	}

	if _, err := db.Conn.Exec(ctx, `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, string(hashed), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error changing password"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password updated successfully"})
}
