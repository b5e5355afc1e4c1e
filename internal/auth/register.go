package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/fretio/fretio/internal/alerts"
	"github.com/fretio/fretio/internal/db"
)

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Hostel      string `json:"hostel"`
	RoomNumber  string `json:"roomNumber"`
}

// Register creates an account tied to a hostel and returns a bearer
// token plus the stored profile.
func Register(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if len(req.Name) < 2 || req.Email == "" || req.PhoneNumber == "" || req.RoomNumber == "" || req.Hostel == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "name, email, password, phone number, hostel and room number are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Password must be at least 6 characters"})
	}

	ctx := context.Background()

	// Reject duplicate accounts before hashing
	var exists bool
	if err := db.Conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, req.Email).Scan(&exists); err == nil && exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists with this email"})
	}

	var hostelActive bool
	err := db.Conn.QueryRow(ctx, `SELECT is_active FROM hostels WHERE id = $1`, req.Hostel).Scan(&hostelActive)
	if err != nil || !hostelActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid hostel selected"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during registration"})
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during registration"})
	}
	defer tx.Rollback(ctx)

	userID := uuid.New().String()
	_, err = tx.Exec(ctx, `
        INSERT INTO users (id, name, email, password, phone_number, hostel_id, room_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, req.Name, req.Email, string(hashed), req.PhoneNumber, req.Hostel, req.RoomNumber,
	)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "User already exists with this email"})
	}

	// Counter update is part of the same transaction so registration
	// and hostel membership never drift apart.
	_, err = tx.Exec(ctx, `UPDATE hostels SET total_users = total_users + 1 WHERE id = $1`, req.Hostel)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during registration"})
	}

	if err := tx.Commit(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during registration"})
	}

	token, err := GenerateToken(userID, jwtSecret, tokenLifetime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "token generation failed"})
	}

	user, err := FetchUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during registration"})
	}

	// Best-effort welcome mail
	_ = alerts.EnqueueWelcomeEmail(userID, req.Email, req.Name)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}
