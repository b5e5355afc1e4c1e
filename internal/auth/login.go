package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/fretio/fretio/internal/db"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token.
func Login(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "email and password are required"})
	}

	ctx := context.Background()

	var userID, password string
	err := db.Conn.QueryRow(ctx, `SELECT id, password FROM users WHERE email = $1`, req.Email).Scan(&userID, &password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
	}

	token, err := GenerateToken(userID, jwtSecret, tokenLifetime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "token generation failed"})
	}

	user, err := FetchUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error during login"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated user's profile.
func Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	user, err := FetchUser(context.Background(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}
