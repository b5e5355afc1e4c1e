// Package hostels serves the hostel directory. Hostels are created by
// a seeding procedure, never by end users; these handlers are
// read-only.
package hostels

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/fretio/fretio/internal/db"
)

// Address is the structured hostel address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// ContactInfo holds the hostel office contacts.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Hostel is a residence community record.
type Hostel struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Address          Address     `json:"address"`
	ContactInfo      ContactInfo `json:"contactInfo"`
	TotalRooms       int         `json:"totalRooms"`
	Facilities       []string    `json:"facilities"`
	Description      string      `json:"description"`
	University       string      `json:"university"`
	IsActive         bool        `json:"isActive"`
	TotalUsers       int         `json:"totalUsers"`
	TotalActiveItems int         `json:"totalActiveItems"`
	CreatedAt        time.Time   `json:"createdAt"`
}

const hostelSelect = `
    SELECT id, name, street, city, state, zip_code, country,
           contact_phone, contact_email, total_rooms, facilities,
           description, university, is_active, total_users,
           total_active_items, created_at
    FROM hostels`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHostel(row rowScanner) (*Hostel, error) {
	var h Hostel
	err := row.Scan(
		&h.ID, &h.Name, &h.Address.Street, &h.Address.City, &h.Address.State,
		&h.Address.ZipCode, &h.Address.Country,
		&h.ContactInfo.Phone, &h.ContactInfo.Email, &h.TotalRooms, &h.Facilities,
		&h.Description, &h.University, &h.IsActive, &h.TotalUsers,
		&h.TotalActiveItems, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if h.Facilities == nil {
		h.Facilities = []string{}
	}
	return &h, nil
}

// FullAddress renders the address as a single line.
func (h *Hostel) FullAddress() string {
	a := h.Address
	return a.Street + ", " + a.City + ", " + a.State + " " + a.ZipCode + ", " + a.Country
}

// List returns all active hostels, sorted by name. Public: the
// registration form needs it before the user has an account.
func List(c echo.Context) error {
	rows, err := db.Conn.Query(context.Background(), hostelSelect+` WHERE is_active ORDER BY name`)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching hostels"})
	}
	defer rows.Close()

	results := []*Hostel{}
	for rows.Next() {
		h, err := scanHostel(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to parse hostel record"})
		}
		results = append(results, h)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": results})
}

// Get returns a single hostel by id.
func Get(c echo.Context) error {
	hostelID := c.Param("id")
	if hostelID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "missing hostel id"})
	}

	h, err := scanHostel(db.Conn.QueryRow(context.Background(), hostelSelect+` WHERE id = $1`, hostelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hostel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching hostel"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": h})
}

// MyInfo returns the caller's own hostel.
func MyInfo(c echo.Context) error {
	hostelID, ok := c.Get("hostel_id").(string)
	if !ok || hostelID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	h, err := scanHostel(db.Conn.QueryRow(context.Background(), hostelSelect+` WHERE id = $1`, hostelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Hostel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Server error fetching hostel information"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": h})
}
