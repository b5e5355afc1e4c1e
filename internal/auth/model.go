package auth

import (
	"context"
	"time"

	"github.com/fretio/fretio/internal/db"
)

// HostelRef is the hostel summary embedded in user responses.
type HostelRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	University string `json:"university"`
}

// SellerProfile carries the seller application metadata.
type SellerProfile struct {
	AvailabilityHours  string     `json:"availabilityHours,omitempty"`
	ProfileDescription string     `json:"profileDescription,omitempty"`
	AppliedAt          *time.Time `json:"appliedAt,omitempty"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	RejectedAt         *time.Time `json:"rejectedAt,omitempty"`
	RejectionReason    string     `json:"rejectionReason,omitempty"`
}

// User is the account record returned to callers. The password hash
// never leaves the database layer.
type User struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phoneNumber"`
	RoomNumber    string        `json:"roomNumber"`
	Hostel        HostelRef     `json:"hostel"`
	Avatar        string        `json:"avatar,omitempty"`
	Rating        float64       `json:"rating"`
	TotalRatings  int           `json:"totalRatings"`
	ItemsSold     int           `json:"itemsSold"`
	ItemsRented   int           `json:"itemsRented"`
	IsSeller      bool          `json:"isSeller"`
	SellerStatus  string        `json:"sellerStatus"`
	SellerProfile SellerProfile `json:"sellerProfile"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FetchUser loads a user with its hostel reference populated.
func FetchUser(ctx context.Context, userID string) (*User, error) {
	var (
		u            User
		avatar       *string
		availability *string
		description  *string
		reason       *string
	)
	err := db.Conn.QueryRow(ctx, `
        SELECT u.id, u.name, u.email, u.phone_number, u.room_number,
               h.id, h.name, h.city, h.university,
               u.avatar, u.rating, u.total_ratings, u.items_sold, u.items_rented,
               u.is_seller, u.seller_status,
               u.seller_availability, u.seller_description,
               u.seller_applied_at, u.seller_approved_at, u.seller_rejected_at,
               u.seller_rejection_reason, u.created_at
        FROM users u
        JOIN hostels h ON h.id = u.hostel_id
        WHERE u.id = $1`, userID).Scan(
		&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.RoomNumber,
		&u.Hostel.ID, &u.Hostel.Name, &u.Hostel.City, &u.Hostel.University,
		&avatar, &u.Rating, &u.TotalRatings, &u.ItemsSold, &u.ItemsRented,
		&u.IsSeller, &u.SellerStatus,
		&availability, &description,
		&u.SellerProfile.AppliedAt, &u.SellerProfile.ApprovedAt, &u.SellerProfile.RejectedAt,
		&reason, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if avatar != nil {
		u.Avatar = *avatar
	}
	if availability != nil {
		u.SellerProfile.AvailabilityHours = *availability
	}
	if description != nil {
		u.SellerProfile.ProfileDescription = *description
	}
	if reason != nil {
		u.SellerProfile.RejectionReason = *reason
	}
	return &u, nil
}
