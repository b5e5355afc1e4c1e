package items

import (
	"context"
	"strings"
	"time"

	"github.com/fretio/fretio/internal/db"
)

// Closed enums for listings. The table CHECK constraints mirror these.
var (
	Categories = []string{
		"Electronics", "Books", "Furniture", "Clothing", "Kitchen",
		"Sports", "Study Materials", "Appliances", "Accessories", "Other",
	}
	Conditions    = []string{"New", "Like New", "Good", "Fair", "Poor"}
	RentDurations = []string{"hour", "day", "week", "month"}
)

// SellerRef is the seller summary embedded in item responses.
type SellerRef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	RoomNumber string  `json:"roomNumber"`
	Rating     float64 `json:"rating"`
	Avatar     string  `json:"avatar,omitempty"`
}

// HostelRef is the hostel summary embedded in item responses.
type HostelRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	University string `json:"university,omitempty"`
}

// Item is a marketplace listing.
type Item struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Condition      string            `json:"condition"`
	ListingType    string            `json:"listingType"`
	Price          float64           `json:"price"`
	RentDuration   *string           `json:"rentDuration,omitempty"`
	Images         []string          `json:"images"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
	Seller         SellerRef         `json:"seller"`
	Hostel         HostelRef         `json:"hostel"`
	Status         string            `json:"status"`
	Views          int               `json:"views"`
	IsPromoted     bool              `json:"isPromoted"`
	PromotedUntil  *time.Time        `json:"promotedUntil,omitempty"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

const itemSelect = `
    SELECT i.id, i.title, i.description, i.category, i.condition, i.listing_type,
           i.price, i.rent_duration, i.images, i.tags, i.specifications,
           s.id, s.name, s.room_number, s.rating, COALESCE(s.avatar, ''),
           h.id, h.name, h.university,
           i.status, i.views, i.is_promoted, i.promoted_until, i.is_active,
           i.created_at, i.updated_at
    FROM items i
    JOIN users s ON s.id = i.seller_id
    JOIN hostels h ON h.id = i.hostel_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Title, &it.Description, &it.Category, &it.Condition, &it.ListingType,
		&it.Price, &it.RentDuration, &it.Images, &it.Tags, &it.Specifications,
		&it.Seller.ID, &it.Seller.Name, &it.Seller.RoomNumber, &it.Seller.Rating, &it.Seller.Avatar,
		&it.Hostel.ID, &it.Hostel.Name, &it.Hostel.University,
		&it.Status, &it.Views, &it.IsPromoted, &it.PromotedUntil, &it.IsActive,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if it.Images == nil {
		it.Images = []string{}
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	if it.Specifications == nil {
		it.Specifications = map[string]string{}
	}
	return &it, nil
}

// FetchItem loads one listing with seller and hostel populated.
func FetchItem(ctx context.Context, itemID string) (*Item, error) {
	return scanItem(db.Conn.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, itemID))
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// NewItemInput is the payload for creating a listing.
type NewItemInput struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Condition      string            `json:"condition"`
	ListingType    string            `json:"listingType"`
	Price          float64           `json:"price"`
	RentDuration   string            `json:"rentDuration"`
	Images         []string          `json:"images"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
}

// Validate checks the closed enums and the rent-duration rule: a
// duration is required for rentals and must be absent for sales.
func (in *NewItemInput) Validate() string {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	switch {
	case len(in.Title) < 3 || len(in.Title) > 100:
		return "Title must be between 3 and 100 characters"
	case len(in.Description) < 10 || len(in.Description) > 1000:
		return "Description must be between 10 and 1000 characters"
	case !contains(Categories, in.Category):
		return "Invalid category"
	case !contains(Conditions, in.Condition):
		return "Invalid condition"
	case in.ListingType != "sell" && in.ListingType != "rent":
		return "Listing type must be sell or rent"
	case in.Price < 0:
		return "Price cannot be negative"
	case in.ListingType == "rent" && !contains(RentDurations, in.RentDuration):
		return "Rent duration is required for rentals"
	case in.ListingType == "sell" && in.RentDuration != "":
		return "Rent duration only applies to rentals"
	}
	return ""
}
