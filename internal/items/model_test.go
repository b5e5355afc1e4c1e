package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() NewItemInput {
	return NewItemInput{
		Title:       "Desk lamp",
		Description: "Warm white desk lamp, barely used.",
		Category:    "Electronics",
		Condition:   "Good",
		ListingType: "sell",
		Price:       250,
		Images:      []string{"https://cdn.example.com/lamp.jpg"},
	}
}

func TestValidateAcceptsSale(t *testing.T) {
	t.Parallel()

	in := validInput()
	assert.Empty(t, in.Validate())
}

func TestValidateAcceptsRentalWithDuration(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.ListingType = "rent"
	in.RentDuration = "week"
	assert.Empty(t, in.Validate())
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*NewItemInput)
		message string
	}{
		{
			name:    "short title",
			mutate:  func(in *NewItemInput) { in.Title = "ab" },
			message: "Title must be between 3 and 100 characters",
		},
		{
			name:    "short description",
			mutate:  func(in *NewItemInput) { in.Description = "too short" },
			message: "Description must be between 10 and 1000 characters",
		},
		{
			name:    "unknown category",
			mutate:  func(in *NewItemInput) { in.Category = "weapons" },
			message: "Invalid category",
		},
		{
			name:    "unknown condition",
			mutate:  func(in *NewItemInput) { in.Condition = "mint" },
			message: "Invalid condition",
		},
		{
			name:    "unknown listing type",
			mutate:  func(in *NewItemInput) { in.ListingType = "barter" },
			message: "Listing type must be sell or rent",
		},
		{
			name:    "negative price",
			mutate:  func(in *NewItemInput) { in.Price = -1 },
			message: "Price cannot be negative",
		},
		{
			name: "rental without duration",
			mutate: func(in *NewItemInput) {
				in.ListingType = "rent"
			},
			message: "Rent duration is required for rentals",
		},
		{
			name: "rental with bogus duration",
			mutate: func(in *NewItemInput) {
				in.ListingType = "rent"
				in.RentDuration = "fortnight"
			},
			message: "Rent duration is required for rentals",
		},
		{
			name: "sale with duration",
			mutate: func(in *NewItemInput) {
				in.RentDuration = "week"
			},
			message: "Rent duration only applies to rentals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := validInput()
			tt.mutate(&in)
			assert.Equal(t, tt.message, in.Validate())
		})
	}
}

func TestValidateTrimsWhitespace(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Title = "  Desk lamp  "
	assert.Empty(t, in.Validate())
	assert.Equal(t, "Desk lamp", in.Title)
}
