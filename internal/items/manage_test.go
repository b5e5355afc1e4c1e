package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestUpdateValidateEmptyIsNoop(t *testing.T) {
	t.Parallel()

	var r UpdateItemRequest
	assert.Empty(t, r.validate())
}

func TestUpdateValidateFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     UpdateItemRequest
		message string
	}{
		{
			name: "valid partial update",
			req:  UpdateItemRequest{Title: strPtr("New title"), Price: floatPtr(100)},
		},
		{
			name:    "short title",
			req:     UpdateItemRequest{Title: strPtr("ab")},
			message: "Title must be between 3 and 100 characters",
		},
		{
			name:    "short description",
			req:     UpdateItemRequest{Description: strPtr("tiny")},
			message: "Description must be between 10 and 1000 characters",
		},
		{
			name:    "negative price",
			req:     UpdateItemRequest{Price: floatPtr(-5)},
			message: "Price cannot be negative",
		},
		{
			name:    "unknown condition",
			req:     UpdateItemRequest{Condition: strPtr("mint")},
			message: "Invalid condition",
		},
		{
			name:    "unknown status",
			req:     UpdateItemRequest{Status: strPtr("archived")},
			message: "Invalid status",
		},
		{
			name: "known status",
			req:  UpdateItemRequest{Status: strPtr(StatusReserved)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.message, tt.req.validate())
		})
	}
}
