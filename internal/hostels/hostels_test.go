package hostels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullAddress(t *testing.T) {
	t.Parallel()

	h := Hostel{
		Address: Address{
			Street:  "123 College Street",
			City:    "Mumbai",
			State:   "Maharashtra",
			ZipCode: "400001",
			Country: "India",
		},
	}

	assert.Equal(t, "123 College Street, Mumbai, Maharashtra 400001, India", h.FullAddress())
}
