package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosedStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusSold, ClosedStatus("sell"))
	assert.Equal(t, StatusRented, ClosedStatus("rent"))
}

func TestCanClose(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CanClose(StatusAvailable))

	for _, status := range []string{StatusSold, StatusRented, StatusReserved} {
		assert.ErrorIs(t, CanClose(status), ErrNotAvailable, status)
	}
}

func TestCanRate(t *testing.T) {
	t.Parallel()

	// Only completed transactions can be rated.
	assert.ErrorIs(t, CanRate(StatusAvailable), ErrNotAvailable)

	for _, status := range []string{StatusSold, StatusRented, StatusReserved} {
		assert.NoError(t, CanRate(status), status)
	}
}
