package items

import "errors"

// Listing states. available is the only state open to transactions;
// sold and rented are terminal.
const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusRented    = "rented"
	StatusReserved  = "reserved"
)

var ErrNotAvailable = errors.New("item is not available")

// ClosedStatus returns the terminal state for a listing type when the
// transaction completes.
func ClosedStatus(listingType string) string {
	if listingType == "rent" {
		return StatusRented
	}
	return StatusSold
}

// CanClose reports whether a listing in the given state may be marked
// sold or rented. Only available listings move forward; repeated calls
// fail rather than silently succeed.
func CanClose(status string) error {
	if status != StatusAvailable {
		return ErrNotAvailable
	}
	return nil
}

// CanRate reports whether a completed transaction on the item can be
// rated. Rating requires the listing to have left the available state.
func CanRate(status string) error {
	if status == StatusAvailable {
		return ErrNotAvailable
	}
	return nil
}
