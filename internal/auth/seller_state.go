package auth

import "errors"

// Seller workflow states. Stored as users.seller_status.
const (
	SellerNotApplied = "not_applied"
	SellerPending    = "pending"
	SellerApproved   = "approved"
	SellerRejected   = "rejected"
)

var (
	ErrAlreadyApplied = errors.New("application already pending")
	ErrAlreadySeller  = errors.New("already an approved seller")
	ErrNotPending     = errors.New("no pending application")
)

// CanApply reports whether a user in the given state may submit a
// seller application. Re-applying after a rejection is allowed.
func CanApply(status string, isSeller bool) error {
	if isSeller {
		return ErrAlreadySeller
	}
	if status == SellerPending {
		return ErrAlreadyApplied
	}
	return nil
}

// CanApprove reports whether an application in the given state may be
// approved. Only pending applications move forward.
func CanApprove(status string) error {
	if status != SellerPending {
		return ErrNotPending
	}
	return nil
}

// CanReject reports whether an application in the given state may be
// rejected.
func CanReject(status string) error {
	if status != SellerPending {
		return ErrNotPending
	}
	return nil
}
