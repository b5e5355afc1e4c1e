package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   string
		isSeller bool
		wantErr  error
	}{
		{name: "fresh user", status: SellerNotApplied},
		{name: "re-apply after rejection", status: SellerRejected},
		{name: "already pending", status: SellerPending, wantErr: ErrAlreadyApplied},
		{name: "already approved", status: SellerApproved, isSeller: true, wantErr: ErrAlreadySeller},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CanApply(tt.status, tt.isSeller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanApprove(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CanApprove(SellerPending))

	for _, status := range []string{SellerNotApplied, SellerApproved, SellerRejected} {
		assert.ErrorIs(t, CanApprove(status), ErrNotPending, status)
	}
}

func TestCanReject(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CanReject(SellerPending))

	for _, status := range []string{SellerNotApplied, SellerApproved, SellerRejected} {
		assert.ErrorIs(t, CanReject(status), ErrNotPending, status)
	}
}
