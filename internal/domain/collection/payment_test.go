package collection

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/investkaro/backend/internal/domain/shared"
)

func TestNewPayment_Validation(t *testing.T) {
	client, owner := uuid.New(), uuid.New()

	t.Run("valid", func(t *testing.T) {
		p, err := NewPayment(client, owner, decimal.NewFromInt(500), time.Now(), "SBI-22")
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewPayment(client, owner, decimal.Zero, time.Now(), "")
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_INPUT", derr.Code)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewPayment(client, owner, decimal.NewFromInt(-10), time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("missing client rejected", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, owner, decimal.NewFromInt(10), time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("zero date defaults to now", func(t *testing.T) {
		p, err := NewPayment(client, owner, decimal.NewFromInt(10), time.Time{}, "")
		require.NoError(t, err)
		assert.False(t, p.Date.IsZero())
	})
}

func TestPaymentStatus_Transitions(t *testing.T) {
	cases := []struct {
		status    PaymentStatus
		canVerify bool
		canReject bool
		terminal  bool
	}{
		{PaymentStatusPending, true, true, false},
		{PaymentStatusVerified, false, false, true},
		{PaymentStatusRejected, false, false, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.canVerify, tc.status.CanVerify())
			assert.Equal(t, tc.canReject, tc.status.CanReject())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
		})
	}
}

func TestPayment_VerifyAndReject(t *testing.T) {
	admin := uuid.New()

	t.Run("verify pending", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		require.NoError(t, p.Verify(admin))
		assert.Equal(t, PaymentStatusVerified, p.Status)
		require.NotNil(t, p.VerifiedBy)
		assert.Equal(t, admin, *p.VerifiedBy)
		assert.NotNil(t, p.VerifiedAt)
	})

	t.Run("reject pending", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		require.NoError(t, p.Reject(admin, "duplicate entry"))
		assert.Equal(t, PaymentStatusRejected, p.Status)
		assert.Equal(t, "duplicate entry", p.RejectNote)
	})

	t.Run("verified is terminal", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		require.NoError(t, p.Verify(admin))
		assert.Error(t, p.Verify(admin))
		assert.Error(t, p.Reject(admin, ""))
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		require.NoError(t, p.Reject(admin, ""))
		assert.Error(t, p.Verify(admin))
	})
}

func TestPayment_ReceiptEligible(t *testing.T) {
	admin := uuid.New()

	t.Run("verified within window", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		p.Date = time.Now().AddDate(0, 0, -3)
		require.NoError(t, p.Verify(admin))
		assert.True(t, p.ReceiptEligible(time.Now()))
	})

	t.Run("verified past window", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		p.Date = time.Now().AddDate(0, 0, -11)
		require.NoError(t, p.Verify(admin))
		assert.False(t, p.ReceiptEligible(time.Now()))
	})

	t.Run("pending never eligible", func(t *testing.T) {
		p := newTestPayment(t, uuid.New(), "100")
		assert.False(t, p.ReceiptEligible(time.Now()))
	})
}

func TestSplit_Validation(t *testing.T) {
	p := newTestPayment(t, uuid.New(), "1000")

	t.Run("amount snapshot", func(t *testing.T) {
		s, err := NewSplit(p, uuid.New(), decimal.RequireFromString("12.5"))
		require.NoError(t, err)
		assert.True(t, s.Amount.Equal(decimal.RequireFromString("125")))
	})

	t.Run("zero percentage rejected", func(t *testing.T) {
		_, err := NewSplit(p, uuid.New(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("over 100 rejected", func(t *testing.T) {
		_, err := NewSplit(p, uuid.New(), decimal.RequireFromString("100.01"))
		assert.Error(t, err)
	})
}

func TestValidateSplitSet(t *testing.T) {
	p := newTestPayment(t, uuid.New(), "1000")

	t.Run("sum over 100 rejected", func(t *testing.T) {
		splits := []*Split{
			newTestSplit(t, p, uuid.New(), "60"),
			newTestSplit(t, p, uuid.New(), "50"),
		}
		assert.Error(t, ValidateSplitSet(splits))
	})

	t.Run("sum exactly 100 allowed", func(t *testing.T) {
		splits := []*Split{
			newTestSplit(t, p, uuid.New(), "60"),
			newTestSplit(t, p, uuid.New(), "40"),
		}
		assert.NoError(t, ValidateSplitSet(splits))
	})

	t.Run("duplicate recipient rejected", func(t *testing.T) {
		r := uuid.New()
		splits := []*Split{
			newTestSplit(t, p, r, "10"),
			newTestSplit(t, p, r, "10"),
		}
		assert.Error(t, ValidateSplitSet(splits))
	})
}
