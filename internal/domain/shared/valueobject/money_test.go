package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add and subtract keep the currency", func(t *testing.T) {
		a := NewMoneyINR(decimal.NewFromInt(700))
		b := NewMoneyINR(decimal.NewFromInt(300))

		sum := a.MustAdd(b)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, INR, sum.Currency())

		diff := sum.MustSubtract(b)
		assert.True(t, diff.Equals(a))
	})

	t.Run("mixed currencies refuse to combine", func(t *testing.T) {
		inr := NewMoneyINR(decimal.NewFromInt(100))
		usd, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)

		_, err = inr.Add(usd)
		assert.Error(t, err)
		_, err = inr.Subtract(usd)
		assert.Error(t, err)
	})

	t.Run("percentage cut", func(t *testing.T) {
		m := NewMoneyINR(decimal.NewFromInt(1000))
		cut := m.CalculatePercentage(decimal.NewFromInt(18))
		assert.True(t, cut.Amount().Equal(decimal.NewFromInt(180)))
	})

	t.Run("divide by zero is refused", func(t *testing.T) {
		_, err := NewMoneyINR(decimal.NewFromInt(100)).Divide(decimal.Zero)
		assert.Error(t, err)
	})
}

func TestMoneyConstruction(t *testing.T) {
	t.Run("empty currency is refused", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("string form is fixed to two places", func(t *testing.T) {
		m, err := NewMoneyINRFromString("1234.5")
		require.NoError(t, err)
		assert.Equal(t, "1234.50 INR", m.String())
	})

	t.Run("rounding happens at the requested precision", func(t *testing.T) {
		m := NewMoneyINR(decimal.RequireFromString("99.999"))
		assert.Equal(t, "100.00", m.Round(2).StringFixed(2))
	})
}
