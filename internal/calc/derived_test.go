package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-stores-admin/internal/model"
)

func TestItemStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minStock int
		want     model.StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, model.StockOutOfStock},
		{"zero quantity with zero min is out of stock", 0, 0, model.StockOutOfStock},
		{"below minimum is low", 5, 10, model.StockLow},
		{"one below minimum is low", 9, 10, model.StockLow},
		{"exactly minimum is ok", 10, 10, model.StockOK},
		{"above minimum is ok", 50, 10, model.StockOK},
		{"positive quantity with zero min is ok", 3, 0, model.StockOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ItemStockStatus(tt.quantity, tt.minStock))
		})
	}
}

func TestTotalValue(t *testing.T) {
	assert.Equal(t, 0.0, TotalValue(0, 99.99))
	assert.Equal(t, 450.0, TotalValue(45, 10.0))
	assert.InDelta(t, 3.33, TotalValue(3, 1.11), 1e-9)
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.456, 1.46},
		{1.454, 1.45},
		{449.999, 450.0},
		{10.12, 10.12},
		{-0.0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundCurrency(tt.in), 1e-9, "RoundCurrency(%v)", tt.in)
	}
}

func TestSignOutStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	out := now.AddDate(0, 0, -3)
	returned := now.AddDate(0, 0, -1)

	t.Run("open before expected return is checked out", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: out, ExpectedReturn: now.AddDate(0, 0, 2)}
		assert.Equal(t, model.SignOutCheckedOut, SignOutStatus(txn, now))
	})

	t.Run("open past expected return is overdue", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: out, ExpectedReturn: now.AddDate(0, 0, -1)}
		assert.Equal(t, model.SignOutOverdue, SignOutStatus(txn, now))
	})

	t.Run("exactly at expected return is still checked out", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: out, ExpectedReturn: now}
		assert.Equal(t, model.SignOutCheckedOut, SignOutStatus(txn, now))
	})

	t.Run("returned wins even when check-in was late", func(t *testing.T) {
		txn := model.SignOutTransaction{
			CheckedOutAt:   out,
			ExpectedReturn: now.AddDate(0, 0, -2),
			CheckedInAt:    &returned,
		}
		assert.Equal(t, model.SignOutReturned, SignOutStatus(txn, now))
	})
}

func TestDaysOutstanding(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("open transaction counts whole days to now", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: now.AddDate(0, 0, -5)}
		assert.Equal(t, 5, DaysOutstanding(txn, now))
	})

	t.Run("partial day does not count", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: now.Add(-36 * time.Hour)}
		assert.Equal(t, 1, DaysOutstanding(txn, now))
	})

	t.Run("returned transaction counts to check-in", func(t *testing.T) {
		in := now.AddDate(0, 0, -2)
		txn := model.SignOutTransaction{CheckedOutAt: now.AddDate(0, 0, -6), CheckedInAt: &in}
		assert.Equal(t, 4, DaysOutstanding(txn, now))
	})

	t.Run("clock skew never goes negative", func(t *testing.T) {
		txn := model.SignOutTransaction{CheckedOutAt: now.Add(time.Hour)}
		assert.Equal(t, 0, DaysOutstanding(txn, now))
	})
}
