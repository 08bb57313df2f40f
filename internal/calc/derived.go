// Package calc holds the derived-field calculator: pure functions over entity
// snapshots with no hidden state. Services, handlers and tests all call the
// same functions so derived values never drift between recomputation sites.
package calc

import (
	"math"
	"time"

	"go-stores-admin/internal/model"
)

// ItemStockStatus classifies quantity-on-hand against the minimum level.
// OUT_OF_STOCK at zero, LOW strictly between zero and the minimum.
func ItemStockStatus(quantity, minStock int) model.StockStatus {
	switch {
	case quantity == 0:
		return model.StockOutOfStock
	case quantity < minStock:
		return model.StockLow
	default:
		return model.StockOK
	}
}

// TotalValue is quantity × unit cost at full precision. Round only at the
// presentation boundary with RoundCurrency.
func TotalValue(quantity int, unitCost float64) float64 {
	return float64(quantity) * unitCost
}

// RoundCurrency rounds to 2 decimal places, half-up.
func RoundCurrency(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// SignOutStatus derives the state of a sign-out transaction relative to the
// caller-supplied now. Returned wins over Overdue no matter how late the
// check-in was.
func SignOutStatus(t model.SignOutTransaction, now time.Time) model.SignOutStatus {
	if t.CheckedInAt != nil {
		return model.SignOutReturned
	}
	if now.After(t.ExpectedReturn) {
		return model.SignOutOverdue
	}
	return model.SignOutCheckedOut
}

// DaysOutstanding counts whole days the transaction has been open (or was
// open, for returned transactions).
func DaysOutstanding(t model.SignOutTransaction, now time.Time) int {
	end := now
	if t.CheckedInAt != nil {
		end = *t.CheckedInAt
	}
	d := end.Sub(t.CheckedOutAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
