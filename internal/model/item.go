package model

import "time"

// StockStatus is derived from quantity-on-hand vs the minimum level.
// It is recomputed on every read and never persisted.
type StockStatus string

const (
	StockOK         StockStatus = "OK"
	StockLow        StockStatus = "LOW"
	StockOutOfStock StockStatus = "OUT_OF_STOCK"
)

// InventoryItem is one stocked line in a category. Quantity only ever changes
// through the inventory service's adjust path so the movement log stays the
// authoritative history; direct field edits are off-contract.
type InventoryItem struct {
	Code           string     `json:"item_code" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Category       string     `json:"category" validate:"required"`
	Location       string     `json:"location"`
	QuantityOnHand int        `json:"quantity_on_hand" validate:"gte=0"`
	Unit           string     `json:"unit_of_measure"`
	MinStock       int        `json:"min_stock_level" validate:"gte=0"`
	MaxStock       int        `json:"max_stock_level"`
	UnitCost       float64    `json:"unit_cost" validate:"gte=0"`
	Supplier       string     `json:"supplier"`
	LastRestock    *time.Time `json:"last_restock,omitempty"`
	Active         bool       `json:"active"`

	Audit
}
