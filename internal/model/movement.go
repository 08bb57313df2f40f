package model

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// StockMovement is an append-only log entry for one quantity change. Seq is
// assigned by the Record Store at admission and is the ordering authority for
// an item's history; the timestamp is only a tiebreaker for display.
type StockMovement struct {
	ID             uuid.UUID    `json:"id"`
	Seq            uint64       `json:"seq"`
	ItemCode       string       `json:"item_code" validate:"required"`
	Type           MovementType `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Delta          int          `json:"delta"`
	ResultingLevel int          `json:"resulting_level"`
	Reason         string       `json:"reason"`
	Reference      string       `json:"reference"` // work order / request number
	Actor          string       `json:"actor"`
	At             time.Time    `json:"at"`
}
