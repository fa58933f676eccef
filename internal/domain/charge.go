package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChargeType string

const (
	ChargePenalty ChargeType = "PENALTY"
	ChargeDamage  ChargeType = "DAMAGE"
)

// Charge is a penalty or damage record attached to a rental. Its amount is
// always reflected in the owning rental's total cost; the two writes are one
// unit of work.
type Charge struct {
	ID          int32           `json:"id"`
	RentalID    int32           `json:"rental_id"`
	Type        ChargeType      `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	RecordedAt  time.Time       `json:"recorded_at"`
}
