package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dispatch is a shipment of boxes to a customer. Totals are snapshots taken at creation.
type Dispatch struct {
	DispatchID   string          `json:"dispatch_id"`
	DispatchDate time.Time       `json:"dispatch_date"`
	CustomerName string          `json:"customer_name"`
	BoxIDs       []string        `json:"box_ids"`
	TotalWeight  decimal.Decimal `json:"total_weight"`
	TotalBobbins int64           `json:"total_bobbins"`
}

// References reports whether the dispatch includes boxID
func (d Dispatch) References(boxID string) bool {
	for _, id := range d.BoxIDs {
		if id == boxID {
			return true
		}
	}
	return false
}

// DispatchSpec is the caller input for the dispatch ledger; totals are trusted as given
type DispatchSpec struct {
	DispatchDate time.Time
	CustomerName string
	BoxIDs       []string
	TotalWeight  decimal.Decimal
	TotalBobbins int64
}
