package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BoxStatus represents the dispatch state of a packed box
type BoxStatus string

const (
	BoxReadyToDispatch BoxStatus = "ready_to_dispatch"
	BoxDispatched      BoxStatus = "dispatched"
)

// ParseBoxStatus converts a stored value into a BoxStatus
func ParseBoxStatus(s string) (BoxStatus, error) {
	switch status := BoxStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case BoxReadyToDispatch, BoxDispatched:
		return status, nil
	default:
		return "", fmt.Errorf("invalid box status: %s (expected: ready_to_dispatch or dispatched)", s)
	}
}

// Box is a packed, weighed container produced from a roll on a machine
type Box struct {
	BoxID       string          `json:"box_id"`
	RollID      string          `json:"roll_id"`
	DateCreated time.Time       `json:"date_created"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	TareWeight  decimal.Decimal `json:"tare_weight"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	BobbinCount int64           `json:"bobbin_count"`
	BobbinType  string          `json:"bobbin_type"`
	BoxType     string          `json:"box_type"`
	Status      BoxStatus       `json:"status"`
}

// BoxSpec describes a box to be created. BoxID, TareWeight and NetWeight are optional:
// a missing net weight is derived as gross - tare.
type BoxSpec struct {
	BoxID       string           `json:"box_id,omitempty"`
	RollID      string           `json:"roll_id"`
	DateCreated time.Time        `json:"date_created"`
	GrossWeight decimal.Decimal  `json:"gross_weight"`
	TareWeight  *decimal.Decimal `json:"tare_weight,omitempty"`
	NetWeight   *decimal.Decimal `json:"net_weight,omitempty"`
	BobbinCount int64            `json:"bobbin_count"`
	BobbinType  string           `json:"bobbin_type"`
	BoxType     string           `json:"box_type"`
}

// Tare returns the supplied tare weight or zero
func (s BoxSpec) Tare() decimal.Decimal {
	if s.TareWeight == nil {
		return decimal.Zero
	}
	return *s.TareWeight
}

// Net returns the supplied net weight, or gross - tare when none was supplied
func (s BoxSpec) Net() decimal.Decimal {
	if s.NetWeight != nil {
		return *s.NetWeight
	}
	return s.GrossWeight.Sub(s.Tare())
}

// Validate checks the weights of a single box spec
func (s BoxSpec) Validate() error {
	if s.GrossWeight.IsNegative() {
		return NewValidationError("gross_weight", "cannot be negative")
	}
	if s.Tare().IsNegative() {
		return NewValidationError("tare_weight", "cannot be negative")
	}
	if s.Net().IsNegative() {
		return NewValidationError("net_weight", fmt.Sprintf("cannot be negative (gross %s, tare %s)",
			s.GrossWeight.StringFixed(2), s.Tare().StringFixed(2)))
	}
	if s.BobbinCount < 0 {
		return NewValidationError("bobbin_count", "cannot be negative")
	}
	return nil
}

// NewBox builds a ready_to_dispatch box from a spec with an allocated ID
func NewBox(id string, spec BoxSpec, now time.Time) Box {
	created := DateOf(spec.DateCreated)
	if created.IsZero() {
		created = DateOf(now)
	}
	return Box{
		BoxID:       id,
		RollID:      spec.RollID,
		DateCreated: created,
		GrossWeight: spec.GrossWeight,
		TareWeight:  spec.Tare(),
		NetWeight:   spec.Net(),
		BobbinCount: spec.BobbinCount,
		BobbinType:  spec.BobbinType,
		BoxType:     spec.BoxType,
		Status:      BoxReadyToDispatch,
	}
}
