package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MachineAssignment is the active issuance record of a roll on a production machine
type MachineAssignment struct {
	RollID              string          `json:"roll_id"`
	IssuedDate          time.Time       `json:"issued_date"`
	Operator            string          `json:"operator"`
	MachineID           string          `json:"machine_id"`
	MachineNumber       string          `json:"machine_number"`
	Cut                 string          `json:"cut"`
	BobbinQuantity      int64           `json:"bobbin_quantity"`
	BobbinType          string          `json:"bobbin_type"`
	InitialWeight       decimal.Decimal `json:"initial_weight"`
	WeightReceivedSoFar decimal.Decimal `json:"weight_received_so_far"`
	WastageMarked       bool            `json:"wastage_marked"`
}

// Pending returns the weight still expected from the machine. It is negative after wastage.
func (a MachineAssignment) Pending() decimal.Decimal {
	return a.InitialWeight.Sub(a.WeightReceivedSoFar)
}

// IssueDetails is what the operator supplies when putting a roll on a machine
type IssueDetails struct {
	IssuedDate     time.Time `json:"issued_date"`
	Operator       string    `json:"operator"`
	MachineID      string    `json:"machine_id"`
	MachineNumber  string    `json:"machine_number"`
	Cut            string    `json:"cut"`
	BobbinQuantity int64     `json:"bobbin_quantity"`
	BobbinType     string    `json:"bobbin_type"`
}

// Validate checks the operator input independent of any stored state
func (d IssueDetails) Validate() error {
	if d.BobbinQuantity < 0 {
		return NewValidationError("bobbin_quantity", "cannot be negative")
	}
	if d.BobbinQuantity > 0 && d.BobbinType == "" {
		return NewValidationError("bobbin_type", "required when bobbin_quantity is set")
	}
	return nil
}

// AssignmentUpdate is a shallow partial update; nil fields are left untouched
type AssignmentUpdate struct {
	Operator            *string
	MachineID           *string
	MachineNumber       *string
	Cut                 *string
	WeightReceivedSoFar *decimal.Decimal
	WastageMarked       *bool
}

// Apply merges the non-nil fields into a
func (u AssignmentUpdate) Apply(a *MachineAssignment) {
	if u.Operator != nil {
		a.Operator = *u.Operator
	}
	if u.MachineID != nil {
		a.MachineID = *u.MachineID
	}
	if u.MachineNumber != nil {
		a.MachineNumber = *u.MachineNumber
	}
	if u.Cut != nil {
		a.Cut = *u.Cut
	}
	if u.WeightReceivedSoFar != nil {
		a.WeightReceivedSoFar = *u.WeightReceivedSoFar
	}
	if u.WastageMarked != nil {
		a.WastageMarked = *u.WastageMarked
	}
}
