package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and wire format for calendar dates
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date in UTC, the precision dates are stored at
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RollStatus represents where a roll is in the production pipeline
type RollStatus string

const (
	RollInStock         RollStatus = "in_stock"
	RollIssuedToMachine RollStatus = "issued_to_machine"
	RollCompleted       RollStatus = "completed"
)

// rank orders statuses so transitions can be checked for direction
func (s RollStatus) rank() int {
	switch s {
	case RollInStock:
		return 0
	case RollIssuedToMachine:
		return 1
	case RollCompleted:
		return 2
	default:
		return -1
	}
}

// Valid reports whether s is a known roll status
func (s RollStatus) Valid() bool {
	return s.rank() >= 0
}

// CanAdvanceTo reports whether moving from s to next is the single forward step
// in_stock -> issued_to_machine -> completed
func (s RollStatus) CanAdvanceTo(next RollStatus) bool {
	return s.Valid() && next.Valid() && next.rank() == s.rank()+1
}

// ParseRollStatus converts a stored value into a RollStatus
func ParseRollStatus(s string) (RollStatus, error) {
	status := RollStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid roll status: %s (expected: in_stock, issued_to_machine, or completed)", s)
	}
	return status, nil
}

// Lot is an immutable snapshot of a batch of rolls received together
type Lot struct {
	LotNumber    string          `json:"lot_number"`
	DateReceived time.Time       `json:"date_received"`
	TotalRolls   int             `json:"total_rolls"`
	TotalWeight  decimal.Decimal `json:"total_weight"`
}

// Roll is a physical unit of raw material. Weight is the initial weight and never changes.
type Roll struct {
	RollID       string          `json:"roll_id"`
	CustomerName string          `json:"customer_name"`
	ColorOrType  string          `json:"color_or_type"`
	Weight       decimal.Decimal `json:"weight"`
	Status       RollStatus      `json:"status"`
	DateReceived time.Time       `json:"date_received"`
	LotNo        string          `json:"lot_no"`
}

// RollSpec is the caller-supplied description of a roll at lot intake
type RollSpec struct {
	CustomerName string          `json:"customer_name"`
	ColorOrType  string          `json:"color_or_type"`
	Weight       decimal.Decimal `json:"weight"`
	DateReceived time.Time       `json:"date_received"`
}

// RollID builds the deterministic roll identifier for the n-th (1-based) roll of a lot
func RollID(lotNumber string, n int) string {
	return fmt.Sprintf("%s-%d", lotNumber, n)
}

// NewLot validates the roll specs and returns the lot snapshot and its rolls, all in_stock
func NewLot(lotNumber string, dateReceived time.Time, specs []RollSpec) (*Lot, []Roll, error) {
	if strings.TrimSpace(lotNumber) == "" {
		return nil, nil, NewValidationError("lot_number", "cannot be empty")
	}
	// Roll IDs are "<lot>-<n>", so a lot like "1001-A" would alias lot 1001's rolls
	if n, err := strconv.ParseInt(lotNumber, 10, 64); err != nil || n <= 0 || strconv.FormatInt(n, 10) != lotNumber {
		return nil, nil, NewValidationError("lot_number", fmt.Sprintf("%q is not a positive whole number", lotNumber))
	}
	if len(specs) == 0 {
		return nil, nil, NewValidationError("rolls", "a lot needs at least one roll")
	}

	total := decimal.Zero
	rolls := make([]Roll, 0, len(specs))
	for i, spec := range specs {
		if spec.Weight.IsNegative() || spec.Weight.IsZero() {
			return nil, nil, NewValidationError(fmt.Sprintf("rolls[%d].weight", i), "must be positive")
		}
		received := DateOf(spec.DateReceived)
		if received.IsZero() {
			received = DateOf(dateReceived)
		}
		total = total.Add(spec.Weight)
		rolls = append(rolls, Roll{
			RollID:       RollID(lotNumber, i+1),
			CustomerName: spec.CustomerName,
			ColorOrType:  spec.ColorOrType,
			Weight:       spec.Weight,
			Status:       RollInStock,
			DateReceived: received,
			LotNo:        lotNumber,
		})
	}

	lot := &Lot{
		LotNumber:    lotNumber,
		DateReceived: DateOf(dateReceived),
		TotalRolls:   len(rolls),
		TotalWeight:  total,
	}
	return lot, rolls, nil
}
