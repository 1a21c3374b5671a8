package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// CreateLotResult is the lot and rolls written by one lot intake
type CreateLotResult struct {
	OperationID string          `json:"operation_id"`
	Lot         entities.Lot    `json:"lot"`
	Rolls       []entities.Roll `json:"rolls"`
}

// IssueResult is the outcome of putting a roll on a machine
type IssueResult struct {
	OperationID string                       `json:"operation_id"`
	Roll        entities.Roll                `json:"roll"`
	Assignment  entities.MachineAssignment   `json:"assignment"`
	Consumed    []entities.BobbinConsumption `json:"consumed,omitempty"`
}

// ReceiveResult is the outcome of receiving boxes back from a machine
type ReceiveResult struct {
	OperationID     string                     `json:"operation_id"`
	Roll            entities.Roll              `json:"roll"`
	Assignment      entities.MachineAssignment `json:"assignment"`
	Boxes           []entities.Box             `json:"boxes"`
	CurrentReceived decimal.Decimal            `json:"current_received"`
	TotalReceived   decimal.Decimal            `json:"total_received"`
	Pending         decimal.Decimal            `json:"pending"`
	Completed       bool                       `json:"completed"`
}

// GetSummary returns a one-line description of the receipt
func (r *ReceiveResult) GetSummary() string {
	state := "still on machine"
	if r.Completed {
		state = "completed"
	}
	return fmt.Sprintf("Roll %s: %d box(es), received %s kg this time, %s kg total, %s kg pending (%s)",
		r.Roll.RollID, len(r.Boxes),
		r.CurrentReceived.StringFixed(2), r.TotalReceived.StringFixed(2), r.Pending.StringFixed(2), state)
}

// DispatchResult is the dispatch written and the boxes it moved to dispatched
type DispatchResult struct {
	OperationID string            `json:"operation_id"`
	Dispatch    entities.Dispatch `json:"dispatch"`
	Boxes       []entities.Box    `json:"boxes"`
}

// RollStock aggregates rolls in one status
type RollStock struct {
	Status entities.RollStatus `json:"status"`
	Count  int                 `json:"count"`
	Weight decimal.Decimal     `json:"weight"`
}

// BobbinStock aggregates available bobbins of one type
type BobbinStock struct {
	BobbinType string `json:"bobbin_type"`
	Quantity   int64  `json:"quantity"`
	Entries    int    `json:"entries"`
}

// StockSummary is a point-in-time view over every ledger
type StockSummary struct {
	GeneratedAt      time.Time       `json:"generated_at"`
	Rolls            []RollStock     `json:"rolls"`
	Bobbins          []BobbinStock   `json:"bobbins"`
	OnMachine        int             `json:"on_machine"`
	PendingOnMachine decimal.Decimal `json:"pending_on_machine"`
	ReadyBoxes       int             `json:"ready_boxes"`
	ReadyWeight      decimal.Decimal `json:"ready_weight"`
	DispatchedBoxes  int             `json:"dispatched_boxes"`
	Dispatches       int             `json:"dispatches"`
	DispatchedWeight decimal.Decimal `json:"dispatched_weight"`
}

// GetSummary returns a short multi-line description of the stock position
func (s *StockSummary) GetSummary() string {
	summary := fmt.Sprintf("Stock Summary (%s):\n", s.GeneratedAt.Format(entities.DateLayout))
	for _, r := range s.Rolls {
		summary += fmt.Sprintf("  Rolls %s: %d (%s kg)\n", r.Status, r.Count, r.Weight.StringFixed(2))
	}
	summary += fmt.Sprintf("  On machine: %d roll(s), %s kg pending\n", s.OnMachine, s.PendingOnMachine.StringFixed(2))
	summary += fmt.Sprintf("  Boxes ready: %d (%s kg), dispatched: %d\n", s.ReadyBoxes, s.ReadyWeight.StringFixed(2), s.DispatchedBoxes)
	summary += fmt.Sprintf("  Dispatches: %d (%s kg)", s.Dispatches, s.DispatchedWeight.StringFixed(2))
	return summary
}
