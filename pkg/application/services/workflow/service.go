// Package workflow composes the ledgers into the compound production operations:
// lot intake, issuing rolls to machines, receiving boxes and dispatching them.
// Every operation runs under one lock and gets an operation ID that tags its log
// lines and the events it emits.
package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/events"
)

// Ledgers groups the ledgers the workflow composes
type Ledgers struct {
	Rolls       repositories.RollRepository
	Bobbins     repositories.BobbinRepository
	Assignments repositories.MachineAssignmentRepository
	Boxes       repositories.BoxRepository
	Dispatches  repositories.DispatchRepository
	Reference   repositories.ReferenceRepository
}

// WeightSource supplies the gross weight currently on the scale
type WeightSource interface {
	ReadGrossWeight(ctx context.Context) (decimal.Decimal, error)
}

// Config holds the optional collaborators of the service
type Config struct {
	Now          func() time.Time
	Logf         func(format string, args ...any)
	WeightSource WeightSource
}

// WorkflowService is the only writer of the ledgers in normal operation
type WorkflowService struct {
	mu sync.Mutex

	ledgers    Ledgers
	eventStore events.EventStore
	weights    WeightSource
	now        func() time.Time
	logf       func(format string, args ...any)
}

// NewWorkflowService creates a workflow over ledgers. eventStore may be nil.
func NewWorkflowService(ledgers Ledgers, eventStore events.EventStore, config Config) *WorkflowService {
	s := &WorkflowService{
		ledgers:    ledgers,
		eventStore: eventStore,
		weights:    config.WeightSource,
		now:        config.Now,
		logf:       config.Logf,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logf == nil {
		s.logf = log.Printf
	}
	return s
}

// Ledgers exposes the underlying ledgers for read access
func (s *WorkflowService) Ledgers() Ledgers {
	return s.ledgers
}

// begin takes the unit-of-work lock and returns a fresh operation ID
func (s *WorkflowService) begin(ctx context.Context) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	return uuid.NewString(), s.mu.Unlock, nil
}

func (s *WorkflowService) publish(opID string, event events.Event) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
		s.logf("[%s] failed to publish %s: %v", opID, event.Type(), err)
	}
}

// CreateLot records a lot and its rolls. An empty lotNumber takes the next free number.
func (s *WorkflowService) CreateLot(
	ctx context.Context,
	lotNumber string,
	dateReceived time.Time,
	specs []entities.RollSpec,
) (*dto.CreateLotResult, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if lotNumber == "" {
		if lotNumber, err = s.ledgers.Rolls.NextLotNumber(); err != nil {
			return nil, fmt.Errorf("failed to allocate lot number: %w", err)
		}
	}
	if dateReceived.IsZero() {
		dateReceived = s.now()
	}

	lot, rolls, err := s.ledgers.Rolls.CreateLotWithRolls(lotNumber, dateReceived, specs)
	if err != nil {
		return nil, fmt.Errorf("failed to create lot %s: %w", lotNumber, err)
	}

	result := &dto.CreateLotResult{OperationID: opID, Lot: *lot, Rolls: make([]entities.Roll, len(rolls))}
	for i, r := range rolls {
		result.Rolls[i] = *r
	}
	s.logf("[%s] created lot %s with %d roll(s), %s kg", opID, lot.LotNumber, lot.TotalRolls, lot.TotalWeight.StringFixed(2))
	s.publish(opID, events.NewLotCreatedEvent(opID, result.Lot, result.Rolls))
	return result, nil
}

// GetNextLotNumber previews the number the next lot will get. Nothing is reserved.
func (s *WorkflowService) GetNextLotNumber(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.ledgers.Rolls.NextLotNumber()
}

// DeleteLot cancels a lot. Every roll of the lot must still be in stock.
func (s *WorkflowService) DeleteLot(ctx context.Context, lotNumber string) error {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer done()

	if _, err := s.ledgers.Rolls.GetLot(lotNumber); err != nil {
		return err
	}
	rolls, err := s.ledgers.Rolls.GetRollsByLot(lotNumber)
	if err != nil {
		return err
	}
	for _, roll := range rolls {
		if roll.Status != entities.RollInStock {
			return &entities.InvalidStateError{
				Entity:    "lot",
				ID:        lotNumber,
				Operation: "delete",
				Current:   fmt.Sprintf("roll %s %s", roll.RollID, roll.Status),
				Expected:  "all rolls " + string(entities.RollInStock),
			}
		}
	}

	if err := s.ledgers.Rolls.DeleteLot(lotNumber); err != nil {
		return fmt.Errorf("failed to delete lot %s: %w", lotNumber, err)
	}
	s.logf("[%s] deleted lot %s and %d roll(s)", opID, lotNumber, len(rolls))
	s.publish(opID, events.NewLotDeletedEvent(opID, lotNumber))
	return nil
}

// IntakeBobbins records received bobbin stock
func (s *WorkflowService) IntakeBobbins(ctx context.Context, entries []entities.InboundBobbin) ([]*entities.InboundBobbin, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	created, err := s.ledgers.Bobbins.Intake(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to record bobbin intake: %w", err)
	}

	records := make([]entities.InboundBobbin, len(created))
	var total int64
	for i, b := range created {
		records[i] = *b
		total += b.Quantity
	}
	s.logf("[%s] received %d bobbin(s) in %d entries", opID, total, len(created))
	s.publish(opID, events.NewBobbinsReceivedEvent(opID, records[0].LotNo, records))
	return created, nil
}

// DeleteInboundBobbinsByLot removes the bobbin entries received with a lot
func (s *WorkflowService) DeleteInboundBobbinsByLot(ctx context.Context, lotNumber string) (int, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer done()

	removed, err := s.ledgers.Bobbins.DeleteByLot(lotNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bobbins of lot %s: %w", lotNumber, err)
	}
	s.logf("[%s] deleted %d bobbin entries of lot %s", opID, removed, lotNumber)
	s.publish(opID, events.NewBobbinsDeletedEvent(opID, lotNumber, removed))
	return removed, nil
}

// CaptureGrossWeight reads the scale through the configured weight source
func (s *WorkflowService) CaptureGrossWeight(ctx context.Context) (decimal.Decimal, error) {
	if s.weights == nil {
		return decimal.Zero, entities.NewValidationError("weight_source", "no weighing scale configured")
	}
	weight, err := s.weights.ReadGrossWeight(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read scale: %w", err)
	}
	if weight.IsNegative() {
		return decimal.Zero, entities.NewValidationError("gross_weight", fmt.Sprintf("scale reported %s", weight))
	}
	return weight, nil
}
