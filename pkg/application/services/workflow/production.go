package workflow

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/events"
)

// IssueToMachine puts an in_stock roll on a machine. Steps run in the order
// validate, deduct bobbins, write assignment, set roll status; a failure at any
// step leaves inventory, assignment and roll as they were.
func (s *WorkflowService) IssueToMachine(
	ctx context.Context,
	rollID string,
	details entities.IssueDetails,
) (*dto.IssueResult, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	roll, err := s.ledgers.Rolls.GetRoll(rollID)
	if err != nil {
		return nil, err
	}
	if roll.Status != entities.RollInStock {
		return nil, &entities.InvalidStateError{
			Entity:    "roll",
			ID:        rollID,
			Operation: "issue",
			Current:   string(roll.Status),
			Expected:  string(entities.RollInStock),
		}
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if err := s.resolveMachine(&details); err != nil {
		return nil, err
	}
	if details.IssuedDate.IsZero() {
		details.IssuedDate = s.now()
	}

	undo := &undoLog{}

	var consumed []entities.BobbinConsumption
	if details.BobbinQuantity > 0 {
		consumed, err = s.ledgers.Bobbins.Deduct(details.BobbinType, details.BobbinQuantity)
		if err != nil {
			return nil, err
		}
		undo.record("restore bobbins", func() error { return s.ledgers.Bobbins.Restore(consumed) })
	}

	previous, err := s.ledgers.Assignments.Get(rollID)
	switch {
	case err == nil:
		prior := *previous
		undo.record("restore previous assignment", func() error { return s.ledgers.Assignments.Put(prior) })
	case isNotFound(err):
		undo.record("remove assignment", func() error { return s.ledgers.Assignments.Remove(rollID) })
	default:
		return nil, s.abort(opID, "read assignment", err, undo)
	}

	assignment, err := s.ledgers.Assignments.Assign(rollID, details, roll.Weight)
	if err != nil {
		return nil, s.abort(opID, "write assignment", err, undo)
	}

	issued, err := s.ledgers.Rolls.SetStatus(rollID, entities.RollIssuedToMachine)
	if err != nil {
		return nil, s.abort(opID, "set roll status", err, undo)
	}

	s.logf("[%s] issued roll %s (%s kg) to machine %s, %d %s bobbin(s)",
		opID, rollID, roll.Weight.StringFixed(2), machineLabel(*assignment), details.BobbinQuantity, details.BobbinType)
	s.publish(opID, events.NewRollIssuedEvent(opID, *assignment, consumed))

	return &dto.IssueResult{
		OperationID: opID,
		Roll:        *issued,
		Assignment:  *assignment,
		Consumed:    consumed,
	}, nil
}

// resolveMachine checks a given machine ID against reference data when any
// machines are registered, and fills in the machine number from it.
func (s *WorkflowService) resolveMachine(details *entities.IssueDetails) error {
	if details.MachineID == "" || s.ledgers.Reference == nil {
		return nil
	}
	machines, err := s.ledgers.Reference.GetMachines()
	if err != nil {
		return err
	}
	if len(machines) == 0 {
		return nil
	}
	machine, err := s.ledgers.Reference.FindMachine(details.MachineID)
	if err != nil {
		return err
	}
	if details.MachineNumber == "" {
		details.MachineNumber = machine.MachineNumber
	}
	return nil
}

// ReceiveBoxes records boxes produced from an issued roll. The received weight
// may exceed the roll's initial weight only when markWastage is set; the roll is
// completed once wastage is marked or nothing is pending.
func (s *WorkflowService) ReceiveBoxes(
	ctx context.Context,
	rollID string,
	specs []entities.BoxSpec,
	markWastage bool,
) (*dto.ReceiveResult, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if len(specs) == 0 {
		return nil, entities.NewValidationError("boxes", "at least one box is required")
	}

	assignment, err := s.ledgers.Assignments.Get(rollID)
	if err != nil {
		return nil, err
	}
	roll, err := s.ledgers.Rolls.GetRoll(rollID)
	if err != nil {
		return nil, err
	}
	if roll.Status != entities.RollIssuedToMachine {
		return nil, &entities.InvalidStateError{
			Entity:    "roll",
			ID:        rollID,
			Operation: "receive boxes for",
			Current:   string(roll.Status),
			Expected:  string(entities.RollIssuedToMachine),
		}
	}

	resolved, err := s.resolveBoxSpecs(rollID, specs)
	if err != nil {
		return nil, err
	}

	current := decimal.Zero
	for _, spec := range resolved {
		current = current.Add(spec.Net())
	}
	previous := assignment.WeightReceivedSoFar
	total := previous.Add(current)
	pending := assignment.InitialWeight.Sub(total)

	if total.GreaterThan(assignment.InitialWeight) && !markWastage {
		return nil, &entities.OverReceiptError{
			RollID:             rollID,
			InitialWeight:      assignment.InitialWeight,
			PreviouslyReceived: previous,
			CurrentReceived:    current,
			Pending:            pending,
		}
	}
	wastage := markWastage || !pending.IsPositive()

	undo := &undoLog{}

	created, err := s.ledgers.Boxes.CreateMany(resolved)
	if err != nil {
		return nil, err
	}
	boxIDs := make([]string, len(created))
	boxes := make([]entities.Box, len(created))
	for i, b := range created {
		boxIDs[i] = b.BoxID
		boxes[i] = *b
	}
	undo.record("delete boxes", func() error { return s.ledgers.Boxes.Delete(boxIDs...) })

	prior := *assignment
	updated, err := s.ledgers.Assignments.Update(rollID, entities.AssignmentUpdate{
		WeightReceivedSoFar: &total,
		WastageMarked:       &wastage,
	})
	if err != nil {
		return nil, s.abort(opID, "update assignment", err, undo)
	}
	undo.record("restore assignment", func() error { return s.ledgers.Assignments.Put(prior) })

	if wastage {
		completed, err := s.ledgers.Rolls.SetStatus(rollID, entities.RollCompleted)
		if err != nil {
			return nil, s.abort(opID, "complete roll", err, undo)
		}
		roll = completed
	}

	s.logf("[%s] received %d box(es) for roll %s: %s kg now, %s kg total, %s kg pending, wastage=%t",
		opID, len(boxes), rollID, current.StringFixed(2), total.StringFixed(2), pending.StringFixed(2), wastage)
	s.publish(opID, events.NewBoxesReceivedEvent(opID, rollID, boxes))
	if wastage {
		s.publish(opID, events.NewRollCompletedEvent(opID, *updated))
	}

	return &dto.ReceiveResult{
		OperationID:     opID,
		Roll:            *roll,
		Assignment:      *updated,
		Boxes:           boxes,
		CurrentReceived: current,
		TotalReceived:   total,
		Pending:         pending,
		Completed:       wastage,
	}, nil
}

// resolveBoxSpecs binds every spec to rollID, defaults the tare from the box
// type and validates the weights.
func (s *WorkflowService) resolveBoxSpecs(rollID string, specs []entities.BoxSpec) ([]entities.BoxSpec, error) {
	resolved := make([]entities.BoxSpec, len(specs))
	for i, spec := range specs {
		if spec.RollID != "" && spec.RollID != rollID {
			return nil, entities.NewValidationError("roll_id",
				fmt.Sprintf("box %d belongs to roll %s, not %s", i+1, spec.RollID, rollID))
		}
		spec.RollID = rollID

		if spec.TareWeight == nil && spec.NetWeight == nil && spec.BoxType != "" && s.ledgers.Reference != nil {
			boxType, err := s.ledgers.Reference.FindBoxType(spec.BoxType)
			if err != nil {
				return nil, fmt.Errorf("box %d: %w", i+1, err)
			}
			tare := boxType.TareWeight
			spec.TareWeight = &tare
		}

		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i+1, err)
		}
		resolved[i] = spec
	}
	return resolved, nil
}

func machineLabel(a entities.MachineAssignment) string {
	switch {
	case a.MachineNumber != "":
		return a.MachineNumber
	case a.MachineID != "":
		return a.MachineID
	default:
		return "(unspecified)"
	}
}
