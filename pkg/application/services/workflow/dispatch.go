package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/dto"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/events"
)

// CreateDispatch ships ready boxes to a customer. Totals are summed from the
// stored boxes. Once the dispatch record is written every box is moved to
// dispatched; boxes that fail to move are reported in a ReconciliationError
// returned alongside the result, and the dispatch record is kept.
func (s *WorkflowService) CreateDispatch(
	ctx context.Context,
	customerName string,
	boxIDs []string,
	dispatchDate time.Time,
) (*dto.DispatchResult, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, entities.NewValidationError("customer_name", "cannot be empty")
	}
	if len(boxIDs) == 0 {
		return nil, entities.NewValidationError("box_ids", "at least one box is required")
	}

	seen := make(map[string]bool, len(boxIDs))
	boxes := make([]entities.Box, 0, len(boxIDs))
	totalWeight := decimal.Zero
	var totalBobbins int64
	for _, id := range boxIDs {
		if seen[id] {
			return nil, entities.NewValidationError("box_ids", fmt.Sprintf("box %s listed twice", id))
		}
		seen[id] = true

		box, err := s.ledgers.Boxes.Get(id)
		if err != nil {
			return nil, err
		}
		if box.Status != entities.BoxReadyToDispatch {
			return nil, &entities.InvalidStateError{
				Entity:    "box",
				ID:        id,
				Operation: "dispatch",
				Current:   string(box.Status),
				Expected:  string(entities.BoxReadyToDispatch),
			}
		}
		boxes = append(boxes, *box)
		totalWeight = totalWeight.Add(box.NetWeight)
		totalBobbins += box.BobbinCount
	}

	if dispatchDate.IsZero() {
		dispatchDate = s.now()
	}
	dispatch, err := s.ledgers.Dispatches.Create(entities.DispatchSpec{
		DispatchDate: dispatchDate,
		CustomerName: customerName,
		BoxIDs:       boxIDs,
		TotalWeight:  totalWeight,
		TotalBobbins: totalBobbins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record dispatch: %w", err)
	}

	failed := make(map[string]error)
	for i := range boxes {
		moved, err := s.ledgers.Boxes.SetStatus(boxes[i].BoxID, entities.BoxDispatched)
		if err != nil {
			failed[boxes[i].BoxID] = err
			continue
		}
		boxes[i] = *moved
	}

	result := &dto.DispatchResult{OperationID: opID, Dispatch: *dispatch, Boxes: boxes}
	s.publish(opID, events.NewDispatchCreatedEvent(opID, *dispatch, boxes))

	if len(failed) > 0 {
		recon := &entities.ReconciliationError{DispatchID: dispatch.DispatchID, Failed: failed}
		s.logf("[%s] %v", opID, recon)
		return result, recon
	}

	s.logf("[%s] dispatched %d box(es) to %s as %s: %s kg, %d bobbin(s)",
		opID, len(boxes), customerName, dispatch.DispatchID, totalWeight.StringFixed(2), totalBobbins)
	return result, nil
}

// UpdateBoxStatus sets a box status directly. Boxes only move forward, and only
// a box already listed on a dispatch may be marked dispatched; this is how a
// ReconciliationError is cleared.
func (s *WorkflowService) UpdateBoxStatus(ctx context.Context, boxID string, status entities.BoxStatus) (*entities.Box, error) {
	opID, done, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err := entities.ParseBoxStatus(string(status)); err != nil {
		return nil, entities.NewValidationError("status", err.Error())
	}

	box, err := s.ledgers.Boxes.Get(boxID)
	if err != nil {
		return nil, err
	}
	if box.Status == status {
		return box, nil
	}
	if status != entities.BoxDispatched {
		return nil, &entities.InvalidStateError{
			Entity:    "box",
			ID:        boxID,
			Operation: "return to " + string(status),
			Current:   string(box.Status),
		}
	}

	dispatch, err := s.ledgers.Dispatches.FindByBox(boxID)
	if err != nil {
		if isNotFound(err) {
			return nil, &entities.InvalidStateError{
				Entity:    "box",
				ID:        boxID,
				Operation: "mark dispatched",
				Current:   string(box.Status) + " and not on any dispatch",
				Expected:  "a box listed on a dispatch",
			}
		}
		return nil, err
	}

	updated, err := s.ledgers.Boxes.SetStatus(boxID, status)
	if err != nil {
		return nil, err
	}
	s.logf("[%s] box %s marked %s for %s", opID, boxID, status, dispatch.DispatchID)
	s.publish(opID, events.NewBoxDispatchedEvent(opID, *updated))
	return updated, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, entities.ErrNotFound)
}
