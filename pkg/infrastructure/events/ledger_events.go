package events

import (
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

const (
	LotCreatedEvent = "lot.created"
	LotDeletedEvent = "lot.deleted"

	RollIssuedEvent    = "roll.issued"
	RollCompletedEvent = "roll.completed"

	BoxesReceivedEvent   = "boxes.received"
	BoxDispatchedEvent   = "box.dispatched"
	DispatchCreatedEvent = "dispatch.created"

	BobbinsReceivedEvent = "bobbins.received"
	BobbinsDeletedEvent  = "bobbins.deleted"
)

type LotCreated struct {
	Lot   entities.Lot    `json:"lot"`
	Rolls []entities.Roll `json:"rolls"`
}

type LotDeleted struct {
	LotNumber string `json:"lot_number"`
}

type RollIssued struct {
	Assignment entities.MachineAssignment   `json:"assignment"`
	Consumed   []entities.BobbinConsumption `json:"consumed,omitempty"`
}

type RollCompleted struct {
	Assignment entities.MachineAssignment `json:"assignment"`
}

// BoxesReceived is what the label renderer prints box labels from
type BoxesReceived struct {
	RollID string         `json:"roll_id"`
	Boxes  []entities.Box `json:"boxes"`
}

type BoxDispatched struct {
	Box entities.Box `json:"box"`
}

// DispatchCreated is what the label renderer prints the dispatch document from
type DispatchCreated struct {
	Dispatch entities.Dispatch `json:"dispatch"`
	Boxes    []entities.Box    `json:"boxes"`
}

type BobbinsReceived struct {
	Entries []entities.InboundBobbin `json:"entries"`
}

type BobbinsDeleted struct {
	LotNumber string `json:"lot_number"`
	Removed   int    `json:"removed"`
}

func NewLotCreatedEvent(operationID string, lot entities.Lot, rolls []entities.Roll) Event {
	return NewEvent(LotCreatedEvent, lot.LotNumber, operationID, LotCreated{Lot: lot, Rolls: rolls})
}

func NewLotDeletedEvent(operationID, lotNumber string) Event {
	return NewEvent(LotDeletedEvent, lotNumber, operationID, LotDeleted{LotNumber: lotNumber})
}

func NewRollIssuedEvent(operationID string, assignment entities.MachineAssignment, consumed []entities.BobbinConsumption) Event {
	return NewEvent(RollIssuedEvent, assignment.RollID, operationID, RollIssued{
		Assignment: assignment,
		Consumed:   consumed,
	})
}

func NewRollCompletedEvent(operationID string, assignment entities.MachineAssignment) Event {
	return NewEvent(RollCompletedEvent, assignment.RollID, operationID, RollCompleted{Assignment: assignment})
}

func NewBoxesReceivedEvent(operationID, rollID string, boxes []entities.Box) Event {
	return NewEvent(BoxesReceivedEvent, rollID, operationID, BoxesReceived{RollID: rollID, Boxes: boxes})
}

func NewBoxDispatchedEvent(operationID string, box entities.Box) Event {
	return NewEvent(BoxDispatchedEvent, box.BoxID, operationID, BoxDispatched{Box: box})
}

func NewDispatchCreatedEvent(operationID string, dispatch entities.Dispatch, boxes []entities.Box) Event {
	return NewEvent(DispatchCreatedEvent, dispatch.DispatchID, operationID, DispatchCreated{
		Dispatch: dispatch,
		Boxes:    boxes,
	})
}

func NewBobbinsReceivedEvent(operationID, lotNumber string, entries []entities.InboundBobbin) Event {
	return NewEvent(BobbinsReceivedEvent, lotNumber, operationID, BobbinsReceived{Entries: entries})
}

func NewBobbinsDeletedEvent(operationID, lotNumber string, removed int) Event {
	return NewEvent(BobbinsDeletedEvent, lotNumber, operationID, BobbinsDeleted{LotNumber: lotNumber, Removed: removed})
}
