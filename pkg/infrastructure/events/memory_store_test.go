package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()

	box := entities.Box{BoxID: "BOX-0001", RollID: "1001-1"}
	if err := store.AppendEvent("1001-1", NewBoxesReceivedEvent("op-1", "1001-1", []entities.Box{box})); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := store.AppendEvent("1001-1", NewRollCompletedEvent("op-1", entities.MachineAssignment{RollID: "1001-1"})); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := store.AppendEvent("DISP-0001", NewDispatchCreatedEvent("op-2", entities.Dispatch{DispatchID: "DISP-0001"}, nil)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	stream, err := store.ReadEvents("1001-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(stream) != 2 {
		t.Fatalf("Expected 2 events in stream, got %d", len(stream))
	}
	if stream[0].Version() != 1 || stream[1].Version() != 2 {
		t.Errorf("Expected versions 1,2, got %d,%d", stream[0].Version(), stream[1].Version())
	}
	if stream[0].OperationID() != "op-1" || stream[0].ID() == "" {
		t.Errorf("Expected operation and event ids to be kept, got %q / %q", stream[0].OperationID(), stream[0].ID())
	}

	received, ok := stream[0].Data().(BoxesReceived)
	if !ok || len(received.Boxes) != 1 || received.Boxes[0].BoxID != "BOX-0001" {
		t.Errorf("Unexpected payload: %#v", stream[0].Data())
	}

	all, _ := store.ReadAllEvents(1)
	if len(all) != 2 {
		t.Errorf("Expected 2 events from position 1, got %d", len(all))
	}
	if later, _ := store.ReadEvents("1001-1", 3); len(later) != 0 {
		t.Errorf("Expected no events past the last version, got %d", len(later))
	}
}

func TestInMemoryEventStore_SubscribersRunAsync(t *testing.T) {
	store := NewInMemoryEventStore()
	var logged []string
	var logMu sync.Mutex
	store.SetLogger(func(format string, args ...any) {
		logMu.Lock()
		defer logMu.Unlock()
		logged = append(logged, format)
	})

	var mu sync.Mutex
	var seen []string
	handler := &HandlerFunc{
		Types: []string{DispatchCreatedEvent},
		Fn: func(e Event) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, e.StreamID())
			return nil
		},
	}
	failing := &HandlerFunc{
		Types: []string{DispatchCreatedEvent},
		Fn:    func(Event) error { return errors.New("printer offline") },
	}
	if err := store.Subscribe([]string{DispatchCreatedEvent}, handler); err != nil {
		t.Fatal(err)
	}
	if err := store.Subscribe([]string{DispatchCreatedEvent}, failing); err != nil {
		t.Fatal(err)
	}

	// A failing subscriber does not turn the append into an error
	if err := store.AppendEvent("DISP-0001", NewDispatchCreatedEvent("op", entities.Dispatch{DispatchID: "DISP-0001"}, nil)); err != nil {
		t.Fatalf("Expected append to succeed, got %v", err)
	}
	if err := store.AppendEvent("1001-1", NewLotDeletedEvent("op", "1001")); err != nil {
		t.Fatal(err)
	}
	store.Wait()

	if len(seen) != 1 || seen[0] != "DISP-0001" {
		t.Errorf("Expected handler to see only the dispatch event, got %v", seen)
	}
	if len(logged) != 1 {
		t.Errorf("Expected the handler failure to be logged once, got %d", len(logged))
	}

	if err := store.Unsubscribe(handler); err != nil {
		t.Fatal(err)
	}
	store.AppendEvent("DISP-0002", NewDispatchCreatedEvent("op", entities.Dispatch{DispatchID: "DISP-0002"}, nil))
	store.Wait()
	if len(seen) != 1 {
		t.Errorf("Expected unsubscribed handler to stay quiet, got %v", seen)
	}
}
