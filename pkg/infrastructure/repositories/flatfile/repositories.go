package flatfile

import (
	"fmt"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// Repositories bundles every ledger sharing one store
type Repositories struct {
	Store       *csv.Store
	Rolls       *RollRepository
	Bobbins     *BobbinRepository
	Assignments *MachineAssignmentRepository
	Boxes       *BoxRepository
	Dispatches  *DispatchRepository
	Reference   *ReferenceRepository
}

// Options tunes ledger construction
type Options struct {
	// FirstLotNumber is handed out by NextLotNumber on an empty lots table
	FirstLotNumber int64
	// IDWidth is the zero padding of BOX-, DISP-, IB- and reference IDs
	IDWidth int
	// Now supplies default dates; time.Now when nil
	Now func() time.Time
}

// New registers all ten tables on store and returns the ledgers over them
func New(store *csv.Store, opts Options) *Repositories {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	repos := &Repositories{
		Store:       store,
		Rolls:       NewRollRepository(store, opts.FirstLotNumber),
		Bobbins:     NewBobbinRepository(store, now),
		Assignments: NewMachineAssignmentRepository(store, now),
		Boxes:       NewBoxRepository(store, now),
		Dispatches:  NewDispatchRepository(store, now),
		Reference:   NewReferenceRepository(store),
	}

	if opts.IDWidth > 0 {
		repos.Bobbins.table.SetIDWidth(opts.IDWidth)
		repos.Boxes.table.SetIDWidth(opts.IDWidth)
		repos.Dispatches.table.SetIDWidth(opts.IDWidth)
		repos.Reference.customers.SetIDWidth(opts.IDWidth)
		repos.Reference.bobbinTypes.SetIDWidth(opts.IDWidth)
		repos.Reference.boxTypes.SetIDWidth(opts.IDWidth)
		repos.Reference.machines.SetIDWidth(opts.IDWidth)
	}
	return repos
}

// claimIDs resolves the IDs of one batch. Supplied IDs are reserved first and must
// be new to both the table and the batch; empty ones are then filled from next,
// skipping anything taken.
func claimIDs(field string, supplied []string, taken map[string]bool, next func() string) ([]string, error) {
	ids := make([]string, len(supplied))
	for i, id := range supplied {
		if id == "" {
			continue
		}
		if taken[id] {
			return nil, entities.NewValidationError(field, fmt.Sprintf("%s already exists", id))
		}
		taken[id] = true
		ids[i] = id
	}
	for i := range ids {
		if ids[i] != "" {
			continue
		}
		id := next()
		for taken[id] {
			id = next()
		}
		taken[id] = true
		ids[i] = id
	}
	return ids, nil
}
