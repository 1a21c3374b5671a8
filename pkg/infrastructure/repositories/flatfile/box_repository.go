package flatfile

import (
	"fmt"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// BoxRepository stores packed boxes in boxes.csv
type BoxRepository struct {
	table *csv.Table[entities.Box]
	now   func() time.Time
}

// NewBoxRepository creates a box ledger on store
func NewBoxRepository(store *csv.Store, now func() time.Time) *BoxRepository {
	return &BoxRepository{
		table: csv.NewTable(store, boxSchema),
		now:   now,
	}
}

// Verify interface compliance
var _ repositories.BoxRepository = (*BoxRepository)(nil)

// Create stores a single box
func (r *BoxRepository) Create(spec entities.BoxSpec) (*entities.Box, error) {
	boxes, err := r.CreateMany([]entities.BoxSpec{spec})
	if err != nil {
		return nil, err
	}
	return boxes[0], nil
}

// CreateMany stores every spec in one write. Specs without a box ID receive
// consecutive BOX-NNNN identifiers; all boxes start ready_to_dispatch.
func (r *BoxRepository) CreateMany(specs []entities.BoxSpec) ([]*entities.Box, error) {
	if len(specs) == 0 {
		return nil, entities.NewValidationError("boxes", "at least one box is required")
	}
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i+1, err)
		}
	}

	now := r.now()
	var created []entities.Box
	err := r.table.Mutate(func(records []entities.Box) ([]entities.Box, error) {
		existing := make(map[string]bool, len(records))
		for _, b := range records {
			existing[b.BoxID] = true
		}
		supplied := make([]string, len(specs))
		for i, spec := range specs {
			supplied[i] = spec.BoxID
		}
		ids, err := claimIDs("box_id", supplied, existing, r.table.Allocator(records, BoxPrefix))
		if err != nil {
			return nil, err
		}

		created = created[:0]
		for i, spec := range specs {
			created = append(created, entities.NewBox(ids[i], spec, now))
		}
		return append(records, created...), nil
	})
	if err != nil {
		return nil, err
	}
	return pointers(created), nil
}

// Get returns the box with boxID
func (r *BoxRepository) Get(boxID string) (*entities.Box, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].BoxID == boxID {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError("box", boxID)
}

// GetAll returns every box in stored order
func (r *BoxRepository) GetAll() ([]*entities.Box, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	return pointers(records), nil
}

// GetByStatus returns the boxes in status
func (r *BoxRepository) GetByStatus(status entities.BoxStatus) ([]*entities.Box, error) {
	return r.filter(func(b entities.Box) bool { return b.Status == status })
}

// GetByRoll returns the boxes packed from rollID
func (r *BoxRepository) GetByRoll(rollID string) ([]*entities.Box, error) {
	return r.filter(func(b entities.Box) bool { return b.RollID == rollID })
}

func (r *BoxRepository) filter(keep func(entities.Box) bool) ([]*entities.Box, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	var result []*entities.Box
	for i := range records {
		if keep(records[i]) {
			result = append(result, &records[i])
		}
	}
	return result, nil
}

// SetStatus overwrites the status of one box
func (r *BoxRepository) SetStatus(boxID string, status entities.BoxStatus) (*entities.Box, error) {
	var updated entities.Box
	err := r.table.Mutate(func(records []entities.Box) ([]entities.Box, error) {
		for i := range records {
			if records[i].BoxID == boxID {
				records[i].Status = status
				updated = records[i]
				return records, nil
			}
		}
		return nil, entities.NewNotFoundError("box", boxID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the given boxes. Unknown IDs are ignored.
func (r *BoxRepository) Delete(boxIDs ...string) error {
	if len(boxIDs) == 0 {
		return nil
	}
	drop := make(map[string]bool, len(boxIDs))
	for _, id := range boxIDs {
		drop[id] = true
	}
	return r.table.Mutate(func(records []entities.Box) ([]entities.Box, error) {
		kept := records[:0]
		for _, b := range records {
			if !drop[b.BoxID] {
				kept = append(kept, b)
			}
		}
		return kept, nil
	})
}
