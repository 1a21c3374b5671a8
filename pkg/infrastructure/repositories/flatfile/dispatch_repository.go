package flatfile

import (
	"strings"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// DispatchRepository stores dispatches in dispatches.csv
type DispatchRepository struct {
	table *csv.Table[entities.Dispatch]
	now   func() time.Time
}

// NewDispatchRepository creates a dispatch ledger on store
func NewDispatchRepository(store *csv.Store, now func() time.Time) *DispatchRepository {
	return &DispatchRepository{
		table: csv.NewTable(store, dispatchSchema),
		now:   now,
	}
}

// Verify interface compliance
var _ repositories.DispatchRepository = (*DispatchRepository)(nil)

// Create stores a dispatch under the next DISP-NNNN identifier
func (r *DispatchRepository) Create(spec entities.DispatchSpec) (*entities.Dispatch, error) {
	if len(spec.BoxIDs) == 0 {
		return nil, entities.NewValidationError("box_ids", "at least one box is required")
	}

	date := entities.DateOf(spec.DispatchDate)
	if date.IsZero() {
		date = entities.DateOf(r.now())
	}

	var created entities.Dispatch
	err := r.table.Mutate(func(records []entities.Dispatch) ([]entities.Dispatch, error) {
		created = entities.Dispatch{
			DispatchID:   r.table.Allocator(records, DispatchPrefix)(),
			DispatchDate: date,
			CustomerName: spec.CustomerName,
			BoxIDs:       append([]string(nil), spec.BoxIDs...),
			TotalWeight:  spec.TotalWeight,
			TotalBobbins: spec.TotalBobbins,
		}
		return append(records, dispatchSchema.Clone(created)), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get returns the dispatch with dispatchID
func (r *DispatchRepository) Get(dispatchID string) (*entities.Dispatch, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].DispatchID == dispatchID {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError("dispatch", dispatchID)
}

// GetAll returns every dispatch in stored order
func (r *DispatchRepository) GetAll() ([]*entities.Dispatch, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	return pointers(records), nil
}

// GetByCustomer matches customerName case-insensitively as a substring
func (r *DispatchRepository) GetByCustomer(customerName string) ([]*entities.Dispatch, error) {
	needle := strings.ToLower(strings.TrimSpace(customerName))
	return r.filter(func(d entities.Dispatch) bool {
		return strings.Contains(strings.ToLower(d.CustomerName), needle)
	})
}

// GetByDateRange returns dispatches dated within [start, end], both days included
func (r *DispatchRepository) GetByDateRange(start, end time.Time) ([]*entities.Dispatch, error) {
	from, to := entities.DateOf(start), entities.DateOf(end)
	return r.filter(func(d entities.Dispatch) bool {
		day := entities.DateOf(d.DispatchDate)
		return !day.Before(from) && !day.After(to)
	})
}

// FindByBox returns the dispatch that includes boxID
func (r *DispatchRepository) FindByBox(boxID string) (*entities.Dispatch, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].References(boxID) {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError("dispatch for box", boxID)
}

func (r *DispatchRepository) filter(keep func(entities.Dispatch) bool) ([]*entities.Dispatch, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	var result []*entities.Dispatch
	for i := range records {
		if keep(records[i]) {
			result = append(result, &records[i])
		}
	}
	return result, nil
}
