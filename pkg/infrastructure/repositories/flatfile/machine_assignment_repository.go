package flatfile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// MachineAssignmentRepository stores goods-on-machine records keyed by roll ID
type MachineAssignmentRepository struct {
	table *csv.Table[entities.MachineAssignment]
	now   func() time.Time
}

// NewMachineAssignmentRepository creates an assignment ledger on store
func NewMachineAssignmentRepository(store *csv.Store, now func() time.Time) *MachineAssignmentRepository {
	return &MachineAssignmentRepository{
		table: csv.NewTable(store, assignmentSchema),
		now:   now,
	}
}

// Verify interface compliance
var _ repositories.MachineAssignmentRepository = (*MachineAssignmentRepository)(nil)

// Assign records rollID as issued. An existing record for the roll is replaced;
// a new record starts with nothing received and no wastage.
func (r *MachineAssignmentRepository) Assign(rollID string, details entities.IssueDetails, initialWeight decimal.Decimal) (*entities.MachineAssignment, error) {
	if rollID == "" {
		return nil, entities.NewValidationError("roll_id", "cannot be empty")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	issued := entities.DateOf(details.IssuedDate)
	if issued.IsZero() {
		issued = entities.DateOf(r.now())
	}
	assignment := entities.MachineAssignment{
		RollID:              rollID,
		IssuedDate:          issued,
		Operator:            details.Operator,
		MachineID:           details.MachineID,
		MachineNumber:       details.MachineNumber,
		Cut:                 details.Cut,
		BobbinQuantity:      details.BobbinQuantity,
		BobbinType:          details.BobbinType,
		InitialWeight:       initialWeight,
		WeightReceivedSoFar: decimal.Zero,
	}

	if err := r.Put(assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Get returns the assignment of rollID
func (r *MachineAssignmentRepository) Get(rollID string) (*entities.MachineAssignment, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].RollID == rollID {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError("machine assignment", rollID)
}

// GetAll returns every assignment in stored order
func (r *MachineAssignmentRepository) GetAll() ([]*entities.MachineAssignment, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	return pointers(records), nil
}

// Update merges the non-nil fields of update into the record of rollID
func (r *MachineAssignmentRepository) Update(rollID string, update entities.AssignmentUpdate) (*entities.MachineAssignment, error) {
	var updated entities.MachineAssignment
	err := r.table.Mutate(func(records []entities.MachineAssignment) ([]entities.MachineAssignment, error) {
		for i := range records {
			if records[i].RollID == rollID {
				update.Apply(&records[i])
				updated = records[i]
				return records, nil
			}
		}
		return nil, entities.NewNotFoundError("machine assignment", rollID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Put writes assignment as is, replacing any record for the same roll
func (r *MachineAssignmentRepository) Put(assignment entities.MachineAssignment) error {
	return r.table.Mutate(func(records []entities.MachineAssignment) ([]entities.MachineAssignment, error) {
		for i := range records {
			if records[i].RollID == assignment.RollID {
				records[i] = assignment
				return records, nil
			}
		}
		return append(records, assignment), nil
	})
}

// Remove deletes the record of rollID. Removing an absent record is not an error.
func (r *MachineAssignmentRepository) Remove(rollID string) error {
	return r.table.Mutate(func(records []entities.MachineAssignment) ([]entities.MachineAssignment, error) {
		kept := records[:0]
		for _, a := range records {
			if a.RollID != rollID {
				kept = append(kept, a)
			}
		}
		return kept, nil
	})
}
