package repositories

import (
	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// MachineAssignmentRepository owns the goods-on-machine records, at most one per roll
type MachineAssignmentRepository interface {
	Assign(
		rollID string,
		details entities.IssueDetails,
		initialWeight decimal.Decimal,
	) (*entities.MachineAssignment, error)
	Get(rollID string) (*entities.MachineAssignment, error)
	GetAll() ([]*entities.MachineAssignment, error)
	Update(rollID string, update entities.AssignmentUpdate) (*entities.MachineAssignment, error)
	Put(assignment entities.MachineAssignment) error
	Remove(rollID string) error
}
