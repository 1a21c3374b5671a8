package repositories

import (
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// DispatchRepository owns dispatch records. Totals are stored as given.
type DispatchRepository interface {
	Create(spec entities.DispatchSpec) (*entities.Dispatch, error)
	Get(dispatchID string) (*entities.Dispatch, error)
	GetAll() ([]*entities.Dispatch, error)
	GetByCustomer(customerName string) ([]*entities.Dispatch, error)
	GetByDateRange(start, end time.Time) ([]*entities.Dispatch, error)
	FindByBox(boxID string) (*entities.Dispatch, error)
}
