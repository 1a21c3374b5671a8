package repositories

import (
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// RollRepository owns lots and the roll lifecycle records. It stores status
// changes without checking their direction; the workflow enforces transitions.
type RollRepository interface {
	CreateLotWithRolls(
		lotNumber string,
		dateReceived time.Time,
		specs []entities.RollSpec,
	) (*entities.Lot, []*entities.Roll, error)
	NextLotNumber() (string, error)
	GetLot(lotNumber string) (*entities.Lot, error)
	GetAllLots() ([]*entities.Lot, error)
	DeleteLot(lotNumber string) error

	GetRoll(rollID string) (*entities.Roll, error)
	GetAllRolls() ([]*entities.Roll, error)
	GetRollsByStatus(status entities.RollStatus) ([]*entities.Roll, error)
	GetRollsByLot(lotNumber string) ([]*entities.Roll, error)
	SetStatus(rollID string, status entities.RollStatus) (*entities.Roll, error)
}
