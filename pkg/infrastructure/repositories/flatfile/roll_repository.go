package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// DefaultFirstLotNumber is handed out when no lot has been recorded yet
const DefaultFirstLotNumber = 1001

// RollRepository stores lots and rolls in lots.csv and rolls.csv
type RollRepository struct {
	lots           *csv.Table[entities.Lot]
	rolls          *csv.Table[entities.Roll]
	firstLotNumber int64
}

// NewRollRepository creates a roll ledger on store
func NewRollRepository(store *csv.Store, firstLotNumber int64) *RollRepository {
	if firstLotNumber <= 0 {
		firstLotNumber = DefaultFirstLotNumber
	}
	return &RollRepository{
		lots:           csv.NewTable(store, lotSchema),
		rolls:          csv.NewTable(store, rollSchema),
		firstLotNumber: firstLotNumber,
	}
}

// Verify interface compliance
var _ repositories.RollRepository = (*RollRepository)(nil)

// CreateLotWithRolls persists the lot snapshot and then its rolls, numbered
// "<lot>-1", "<lot>-2", ... and all in_stock. If the rolls cannot be written the
// lot record is removed again so neither exists without the other.
func (r *RollRepository) CreateLotWithRolls(lotNumber string, dateReceived time.Time, specs []entities.RollSpec) (*entities.Lot, []*entities.Roll, error) {
	lot, rolls, err := entities.NewLot(lotNumber, dateReceived, specs)
	if err != nil {
		return nil, nil, err
	}

	err = r.lots.Mutate(func(lots []entities.Lot) ([]entities.Lot, error) {
		for _, l := range lots {
			if l.LotNumber == lot.LotNumber {
				return nil, entities.NewValidationError("lot_number", fmt.Sprintf("lot %s already exists", lot.LotNumber))
			}
		}
		return append(lots, *lot), nil
	})
	if err != nil {
		return nil, nil, err
	}

	err = r.rolls.Mutate(func(existing []entities.Roll) ([]entities.Roll, error) {
		ids := make(map[string]bool, len(existing))
		for _, roll := range existing {
			ids[roll.RollID] = true
		}
		for _, roll := range rolls {
			if ids[roll.RollID] {
				return nil, entities.NewValidationError("roll_id", fmt.Sprintf("roll %s already exists", roll.RollID))
			}
		}
		return append(existing, rolls...), nil
	})
	if err != nil {
		if undoErr := r.removeLotRecord(lot.LotNumber); undoErr != nil {
			return nil, nil, fmt.Errorf("failed to write rolls of lot %s: %w (lot record left behind: %v)", lot.LotNumber, err, undoErr)
		}
		return nil, nil, fmt.Errorf("failed to write rolls of lot %s: %w", lot.LotNumber, err)
	}

	created := make([]*entities.Roll, len(rolls))
	for i := range rolls {
		roll := rolls[i]
		created[i] = &roll
	}
	return lot, created, nil
}

// NextLotNumber returns one more than the highest numeric lot number. It does not
// reserve the number, so repeated calls agree until a lot is created.
func (r *RollRepository) NextLotNumber() (string, error) {
	lots, err := r.lots.Load()
	if err != nil {
		return "", err
	}
	if len(lots) == 0 {
		return strconv.FormatInt(r.firstLotNumber, 10), nil
	}

	var max int64
	for _, lot := range lots {
		n, err := strconv.ParseInt(strings.TrimSpace(lot.LotNumber), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max < r.firstLotNumber {
		return strconv.FormatInt(r.firstLotNumber, 10), nil
	}
	return strconv.FormatInt(max+1, 10), nil
}

// GetLot returns the lot record with lotNumber
func (r *RollRepository) GetLot(lotNumber string) (*entities.Lot, error) {
	lots, err := r.lots.Load()
	if err != nil {
		return nil, err
	}
	for i := range lots {
		if lots[i].LotNumber == lotNumber {
			return &lots[i], nil
		}
	}
	return nil, entities.NewNotFoundError("lot", lotNumber)
}

// GetAllLots returns every lot in stored order
func (r *RollRepository) GetAllLots() ([]*entities.Lot, error) {
	lots, err := r.lots.Load()
	if err != nil {
		return nil, err
	}
	return pointers(lots), nil
}

// DeleteLot removes every roll of the lot and then the lot record. The lot record
// is authoritative: without it nothing is deleted.
func (r *RollRepository) DeleteLot(lotNumber string) error {
	if _, err := r.GetLot(lotNumber); err != nil {
		return err
	}

	prefix := lotNumber + "-"
	err := r.rolls.Mutate(func(rolls []entities.Roll) ([]entities.Roll, error) {
		kept := rolls[:0]
		for _, roll := range rolls {
			if !strings.HasPrefix(roll.RollID, prefix) {
				kept = append(kept, roll)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete rolls of lot %s: %w", lotNumber, err)
	}

	return r.removeLotRecord(lotNumber)
}

func (r *RollRepository) removeLotRecord(lotNumber string) error {
	return r.lots.Mutate(func(lots []entities.Lot) ([]entities.Lot, error) {
		for i, lot := range lots {
			if lot.LotNumber == lotNumber {
				return append(lots[:i], lots[i+1:]...), nil
			}
		}
		return nil, entities.NewNotFoundError("lot", lotNumber)
	})
}

// GetRoll returns the roll with rollID
func (r *RollRepository) GetRoll(rollID string) (*entities.Roll, error) {
	rolls, err := r.rolls.Load()
	if err != nil {
		return nil, err
	}
	for i := range rolls {
		if rolls[i].RollID == rollID {
			return &rolls[i], nil
		}
	}
	return nil, entities.NewNotFoundError("roll", rollID)
}

// GetAllRolls returns every roll in stored order
func (r *RollRepository) GetAllRolls() ([]*entities.Roll, error) {
	rolls, err := r.rolls.Load()
	if err != nil {
		return nil, err
	}
	return pointers(rolls), nil
}

// GetRollsByStatus returns the rolls currently in status
func (r *RollRepository) GetRollsByStatus(status entities.RollStatus) ([]*entities.Roll, error) {
	return r.filter(func(roll entities.Roll) bool { return roll.Status == status })
}

// GetRollsByLot returns the rolls whose ID belongs to lotNumber
func (r *RollRepository) GetRollsByLot(lotNumber string) ([]*entities.Roll, error) {
	prefix := lotNumber + "-"
	return r.filter(func(roll entities.Roll) bool { return strings.HasPrefix(roll.RollID, prefix) })
}

func (r *RollRepository) filter(keep func(entities.Roll) bool) ([]*entities.Roll, error) {
	rolls, err := r.rolls.Load()
	if err != nil {
		return nil, err
	}
	var result []*entities.Roll
	for i := range rolls {
		if keep(rolls[i]) {
			result = append(result, &rolls[i])
		}
	}
	return result, nil
}

// SetStatus overwrites the status of a roll
func (r *RollRepository) SetStatus(rollID string, status entities.RollStatus) (*entities.Roll, error) {
	if !status.Valid() {
		return nil, entities.NewValidationError("status", fmt.Sprintf("unknown roll status %q", status))
	}

	var updated entities.Roll
	err := r.rolls.Mutate(func(rolls []entities.Roll) ([]entities.Roll, error) {
		for i := range rolls {
			if rolls[i].RollID == rollID {
				rolls[i].Status = status
				updated = rolls[i]
				return rolls, nil
			}
		}
		return nil, entities.NewNotFoundError("roll", rollID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func pointers[T any](records []T) []*T {
	out := make([]*T, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}
