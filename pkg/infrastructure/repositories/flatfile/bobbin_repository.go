package flatfile

import (
	"strings"
	"time"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// BobbinRepository stores inbound bobbin entries in inbound_bobbins.csv
type BobbinRepository struct {
	table *csv.Table[entities.InboundBobbin]
	now   func() time.Time
}

// NewBobbinRepository creates an inbound bobbin ledger on store
func NewBobbinRepository(store *csv.Store, now func() time.Time) *BobbinRepository {
	return &BobbinRepository{
		table: csv.NewTable(store, inboundBobbinSchema),
		now:   now,
	}
}

// Verify interface compliance
var _ repositories.BobbinRepository = (*BobbinRepository)(nil)

// Intake appends new in_stock entries. Entries without an ID get the next IB-NNNN.
func (r *BobbinRepository) Intake(entries []entities.InboundBobbin) ([]*entities.InboundBobbin, error) {
	if len(entries) == 0 {
		return nil, entities.NewValidationError("entries", "at least one bobbin entry is required")
	}

	var created []entities.InboundBobbin
	err := r.table.Mutate(func(records []entities.InboundBobbin) ([]entities.InboundBobbin, error) {
		existing := make(map[string]bool, len(records))
		for _, b := range records {
			existing[b.InboundBobbinID] = true
		}
		supplied := make([]string, len(entries))
		for i, e := range entries {
			supplied[i] = e.InboundBobbinID
		}
		ids, err := claimIDs("inbound_bobbin_id", supplied, existing, r.table.Allocator(records, InboundBobbinPrefix))
		if err != nil {
			return nil, err
		}

		created = created[:0]
		for i, e := range entries {
			id := ids[i]
			received := entities.DateOf(e.DateReceived)
			if received.IsZero() {
				received = entities.DateOf(r.now())
			}
			entry, err := entities.NewInboundBobbin(id, e.LotNo, e.CustomerName, e.BobbinType, e.Quantity, received)
			if err != nil {
				return nil, err
			}
			created = append(created, *entry)
		}
		return append(records, created...), nil
	})
	if err != nil {
		return nil, err
	}
	return pointers(created), nil
}

// GetAll returns every entry in stored order
func (r *BobbinRepository) GetAll() ([]*entities.InboundBobbin, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	return pointers(records), nil
}

// GetByID returns the entry with inboundBobbinID
func (r *BobbinRepository) GetByID(inboundBobbinID string) (*entities.InboundBobbin, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].InboundBobbinID == inboundBobbinID {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError("inbound bobbin", inboundBobbinID)
}

// GetAvailableByType returns the in_stock entries of bobbinType that still hold stock
func (r *BobbinRepository) GetAvailableByType(bobbinType string) ([]*entities.InboundBobbin, error) {
	records, err := r.table.Load()
	if err != nil {
		return nil, err
	}
	var result []*entities.InboundBobbin
	for i := range records {
		if available(records[i], bobbinType) {
			result = append(result, &records[i])
		}
	}
	return result, nil
}

// AvailableQuantity sums the stock of bobbinType across in_stock entries
func (r *BobbinRepository) AvailableQuantity(bobbinType string) (int64, error) {
	records, err := r.table.Load()
	if err != nil {
		return 0, err
	}
	return totalAvailable(records, bobbinType), nil
}

// Deduct consumes quantity bobbins of bobbinType from in_stock entries in stored
// order. A fully consumed entry drops to zero and turns in_use; a partially
// consumed one keeps in_stock with the remainder. When the total available is
// short nothing is written and an InsufficientStockError is returned.
func (r *BobbinRepository) Deduct(bobbinType string, quantity int64) ([]entities.BobbinConsumption, error) {
	if quantity <= 0 {
		return nil, nil
	}

	var consumed []entities.BobbinConsumption
	err := r.table.Mutate(func(records []entities.InboundBobbin) ([]entities.InboundBobbin, error) {
		if total := totalAvailable(records, bobbinType); total < quantity {
			return nil, &entities.InsufficientStockError{
				BobbinType: bobbinType,
				Requested:  quantity,
				Available:  total,
			}
		}

		consumed = consumed[:0]
		remaining := quantity
		for i := range records {
			if remaining == 0 {
				break
			}
			if !available(records[i], bobbinType) {
				continue
			}
			take := records[i].Quantity
			if take > remaining {
				take = remaining
			}
			records[i].Quantity -= take
			if records[i].Quantity == 0 {
				records[i].Status = entities.BobbinInUse
			}
			remaining -= take
			consumed = append(consumed, entities.BobbinConsumption{
				InboundBobbinID: records[i].InboundBobbinID,
				Quantity:        take,
			})
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// Restore gives back what a Deduct consumed and returns the entries to in_stock
func (r *BobbinRepository) Restore(consumed []entities.BobbinConsumption) error {
	if len(consumed) == 0 {
		return nil
	}
	return r.table.Mutate(func(records []entities.InboundBobbin) ([]entities.InboundBobbin, error) {
		for _, c := range consumed {
			found := false
			for i := range records {
				if records[i].InboundBobbinID == c.InboundBobbinID {
					records[i].Quantity += c.Quantity
					records[i].Status = entities.BobbinInStock
					found = true
					break
				}
			}
			if !found {
				return nil, entities.NewNotFoundError("inbound bobbin", c.InboundBobbinID)
			}
		}
		return records, nil
	})
}

// SetStatus overwrites the status of one entry
func (r *BobbinRepository) SetStatus(inboundBobbinID string, status entities.BobbinStatus) (*entities.InboundBobbin, error) {
	var updated entities.InboundBobbin
	err := r.table.Mutate(func(records []entities.InboundBobbin) ([]entities.InboundBobbin, error) {
		for i := range records {
			if records[i].InboundBobbinID == inboundBobbinID {
				records[i].Status = status
				updated = records[i]
				return records, nil
			}
		}
		return nil, entities.NewNotFoundError("inbound bobbin", inboundBobbinID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteByLot removes every entry received with lotNumber and reports how many went
func (r *BobbinRepository) DeleteByLot(lotNumber string) (int, error) {
	removed := 0
	err := r.table.Mutate(func(records []entities.InboundBobbin) ([]entities.InboundBobbin, error) {
		kept := records[:0]
		removed = 0
		for _, b := range records {
			if b.LotNo == lotNumber {
				removed++
				continue
			}
			kept = append(kept, b)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func available(b entities.InboundBobbin, bobbinType string) bool {
	return b.Status == entities.BobbinInStock && b.Quantity > 0 &&
		strings.EqualFold(strings.TrimSpace(b.BobbinType), strings.TrimSpace(bobbinType))
}

func totalAvailable(records []entities.InboundBobbin, bobbinType string) int64 {
	var total int64
	for _, b := range records {
		if available(b, bobbinType) {
			total += b.Quantity
		}
	}
	return total
}
