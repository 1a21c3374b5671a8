package flatfile

import (
	"fmt"
	"strings"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/repositories"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// ReferenceRepository serves customers, bobbin types, box types and machines
type ReferenceRepository struct {
	customers   *csv.Table[entities.Customer]
	bobbinTypes *csv.Table[entities.BobbinType]
	boxTypes    *csv.Table[entities.BoxType]
	machines    *csv.Table[entities.Machine]
}

// NewReferenceRepository creates the reference data tables on store
func NewReferenceRepository(store *csv.Store) *ReferenceRepository {
	return &ReferenceRepository{
		customers:   csv.NewTable(store, customerSchema),
		bobbinTypes: csv.NewTable(store, bobbinTypeSchema),
		boxTypes:    csv.NewTable(store, boxTypeSchema),
		machines:    csv.NewTable(store, machineSchema),
	}
}

// Verify interface compliance
var _ repositories.ReferenceRepository = (*ReferenceRepository)(nil)

func (r *ReferenceRepository) GetCustomers() ([]*entities.Customer, error) {
	return loadAll(r.customers)
}

func (r *ReferenceRepository) GetBobbinTypes() ([]*entities.BobbinType, error) {
	return loadAll(r.bobbinTypes)
}

func (r *ReferenceRepository) GetBoxTypes() ([]*entities.BoxType, error) {
	return loadAll(r.boxTypes)
}

func (r *ReferenceRepository) GetMachines() ([]*entities.Machine, error) {
	return loadAll(r.machines)
}

// FindCustomer matches the customer name case-insensitively
func (r *ReferenceRepository) FindCustomer(name string) (*entities.Customer, error) {
	return find(r.customers, "customer", name, func(c entities.Customer) bool {
		return sameName(c.CustomerName, name)
	})
}

// FindBobbinType matches the type name case-insensitively
func (r *ReferenceRepository) FindBobbinType(name string) (*entities.BobbinType, error) {
	return find(r.bobbinTypes, "bobbin type", name, func(b entities.BobbinType) bool {
		return sameName(b.TypeName, name) || b.BobbinTypeID == name
	})
}

// FindBoxType accepts either the BX- identifier or the type name
func (r *ReferenceRepository) FindBoxType(nameOrID string) (*entities.BoxType, error) {
	return find(r.boxTypes, "box type", nameOrID, func(b entities.BoxType) bool {
		return b.BoxTypeID == nameOrID || sameName(b.TypeName, nameOrID)
	})
}

// FindMachine looks a machine up by its identifier
func (r *ReferenceRepository) FindMachine(machineID string) (*entities.Machine, error) {
	return find(r.machines, "machine", machineID, func(m entities.Machine) bool {
		return m.MachineID == machineID
	})
}

func (r *ReferenceRepository) AddCustomer(customer entities.Customer) (*entities.Customer, error) {
	if strings.TrimSpace(customer.CustomerName) == "" {
		return nil, entities.NewValidationError("customer_name", "cannot be empty")
	}
	return add(r.customers, CustomerPrefix, customer, func(c *entities.Customer) *string { return &c.CustomerID },
		func(existing entities.Customer) bool { return sameName(existing.CustomerName, customer.CustomerName) })
}

func (r *ReferenceRepository) AddBobbinType(bobbinType entities.BobbinType) (*entities.BobbinType, error) {
	if strings.TrimSpace(bobbinType.TypeName) == "" {
		return nil, entities.NewValidationError("type_name", "cannot be empty")
	}
	return add(r.bobbinTypes, BobbinTypePrefix, bobbinType, func(b *entities.BobbinType) *string { return &b.BobbinTypeID },
		func(existing entities.BobbinType) bool { return sameName(existing.TypeName, bobbinType.TypeName) })
}

func (r *ReferenceRepository) AddBoxType(boxType entities.BoxType) (*entities.BoxType, error) {
	if strings.TrimSpace(boxType.TypeName) == "" {
		return nil, entities.NewValidationError("type_name", "cannot be empty")
	}
	if boxType.TareWeight.IsNegative() {
		return nil, entities.NewValidationError("tare_weight", "cannot be negative")
	}
	return add(r.boxTypes, BoxTypePrefix, boxType, func(b *entities.BoxType) *string { return &b.BoxTypeID },
		func(existing entities.BoxType) bool { return sameName(existing.TypeName, boxType.TypeName) })
}

func (r *ReferenceRepository) AddMachine(machine entities.Machine) (*entities.Machine, error) {
	if strings.TrimSpace(machine.MachineNumber) == "" {
		return nil, entities.NewValidationError("machine_number", "cannot be empty")
	}
	return add(r.machines, MachinePrefix, machine, func(m *entities.Machine) *string { return &m.MachineID },
		func(existing entities.Machine) bool { return existing.MachineNumber == machine.MachineNumber })
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func loadAll[T any](table *csv.Table[T]) ([]*T, error) {
	records, err := table.Load()
	if err != nil {
		return nil, err
	}
	return pointers(records), nil
}

func find[T any](table *csv.Table[T], entity, key string, match func(T) bool) (*T, error) {
	records, err := table.Load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if match(records[i]) {
			return &records[i], nil
		}
	}
	return nil, entities.NewNotFoundError(entity, key)
}

// add appends record, allocating its ID when empty. duplicate reports an
// existing record that conflicts with the new one.
func add[T any](table *csv.Table[T], prefix string, record T, idOf func(*T) *string, duplicate func(T) bool) (*T, error) {
	err := table.Mutate(func(records []T) ([]T, error) {
		id := idOf(&record)
		for _, existing := range records {
			if duplicate(existing) {
				return nil, entities.NewValidationError(table.Name(), fmt.Sprintf("%s already exists", *idOf(&existing)))
			}
			if *id != "" && *idOf(&existing) == *id {
				return nil, entities.NewValidationError(table.Name(), fmt.Sprintf("%s already exists", *id))
			}
		}
		if *id == "" {
			*id = table.Allocator(records, prefix)()
		}
		return append(records, record), nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
