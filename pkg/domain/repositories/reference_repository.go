package repositories

import "github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"

// ReferenceRepository provides the master data the ledgers validate against
type ReferenceRepository interface {
	GetCustomers() ([]*entities.Customer, error)
	GetBobbinTypes() ([]*entities.BobbinType, error)
	GetBoxTypes() ([]*entities.BoxType, error)
	GetMachines() ([]*entities.Machine, error)

	FindCustomer(name string) (*entities.Customer, error)
	FindBobbinType(name string) (*entities.BobbinType, error)
	FindBoxType(nameOrID string) (*entities.BoxType, error)
	FindMachine(machineID string) (*entities.Machine, error)

	AddCustomer(customer entities.Customer) (*entities.Customer, error)
	AddBobbinType(bobbinType entities.BobbinType) (*entities.BobbinType, error)
	AddBoxType(boxType entities.BoxType) (*entities.BoxType, error)
	AddMachine(machine entities.Machine) (*entities.Machine, error)
}
