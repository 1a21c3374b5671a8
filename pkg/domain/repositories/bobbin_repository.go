package repositories

import "github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"

// BobbinRepository owns inbound bobbin stock entries
type BobbinRepository interface {
	Intake(entries []entities.InboundBobbin) ([]*entities.InboundBobbin, error)
	GetAll() ([]*entities.InboundBobbin, error)
	GetByID(inboundBobbinID string) (*entities.InboundBobbin, error)
	GetAvailableByType(bobbinType string) ([]*entities.InboundBobbin, error)
	AvailableQuantity(bobbinType string) (int64, error)
	Deduct(bobbinType string, quantity int64) ([]entities.BobbinConsumption, error)
	Restore(consumed []entities.BobbinConsumption) error
	SetStatus(inboundBobbinID string, status entities.BobbinStatus) (*entities.InboundBobbin, error)
	DeleteByLot(lotNumber string) (int, error)
}
