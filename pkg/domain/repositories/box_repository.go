package repositories

import "github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"

// BoxRepository owns packed box records
type BoxRepository interface {
	Create(spec entities.BoxSpec) (*entities.Box, error)
	CreateMany(specs []entities.BoxSpec) ([]*entities.Box, error)
	Get(boxID string) (*entities.Box, error)
	GetAll() ([]*entities.Box, error)
	GetByStatus(status entities.BoxStatus) ([]*entities.Box, error)
	GetByRoll(rollID string) ([]*entities.Box, error)
	SetStatus(boxID string, status entities.BoxStatus) (*entities.Box, error)
	Delete(boxIDs ...string) error
}
