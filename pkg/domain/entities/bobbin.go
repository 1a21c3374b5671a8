package entities

import (
	"fmt"
	"strings"
	"time"
)

// BobbinStatus represents whether an inbound bobbin entry still has stock
type BobbinStatus string

const (
	BobbinInStock BobbinStatus = "in_stock"
	BobbinInUse   BobbinStatus = "in_use"
)

// ParseBobbinStatus converts a stored value into a BobbinStatus
func ParseBobbinStatus(s string) (BobbinStatus, error) {
	switch status := BobbinStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case BobbinInStock, BobbinInUse:
		return status, nil
	default:
		return "", fmt.Errorf("invalid bobbin status: %s (expected: in_stock or in_use)", s)
	}
}

// InboundBobbin is one intake entry of pre-wound bobbins. Several entries may share a type.
type InboundBobbin struct {
	InboundBobbinID string       `json:"inbound_bobbin_id"`
	LotNo           string       `json:"lot_no"`
	CustomerName    string       `json:"customer_name"`
	BobbinType      string       `json:"bobbin_type"`
	Quantity        int64        `json:"quantity"`
	DateReceived    time.Time    `json:"date_received"`
	Status          BobbinStatus `json:"status"`
}

// NewInboundBobbin creates a validated in_stock entry
func NewInboundBobbin(id, lotNo, customerName, bobbinType string, quantity int64, dateReceived time.Time) (*InboundBobbin, error) {
	if bobbinType == "" {
		return nil, NewValidationError("bobbin_type", "cannot be empty")
	}
	if quantity <= 0 {
		return nil, NewValidationError("quantity", fmt.Sprintf("must be positive, got %d", quantity))
	}
	return &InboundBobbin{
		InboundBobbinID: id,
		LotNo:           lotNo,
		CustomerName:    customerName,
		BobbinType:      bobbinType,
		Quantity:        quantity,
		DateReceived:    dateReceived,
		Status:          BobbinInStock,
	}, nil
}

// BobbinConsumption records how much one entry gave up during a deduction
type BobbinConsumption struct {
	InboundBobbinID string `json:"inbound_bobbin_id"`
	Quantity        int64  `json:"quantity"`
}
