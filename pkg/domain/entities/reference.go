package entities

import "github.com/shopspring/decimal"

// Customer is reference data for roll owners and dispatch recipients
type Customer struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	ContactPerson string `json:"contact_person"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`
}

// BobbinType is reference data describing a kind of bobbin
type BobbinType struct {
	BobbinTypeID string          `json:"bobbin_type_id"`
	TypeName     string          `json:"type_name"`
	Description  string          `json:"description"`
	Weight       decimal.Decimal `json:"weight"`
	Notes        string          `json:"notes"`
}

// BoxType is reference data describing a packing box and its tare weight
type BoxType struct {
	BoxTypeID   string          `json:"box_type_id"`
	TypeName    string          `json:"type_name"`
	Description string          `json:"description"`
	Dimensions  string          `json:"dimensions"`
	TareWeight  decimal.Decimal `json:"tare_weight"`
	Notes       string          `json:"notes"`
}

// Machine is reference data for a production machine
type Machine struct {
	MachineID     string `json:"machine_id"`
	MachineNumber string `json:"machine_number"`
	Description   string `json:"description"`
}
