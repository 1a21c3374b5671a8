// Package flatfile implements the production ledgers on top of the csv record store,
// one header-first table file per entity.
package flatfile

import (
	"slices"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
	"github.com/KJ21-ENG/natraj-metallic/pkg/infrastructure/repositories/csv"
)

// Table file names
const (
	RollsTable          = "rolls.csv"
	LotsTable           = "lots.csv"
	GoodsOnMachineTable = "goods_on_machine.csv"
	BoxesTable          = "boxes.csv"
	DispatchesTable     = "dispatches.csv"
	CustomersTable      = "customers.csv"
	BobbinTypesTable    = "bobbin_types.csv"
	BoxTypesTable       = "box_types.csv"
	MachinesTable       = "machines.csv"
	InboundBobbinsTable = "inbound_bobbins.csv"
)

// ID prefixes for sequentially allocated identifiers
const (
	BoxPrefix           = "BOX"
	DispatchPrefix      = "DISP"
	CustomerPrefix      = "CUST"
	BobbinTypePrefix    = "BT"
	BoxTypePrefix       = "BX"
	InboundBobbinPrefix = "IB"
	MachinePrefix       = "MCH"
)

var lotSchema = csv.Schema[entities.Lot]{
	Name:   LotsTable,
	Header: []string{"lot_number", "date_received", "total_rolls", "total_weight"},
	ID:     func(l entities.Lot) string { return l.LotNumber },
	Encode: func(l entities.Lot) []string {
		return []string{
			l.LotNumber,
			csv.FormatDate(l.DateReceived),
			csv.FormatInt(int64(l.TotalRolls)),
			csv.FormatDecimal(l.TotalWeight),
		}
	},
	Decode: func(r *csv.Row) (entities.Lot, error) {
		return entities.Lot{
			LotNumber:    r.String("lot_number"),
			DateReceived: r.Date("date_received"),
			TotalRolls:   int(r.Int("total_rolls")),
			TotalWeight:  r.Decimal("total_weight"),
		}, nil
	},
}

var rollSchema = csv.Schema[entities.Roll]{
	Name:   RollsTable,
	Header: []string{"roll_id", "customer_name", "color_or_type", "weight", "status", "date_received", "lot_no"},
	ID:     func(r entities.Roll) string { return r.RollID },
	Encode: func(r entities.Roll) []string {
		return []string{
			r.RollID,
			r.CustomerName,
			r.ColorOrType,
			csv.FormatDecimal(r.Weight),
			string(r.Status),
			csv.FormatDate(r.DateReceived),
			r.LotNo,
		}
	},
	Decode: func(r *csv.Row) (entities.Roll, error) {
		roll := entities.Roll{
			RollID:       r.String("roll_id"),
			CustomerName: r.String("customer_name"),
			ColorOrType:  r.String("color_or_type"),
			Weight:       r.Decimal("weight"),
			DateReceived: r.Date("date_received"),
			LotNo:        r.String("lot_no"),
		}
		r.Parse("status", func(s string) (err error) {
			roll.Status, err = entities.ParseRollStatus(s)
			return err
		})
		return roll, nil
	},
}

var assignmentSchema = csv.Schema[entities.MachineAssignment]{
	Name: GoodsOnMachineTable,
	Header: []string{
		"roll_id", "issued_date", "operator", "machine_id", "machine_number", "cut",
		"bobbin_quantity", "bobbin_type", "initial_weight", "weight_received_so_far", "wastage_marked",
	},
	ID: func(a entities.MachineAssignment) string { return a.RollID },
	Encode: func(a entities.MachineAssignment) []string {
		return []string{
			a.RollID,
			csv.FormatDate(a.IssuedDate),
			a.Operator,
			a.MachineID,
			a.MachineNumber,
			a.Cut,
			csv.FormatInt(a.BobbinQuantity),
			a.BobbinType,
			csv.FormatDecimal(a.InitialWeight),
			csv.FormatDecimal(a.WeightReceivedSoFar),
			csv.FormatBool(a.WastageMarked),
		}
	},
	Decode: func(r *csv.Row) (entities.MachineAssignment, error) {
		return entities.MachineAssignment{
			RollID:              r.String("roll_id"),
			IssuedDate:          r.Date("issued_date"),
			Operator:            r.String("operator"),
			MachineID:           r.String("machine_id"),
			MachineNumber:       r.String("machine_number"),
			Cut:                 r.String("cut"),
			BobbinQuantity:      r.Int("bobbin_quantity"),
			BobbinType:          r.String("bobbin_type"),
			InitialWeight:       r.Decimal("initial_weight"),
			WeightReceivedSoFar: r.Decimal("weight_received_so_far"),
			WastageMarked:       r.Bool("wastage_marked"),
		}, nil
	},
}

var boxSchema = csv.Schema[entities.Box]{
	Name: BoxesTable,
	Header: []string{
		"box_id", "roll_id", "date_created", "gross_weight", "tare_weight", "net_weight",
		"bobbin_count", "bobbin_type", "box_type", "status",
	},
	ID: func(b entities.Box) string { return b.BoxID },
	Encode: func(b entities.Box) []string {
		return []string{
			b.BoxID,
			b.RollID,
			csv.FormatDate(b.DateCreated),
			csv.FormatDecimal(b.GrossWeight),
			csv.FormatDecimal(b.TareWeight),
			csv.FormatDecimal(b.NetWeight),
			csv.FormatInt(b.BobbinCount),
			b.BobbinType,
			b.BoxType,
			string(b.Status),
		}
	},
	Decode: func(r *csv.Row) (entities.Box, error) {
		box := entities.Box{
			BoxID:       r.String("box_id"),
			RollID:      r.String("roll_id"),
			DateCreated: r.Date("date_created"),
			GrossWeight: r.Decimal("gross_weight"),
			TareWeight:  r.Decimal("tare_weight"),
			NetWeight:   r.Decimal("net_weight"),
			BobbinCount: r.Int("bobbin_count"),
			BobbinType:  r.String("bobbin_type"),
			BoxType:     r.String("box_type"),
		}
		r.Parse("status", func(s string) (err error) {
			box.Status, err = entities.ParseBoxStatus(s)
			return err
		})
		return box, nil
	},
}

var dispatchSchema = csv.Schema[entities.Dispatch]{
	Name:   DispatchesTable,
	Header: []string{"dispatch_id", "dispatch_date", "customer_name", "box_ids", "total_weight", "total_bobbins"},
	ID:     func(d entities.Dispatch) string { return d.DispatchID },
	Encode: func(d entities.Dispatch) []string {
		return []string{
			d.DispatchID,
			csv.FormatDate(d.DispatchDate),
			d.CustomerName,
			csv.FormatList(d.BoxIDs),
			csv.FormatDecimal(d.TotalWeight),
			csv.FormatInt(d.TotalBobbins),
		}
	},
	Decode: func(r *csv.Row) (entities.Dispatch, error) {
		return entities.Dispatch{
			DispatchID:   r.String("dispatch_id"),
			DispatchDate: r.Date("dispatch_date"),
			CustomerName: r.String("customer_name"),
			BoxIDs:       r.List("box_ids"),
			TotalWeight:  r.Decimal("total_weight"),
			TotalBobbins: r.Int("total_bobbins"),
		}, nil
	},
	Clone: func(d entities.Dispatch) entities.Dispatch {
		d.BoxIDs = slices.Clone(d.BoxIDs)
		return d
	},
}

var inboundBobbinSchema = csv.Schema[entities.InboundBobbin]{
	Name:   InboundBobbinsTable,
	Header: []string{"inbound_bobbin_id", "lot_no", "customer_name", "bobbin_type", "quantity", "date_received", "status"},
	ID:     func(b entities.InboundBobbin) string { return b.InboundBobbinID },
	Encode: func(b entities.InboundBobbin) []string {
		return []string{
			b.InboundBobbinID,
			b.LotNo,
			b.CustomerName,
			b.BobbinType,
			csv.FormatInt(b.Quantity),
			csv.FormatDate(b.DateReceived),
			string(b.Status),
		}
	},
	Decode: func(r *csv.Row) (entities.InboundBobbin, error) {
		b := entities.InboundBobbin{
			InboundBobbinID: r.String("inbound_bobbin_id"),
			LotNo:           r.String("lot_no"),
			CustomerName:    r.String("customer_name"),
			BobbinType:      r.String("bobbin_type"),
			Quantity:        r.Int("quantity"),
			DateReceived:    r.Date("date_received"),
		}
		r.Parse("status", func(s string) (err error) {
			b.Status, err = entities.ParseBobbinStatus(s)
			return err
		})
		return b, nil
	},
}

var customerSchema = csv.Schema[entities.Customer]{
	Name:   CustomersTable,
	Header: []string{"customer_id", "customer_name", "contact_person", "contact_number", "address", "email", "notes"},
	ID:     func(c entities.Customer) string { return c.CustomerID },
	Encode: func(c entities.Customer) []string {
		return []string{c.CustomerID, c.CustomerName, c.ContactPerson, c.ContactNumber, c.Address, c.Email, c.Notes}
	},
	Decode: func(r *csv.Row) (entities.Customer, error) {
		return entities.Customer{
			CustomerID:    r.String("customer_id"),
			CustomerName:  r.String("customer_name"),
			ContactPerson: r.String("contact_person"),
			ContactNumber: r.String("contact_number"),
			Address:       r.String("address"),
			Email:         r.String("email"),
			Notes:         r.String("notes"),
		}, nil
	},
}

var bobbinTypeSchema = csv.Schema[entities.BobbinType]{
	Name:   BobbinTypesTable,
	Header: []string{"bobbin_type_id", "type_name", "description", "weight", "notes"},
	ID:     func(b entities.BobbinType) string { return b.BobbinTypeID },
	Encode: func(b entities.BobbinType) []string {
		return []string{b.BobbinTypeID, b.TypeName, b.Description, csv.FormatDecimal(b.Weight), b.Notes}
	},
	Decode: func(r *csv.Row) (entities.BobbinType, error) {
		return entities.BobbinType{
			BobbinTypeID: r.String("bobbin_type_id"),
			TypeName:     r.String("type_name"),
			Description:  r.String("description"),
			Weight:       r.Decimal("weight"),
			Notes:        r.String("notes"),
		}, nil
	},
}

var boxTypeSchema = csv.Schema[entities.BoxType]{
	Name:   BoxTypesTable,
	Header: []string{"box_type_id", "type_name", "description", "dimensions", "tare_weight", "notes"},
	ID:     func(b entities.BoxType) string { return b.BoxTypeID },
	Encode: func(b entities.BoxType) []string {
		return []string{b.BoxTypeID, b.TypeName, b.Description, b.Dimensions, csv.FormatDecimal(b.TareWeight), b.Notes}
	},
	Decode: func(r *csv.Row) (entities.BoxType, error) {
		return entities.BoxType{
			BoxTypeID:   r.String("box_type_id"),
			TypeName:    r.String("type_name"),
			Description: r.String("description"),
			Dimensions:  r.String("dimensions"),
			TareWeight:  r.Decimal("tare_weight"),
			Notes:       r.String("notes"),
		}, nil
	},
}

var machineSchema = csv.Schema[entities.Machine]{
	Name:   MachinesTable,
	Header: []string{"machine_id", "machine_number", "description"},
	ID:     func(m entities.Machine) string { return m.MachineID },
	Encode: func(m entities.Machine) []string {
		return []string{m.MachineID, m.MachineNumber, m.Description}
	},
	Decode: func(r *csv.Row) (entities.Machine, error) {
		return entities.Machine{
			MachineID:     r.String("machine_id"),
			MachineNumber: r.String("machine_number"),
			Description:   r.String("description"),
		}, nil
	},
}
