package api

import (
	"net/http"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// ListCustomers returns the customer master.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.Ledgers().Reference.GetCustomers()
	if err != nil {
		writeError(w, "list customers", err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

// AddCustomer adds a customer; the ID is allocated when omitted.
func (h *Handler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var req entities.Customer
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.Ledgers().Reference.AddCustomer(req)
	if err != nil {
		writeError(w, "add customer", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListBobbinTypes returns the bobbin type master.
func (h *Handler) ListBobbinTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.Ledgers().Reference.GetBobbinTypes()
	if err != nil {
		writeError(w, "list bobbin types", err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// AddBobbinType adds a bobbin type.
func (h *Handler) AddBobbinType(w http.ResponseWriter, r *http.Request) {
	var req entities.BobbinType
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.Ledgers().Reference.AddBobbinType(req)
	if err != nil {
		writeError(w, "add bobbin type", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListBoxTypes returns the box type master.
func (h *Handler) ListBoxTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.Ledgers().Reference.GetBoxTypes()
	if err != nil {
		writeError(w, "list box types", err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

// AddBoxType adds a box type with its tare weight.
func (h *Handler) AddBoxType(w http.ResponseWriter, r *http.Request) {
	var req entities.BoxType
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.Ledgers().Reference.AddBoxType(req)
	if err != nil {
		writeError(w, "add box type", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListMachines returns the machine master.
func (h *Handler) ListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := h.service.Ledgers().Reference.GetMachines()
	if err != nil {
		writeError(w, "list machines", err)
		return
	}
	writeJSON(w, http.StatusOK, machines)
}

// AddMachine registers a machine.
func (h *Handler) AddMachine(w http.ResponseWriter, r *http.Request) {
	var req entities.Machine
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.service.Ledgers().Reference.AddMachine(req)
	if err != nil {
		writeError(w, "add machine", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
