package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// --- Request types ---

type rollRequest struct {
	CustomerName string          `json:"customer_name"`
	ColorOrType  string          `json:"color_or_type"`
	Weight       decimal.Decimal `json:"weight"`
	DateReceived string          `json:"date_received"`
}

type createLotRequest struct {
	LotNumber    string        `json:"lot_number"`
	DateReceived string        `json:"date_received"`
	Rolls        []rollRequest `json:"rolls"`
}

// --- Handlers ---

// ListLots returns every lot.
func (h *Handler) ListLots(w http.ResponseWriter, r *http.Request) {
	lots, err := h.service.Ledgers().Rolls.GetAllLots()
	if err != nil {
		writeError(w, "list lots", err)
		return
	}
	writeJSON(w, http.StatusOK, lots)
}

// CreateLot records a lot and its rolls. The lot number is allocated when omitted.
func (h *Handler) CreateLot(w http.ResponseWriter, r *http.Request) {
	var req createLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	received, err := parseDate("date_received", req.DateReceived)
	if err != nil {
		writeError(w, "create lot", err)
		return
	}
	specs := make([]entities.RollSpec, len(req.Rolls))
	for i, roll := range req.Rolls {
		date, err := parseDate("date_received", roll.DateReceived)
		if err != nil {
			writeError(w, "create lot", err)
			return
		}
		specs[i] = entities.RollSpec{
			CustomerName: roll.CustomerName,
			ColorOrType:  roll.ColorOrType,
			Weight:       roll.Weight,
			DateReceived: date,
		}
	}

	result, err := h.service.CreateLot(r.Context(), req.LotNumber, received, specs)
	if err != nil {
		writeError(w, "create lot", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// NextLotNumber previews the number the next lot will get.
func (h *Handler) NextLotNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.service.GetNextLotNumber(r.Context())
	if err != nil {
		writeError(w, "next lot number", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"lot_number": next})
}

// RollsByLot returns the rolls of one lot.
func (h *Handler) RollsByLot(w http.ResponseWriter, r *http.Request) {
	lot := chi.URLParam(r, "lot")
	if _, err := h.service.Ledgers().Rolls.GetLot(lot); err != nil {
		writeError(w, "get lot", err)
		return
	}
	rolls, err := h.service.Ledgers().Rolls.GetRollsByLot(lot)
	if err != nil {
		writeError(w, "list rolls by lot", err)
		return
	}
	writeJSON(w, http.StatusOK, rolls)
}

// DeleteLot cancels a lot whose rolls are all still in stock.
func (h *Handler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLot(r.Context(), chi.URLParam(r, "lot")); err != nil {
		writeError(w, "delete lot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRolls returns every roll, or those in the status given by ?status=.
func (h *Handler) ListRolls(w http.ResponseWriter, r *http.Request) {
	rolls := h.service.Ledgers().Rolls
	s := r.URL.Query().Get("status")
	if s == "" {
		all, err := rolls.GetAllRolls()
		if err != nil {
			writeError(w, "list rolls", err)
			return
		}
		writeJSON(w, http.StatusOK, all)
		return
	}

	status, err := entities.ParseRollStatus(s)
	if err != nil {
		writeError(w, "list rolls", entities.NewValidationError("status", err.Error()))
		return
	}
	filtered, err := rolls.GetRollsByStatus(status)
	if err != nil {
		writeError(w, "list rolls", err)
		return
	}
	writeJSON(w, http.StatusOK, filtered)
}
