package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// --- Request types ---

type issueRequest struct {
	IssuedDate     string `json:"issued_date"`
	Operator       string `json:"operator"`
	MachineID      string `json:"machine_id"`
	MachineNumber  string `json:"machine_number"`
	Cut            string `json:"cut"`
	BobbinQuantity int64  `json:"bobbin_quantity"`
	BobbinType     string `json:"bobbin_type"`
}

type boxRequest struct {
	DateCreated string           `json:"date_created"`
	GrossWeight decimal.Decimal  `json:"gross_weight"`
	TareWeight  *decimal.Decimal `json:"tare_weight"`
	NetWeight   *decimal.Decimal `json:"net_weight"`
	BobbinCount int64            `json:"bobbin_count"`
	BobbinType  string           `json:"bobbin_type"`
	BoxType     string           `json:"box_type"`
}

type receiveRequest struct {
	Boxes       []boxRequest `json:"boxes"`
	MarkWastage bool         `json:"mark_wastage"`
}

type intakeRequest struct {
	LotNo        string `json:"lot_no"`
	CustomerName string `json:"customer_name"`
	BobbinType   string `json:"bobbin_type"`
	Quantity     int64  `json:"quantity"`
	DateReceived string `json:"date_received"`
}

// --- Handlers ---

// IssueToMachine puts an in-stock roll on a machine.
func (h *Handler) IssueToMachine(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	issued, err := parseDate("issued_date", req.IssuedDate)
	if err != nil {
		writeError(w, "issue roll", err)
		return
	}

	result, err := h.service.IssueToMachine(r.Context(), chi.URLParam(r, "id"), entities.IssueDetails{
		IssuedDate:     issued,
		Operator:       req.Operator,
		MachineID:      req.MachineID,
		MachineNumber:  req.MachineNumber,
		Cut:            req.Cut,
		BobbinQuantity: req.BobbinQuantity,
		BobbinType:     req.BobbinType,
	})
	if err != nil {
		writeError(w, "issue roll", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ReceiveBoxes records boxes produced from an issued roll.
func (h *Handler) ReceiveBoxes(w http.ResponseWriter, r *http.Request) {
	var req receiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	specs := make([]entities.BoxSpec, len(req.Boxes))
	for i, b := range req.Boxes {
		created, err := parseDate("date_created", b.DateCreated)
		if err != nil {
			writeError(w, "receive boxes", err)
			return
		}
		specs[i] = entities.BoxSpec{
			DateCreated: created,
			GrossWeight: b.GrossWeight,
			TareWeight:  b.TareWeight,
			NetWeight:   b.NetWeight,
			BobbinCount: b.BobbinCount,
			BobbinType:  b.BobbinType,
			BoxType:     b.BoxType,
		}
	}

	result, err := h.service.ReceiveBoxes(r.Context(), chi.URLParam(r, "id"), specs, req.MarkWastage)
	if err != nil {
		writeError(w, "receive boxes", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListAssignments returns the goods-on-machine records.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.Ledgers().Assignments.GetAll()
	if err != nil {
		writeError(w, "list assignments", err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// ListBobbins returns every inbound entry, or the available ones of ?type=.
func (h *Handler) ListBobbins(w http.ResponseWriter, r *http.Request) {
	bobbins := h.service.Ledgers().Bobbins
	if bobbinType := r.URL.Query().Get("type"); bobbinType != "" {
		available, err := bobbins.GetAvailableByType(bobbinType)
		if err != nil {
			writeError(w, "list bobbins", err)
			return
		}
		writeJSON(w, http.StatusOK, available)
		return
	}
	all, err := bobbins.GetAll()
	if err != nil {
		writeError(w, "list bobbins", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// IntakeBobbins records received bobbin stock.
func (h *Handler) IntakeBobbins(w http.ResponseWriter, r *http.Request) {
	var req []intakeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req) == 0 {
		writeError(w, "intake bobbins", entities.NewValidationError("entries", "at least one entry is required"))
		return
	}

	entries := make([]entities.InboundBobbin, len(req))
	for i, e := range req {
		received, err := parseDate("date_received", e.DateReceived)
		if err != nil {
			writeError(w, "intake bobbins", err)
			return
		}
		entries[i] = entities.InboundBobbin{
			LotNo:        e.LotNo,
			CustomerName: e.CustomerName,
			BobbinType:   e.BobbinType,
			Quantity:     e.Quantity,
			DateReceived: received,
		}
	}

	created, err := h.service.IntakeBobbins(r.Context(), entries)
	if err != nil {
		writeError(w, "intake bobbins", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteBobbinsByLot removes the bobbin entries received with a lot.
func (h *Handler) DeleteBobbinsByLot(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.DeleteInboundBobbinsByLot(r.Context(), chi.URLParam(r, "lot"))
	if err != nil {
		writeError(w, "delete bobbins", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// CaptureGrossWeight reads the weighing scale.
func (h *Handler) CaptureGrossWeight(w http.ResponseWriter, r *http.Request) {
	weight, err := h.service.CaptureGrossWeight(r.Context())
	if err != nil {
		writeError(w, "capture gross weight", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"gross_weight": weight})
}

// StockSummary returns the stock position across every ledger.
func (h *Handler) StockSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.StockSummary(r.Context())
	if err != nil {
		writeError(w, "stock summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
