package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

type createDispatchRequest struct {
	CustomerName string   `json:"customer_name"`
	BoxIDs       []string `json:"box_ids"`
	DispatchDate string   `json:"dispatch_date"`
}

type boxStatusRequest struct {
	Status string `json:"status"`
}

// CreateDispatch ships ready boxes to a customer. A dispatch that was recorded
// but left boxes behind answers 207 with the boxes to reconcile.
func (h *Handler) CreateDispatch(w http.ResponseWriter, r *http.Request) {
	var req createDispatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date, err := parseDate("dispatch_date", req.DispatchDate)
	if err != nil {
		writeError(w, "create dispatch", err)
		return
	}

	result, err := h.service.CreateDispatch(r.Context(), req.CustomerName, req.BoxIDs, date)
	var recon *entities.ReconciliationError
	if errors.As(err, &recon) && result != nil {
		writeJSON(w, http.StatusMultiStatus, map[string]interface{}{
			"error":        err.Error(),
			"result":       result,
			"unreconciled": recon.FailedBoxIDs(),
		})
		return
	}
	if err != nil {
		writeError(w, "create dispatch", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListDispatches returns every dispatch, narrowed by ?customer= or ?from=&to=.
func (h *Handler) ListDispatches(w http.ResponseWriter, r *http.Request) {
	dispatches := h.service.Ledgers().Dispatches
	q := r.URL.Query()

	if customer := q.Get("customer"); customer != "" {
		found, err := dispatches.GetByCustomer(customer)
		if err != nil {
			writeError(w, "list dispatches", err)
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	if q.Get("from") != "" || q.Get("to") != "" {
		from, err := parseDate("from", q.Get("from"))
		if err != nil {
			writeError(w, "list dispatches", err)
			return
		}
		to, err := parseDate("to", q.Get("to"))
		if err != nil {
			writeError(w, "list dispatches", err)
			return
		}
		if from.IsZero() || to.IsZero() {
			writeError(w, "list dispatches", entities.NewValidationError("from", "from and to must both be given"))
			return
		}
		found, err := dispatches.GetByDateRange(from, to)
		if err != nil {
			writeError(w, "list dispatches", err)
			return
		}
		writeJSON(w, http.StatusOK, found)
		return
	}

	all, err := dispatches.GetAll()
	if err != nil {
		writeError(w, "list dispatches", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// GetDispatch returns a single dispatch.
func (h *Handler) GetDispatch(w http.ResponseWriter, r *http.Request) {
	dispatch, err := h.service.Ledgers().Dispatches.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "get dispatch", err)
		return
	}
	writeJSON(w, http.StatusOK, dispatch)
}

// ListBoxes returns every box, or those in the status given by ?status=, or
// those of ?roll=.
func (h *Handler) ListBoxes(w http.ResponseWriter, r *http.Request) {
	boxes := h.service.Ledgers().Boxes
	q := r.URL.Query()

	var (
		found []*entities.Box
		err   error
	)
	switch {
	case q.Get("roll") != "":
		found, err = boxes.GetByRoll(q.Get("roll"))
	case q.Get("status") != "":
		status, parseErr := entities.ParseBoxStatus(q.Get("status"))
		if parseErr != nil {
			writeError(w, "list boxes", entities.NewValidationError("status", parseErr.Error()))
			return
		}
		found, err = boxes.GetByStatus(status)
	default:
		found, err = boxes.GetAll()
	}
	if err != nil {
		writeError(w, "list boxes", err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// UpdateBoxStatus marks a box listed on a dispatch as dispatched.
func (h *Handler) UpdateBoxStatus(w http.ResponseWriter, r *http.Request) {
	var req boxStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	box, err := h.service.UpdateBoxStatus(r.Context(), chi.URLParam(r, "id"), entities.BoxStatus(req.Status))
	if err != nil {
		writeError(w, "update box status", err)
		return
	}
	writeJSON(w, http.StatusOK, box)
}
