// Package api exposes the workflow service over HTTP for the shop-floor front end.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/KJ21-ENG/natraj-metallic/pkg/application/services/workflow"
	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// Handler serves the ledger command and query endpoints.
type Handler struct {
	service *workflow.WorkflowService
}

// NewHandler creates a new Handler.
func NewHandler(service *workflow.WorkflowService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers every ledger endpoint on the given Chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/lots", func(r chi.Router) {
		r.Get("/", h.ListLots)
		r.Post("/", h.CreateLot)
		r.Get("/next-number", h.NextLotNumber)
		r.Get("/{lot}/rolls", h.RollsByLot)
		r.Delete("/{lot}", h.DeleteLot)
	})
	r.Route("/rolls", func(r chi.Router) {
		r.Get("/", h.ListRolls)
		r.Post("/{id}/issue", h.IssueToMachine)
		r.Post("/{id}/receive", h.ReceiveBoxes)
	})
	r.Get("/assignments", h.ListAssignments)
	r.Route("/boxes", func(r chi.Router) {
		r.Get("/", h.ListBoxes)
		r.Put("/{id}/status", h.UpdateBoxStatus)
	})
	r.Route("/dispatches", func(r chi.Router) {
		r.Get("/", h.ListDispatches)
		r.Post("/", h.CreateDispatch)
		r.Get("/{id}", h.GetDispatch)
	})
	r.Route("/bobbins", func(r chi.Router) {
		r.Get("/", h.ListBobbins)
		r.Post("/", h.IntakeBobbins)
		r.Delete("/lots/{lot}", h.DeleteBobbinsByLot)
	})
	r.Route("/reference", func(r chi.Router) {
		r.Get("/customers", h.ListCustomers)
		r.Post("/customers", h.AddCustomer)
		r.Get("/bobbin-types", h.ListBobbinTypes)
		r.Post("/bobbin-types", h.AddBobbinType)
		r.Get("/box-types", h.ListBoxTypes)
		r.Post("/box-types", h.AddBoxType)
		r.Get("/machines", h.ListMachines)
		r.Post("/machines", h.AddMachine)
	})
	r.Get("/scale/gross-weight", h.CaptureGrossWeight)
	r.Get("/stock", h.StockSummary)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// writeError maps a ledger error onto its HTTP status.
func writeError(w http.ResponseWriter, action string, err error) {
	var over *entities.OverReceiptError
	if errors.As(err, &over) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":               err.Error(),
			"roll_id":             over.RollID,
			"initial_weight":      over.InitialWeight,
			"previously_received": over.PreviouslyReceived,
			"current_received":    over.CurrentReceived,
			"pending":             over.Pending,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entities.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidState), errors.Is(err, entities.ErrInsufficientStock):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s: %v", action, err)
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseDate accepts an empty string as "not given".
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return time.Time{}, entities.NewValidationError(field, "expected YYYY-MM-DD, got "+s)
	}
	return t, nil
}
