package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/fuelplanner/internal/application/planning"
	"github.com/andrescamacho/fuelplanner/internal/domain/optimizer"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// Handler serves the plan endpoint.
type Handler struct {
	orchestrator *planning.Orchestrator
	validate     *validator.Validate
}

func NewHandler(orchestrator *planning.Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator, validate: validator.New()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "validation_error", "method not allowed")
		return
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(r.Body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "failed to read request body")
		return
	}

	var req PlanRequest
	decoder := json.NewDecoder(bytes.NewReader(body.Bytes()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "malformed JSON body: "+err.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	tag := optimizer.TagBaseline
	if req.Optimizer == string(optimizer.TagOrtools) {
		tag = optimizer.TagOrtools
	}

	result, err := h.orchestrator.Plan(r.Context(), planning.Request{
		StartLocation:       req.StartLocation,
		FinishLocation:      req.FinishLocation,
		StartFuelPercent:    req.StartFuelPercent,
		CorridorMiles:       req.CorridorMiles,
		VehicleMPG:          req.VehicleMPG,
		TankCapacityGallons: req.TankCapacityGallons,
		MaxRangeMiles:       req.MaxRangeMiles,
		Optimizer:           tag,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlanResponse(result))
}

// writeDomainError maps a shared.ErrorKind to the HTTP status/code pairs
// fixed by the specification.
func writeDomainError(w http.ResponseWriter, err error) {
	var domainErr *shared.Error
	message := err.Error()
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch shared.KindOf(err) {
	case shared.ErrInvalidLocation:
		writeError(w, http.StatusBadRequest, "invalid_location", message)
	case shared.ErrNoFeasibleFuelPlan:
		writeError(w, http.StatusUnprocessableEntity, "no_feasible_plan", message)
	case shared.ErrNoRouteFound:
		writeError(w, http.StatusBadGateway, "no_route", message)
	case shared.ErrValidation:
		writeError(w, http.StatusBadRequest, "validation_error", message)
	default:
		writeError(w, http.StatusBadGateway, "upstream_error", message)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
