package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/handlers"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// Deps are the wired adapters the API composes. Provider may be nil (no
// routing provider configured); Fallback must not be.
type Deps struct {
	Caregivers      ports.CaregiverRepository
	Clients         ports.ClientRepository
	Shifts          ports.ShiftRepository
	Plans           ports.RoutePlanRepository
	Provider        ports.DistanceProvider
	Fallback        ports.DistanceProvider
	ProviderTimeout time.Duration
	Weights         services.RankWeights
	Logger          *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	conflicts := &handlers.ConflictHandler{Shifts: deps.Shifts, Logger: deps.Logger}
	suggestions := &handlers.SuggestionHandler{
		Caregivers: deps.Caregivers,
		Clients:    deps.Clients,
		Shifts:     deps.Shifts,
		Weights:    deps.Weights,
		Logger:     deps.Logger,
	}
	schedules := &handlers.ScheduleHandler{Shifts: deps.Shifts, Logger: deps.Logger}
	shifts := &handlers.ShiftHandler{Shifts: deps.Shifts, Caregivers: deps.Caregivers, Logger: deps.Logger}
	routes := &handlers.RouteHandler{
		Caregivers:      deps.Caregivers,
		Clients:         deps.Clients,
		Plans:           deps.Plans,
		Provider:        deps.Provider,
		Fallback:        deps.Fallback,
		ProviderTimeout: deps.ProviderTimeout,
		Logger:          deps.Logger,
	}
	coverage := &handlers.CoverageHandler{
		Caregivers: deps.Caregivers,
		Clients:    deps.Clients,
		Shifts:     deps.Shifts,
		Logger:     deps.Logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/conflicts", conflicts.Check)
	mux.HandleFunc("/suggestions", suggestions.Suggest)
	mux.HandleFunc("/schedules/bulk", schedules.BulkCreate)
	mux.HandleFunc("/shifts", shifts.Create)
	mux.HandleFunc("/shifts/reassign", shifts.Reassign)
	mux.HandleFunc("/routes/optimize", routes.Optimize)
	mux.HandleFunc("/routes", routes.Save)
	mux.HandleFunc("/coverage", coverage.Week)

	return loggingMiddleware(deps.Logger, mux)
}
