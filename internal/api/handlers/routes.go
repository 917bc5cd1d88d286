package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// RouteHandler exposes route optimization and explicit plan persistence.
type RouteHandler struct {
	Caregivers      ports.CaregiverRepository
	Clients         ports.ClientRepository
	Plans           ports.RoutePlanRepository
	Provider        ports.DistanceProvider
	Fallback        ports.DistanceProvider
	ProviderTimeout time.Duration
	Logger          *zap.Logger
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	plan, err := h.computePlan(r, &req)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, routePlanResponse(plan, ""))
}

// Save recomputes the plan server-side before persisting so stored mileage
// never depends on client-supplied numbers.
func (h *RouteHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SaveRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status := domain.RoutePlanStatus(req.Status)
	if status != domain.RoutePlanDraft && status != domain.RoutePlanPublished {
		respondServiceError(w, r, h.Logger, &domain.ValidationError{
			Field: "status", Reason: "must be draft or published",
		})
		return
	}

	plan, err := h.computePlan(r, &req.OptimizeRouteRequest)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	plan.ID = uuid.NewString()
	if err := h.Plans.SaveRoutePlan(r.Context(), plan, status, time.Now()); err != nil {
		respondServiceError(w, r, h.Logger, fmt.Errorf("save route plan: %w", err))
		return
	}

	writeJSON(w, r, http.StatusCreated, routePlanResponse(plan, status))
}

func (h *RouteHandler) computePlan(r *http.Request, req *dto.OptimizeRouteRequest) (*domain.RoutePlan, error) {
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := parseTimeField("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}

	stops := make([]domain.StopRequest, 0, len(req.Stops))
	for i, s := range req.Stops {
		stop := domain.StopRequest{ClientID: s.ClientID, ServiceUnits: s.ServiceUnits}
		if s.FixedStart != nil {
			t, err := parseTimeField(fmt.Sprintf("stops[%d].fixed_start", i), *s.FixedStart)
			if err != nil {
				return nil, err
			}
			stop.FixedStart = &t
		}
		if s.FixedEnd != nil {
			t, err := parseTimeField(fmt.Sprintf("stops[%d].fixed_end", i), *s.FixedEnd)
			if err != nil {
				return nil, err
			}
			stop.FixedEnd = &t
		}
		stops = append(stops, stop)
	}

	deps := services.RouteDeps{
		Caregivers:      h.Caregivers,
		Clients:         h.Clients,
		Provider:        h.Provider,
		Fallback:        h.Fallback,
		ProviderTimeout: h.ProviderTimeout,
		Logger:          h.Logger,
	}

	return services.OptimizeRoute(r.Context(), deps, services.RouteRequest{
		CaregiverID: req.CaregiverID,
		Date:        date,
		StartTime:   startTime,
		Stops:       stops,
		FixedOrder:  req.FixedOrder,
	})
}

func routePlanResponse(plan *domain.RoutePlan, status domain.RoutePlanStatus) dto.RoutePlanResponse {
	stops := make([]dto.RouteStopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.RouteStopResponse{
			ClientID:       s.ClientID,
			ClientName:     s.ClientName,
			ServiceUnits:   s.ServiceUnits,
			Arrival:        s.Arrival,
			Departure:      s.Departure,
			IdleMinutes:    s.IdleMinutes,
			DistanceMeters: s.DistanceMeters,
			DriveSeconds:   s.DriveSeconds,
		})
	}

	return dto.RoutePlanResponse{
		ID:                   plan.ID,
		CaregiverID:          plan.CaregiverID,
		Date:                 plan.Date.Format(time.DateOnly),
		StartAt:              plan.StartAt,
		Stops:                stops,
		ReturnDistanceMeters: plan.ReturnDistanceMeters,
		ReturnDriveSeconds:   plan.ReturnDriveSeconds,
		TotalDistanceMeters:  plan.TotalDistanceMeters,
		TotalDriveSeconds:    plan.TotalDriveSeconds,
		TotalServiceMinutes:  plan.TotalServiceMinutes,
		EndOfDay:             plan.EndOfDay,
		EstimateBased:        plan.EstimateBased,
		Status:               string(status),
	}
}
