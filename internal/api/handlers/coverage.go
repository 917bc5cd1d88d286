package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// CoverageHandler exposes the weekly coverage aggregator.
type CoverageHandler struct {
	Caregivers ports.CaregiverRepository
	Clients    ports.ClientRepository
	Shifts     ports.ShiftRepository
	Logger     *zap.Logger
}

func (h *CoverageHandler) Week(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	weekStart, err := parseDateField("week_start", r.URL.Query().Get("week_start"))
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	report, err := services.WeekCoverage(r.Context(), h.Caregivers, h.Clients, h.Shifts, weekStart)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	res := dto.WeekCoverageResponse{
		WeekStart:  report.WeekStart.Format(time.DateOnly),
		Caregivers: make([]dto.CaregiverUtilizationResponse, 0, len(report.Caregivers)),
		Clients:    make([]dto.ClientCoverageResponse, 0, len(report.Clients)),
	}
	for _, cg := range report.Caregivers {
		res.Caregivers = append(res.Caregivers, dto.CaregiverUtilizationResponse{
			CaregiverID:        cg.CaregiverID,
			Name:               cg.Name,
			ScheduledHours:     cg.ScheduledHours,
			MaxWeeklyHours:     cg.MaxWeeklyHours,
			UtilizationPercent: cg.UtilizationPercent,
			ShiftCount:         cg.ShiftCount,
		})
	}
	for _, cl := range report.Clients {
		res.Clients = append(res.Clients, dto.ClientCoverageResponse{
			ClientID:        cl.ClientID,
			Name:            cl.Name,
			ScheduledUnits:  cl.ScheduledUnits,
			AuthorizedUnits: cl.AuthorizedUnits,
			ShortfallUnits:  cl.ShortfallUnits,
			CoveragePercent: cl.CoveragePercent,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
