package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// SuggestionHandler exposes the caregiver ranking engine.
type SuggestionHandler struct {
	Caregivers ports.CaregiverRepository
	Clients    ports.ClientRepository
	Shifts     ports.ShiftRepository
	Weights    services.RankWeights
	Logger     *zap.Logger
}

func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SuggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}
	start, err := parseTimeField("start", req.Start)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}
	end, err := parseTimeField("end", req.End)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	result, err := services.SuggestCaregivers(r.Context(),
		h.Caregivers, h.Clients, h.Shifts, h.Logger, h.Weights,
		req.ClientID, date, start, end)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	res := dto.SuggestionResponse{
		ReducedConfidence: result.ReducedConfidence,
		Candidates:        make([]dto.CandidateResponse, 0, len(result.Candidates)),
	}
	for _, c := range result.Candidates {
		res.Candidates = append(res.Candidates, dto.CandidateResponse{
			CaregiverID: c.CaregiverID,
			Name:        c.Name,
			Score:       c.Score,
			DistanceKm:  c.DistanceKm,
			WeeklyHours: c.WeeklyHours,
			Conflict:    c.Conflict,
			CertGaps:    c.CertGaps,
			OverHours:   c.OverHours,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
