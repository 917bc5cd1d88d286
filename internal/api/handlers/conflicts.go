package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// ConflictHandler exposes the conflict detector.
type ConflictHandler struct {
	Shifts ports.ShiftRepository
	Logger *zap.Logger
}

func (h *ConflictHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ConflictCheckRequest
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

	conflicts, err := services.CheckConflicts(r.Context(), h.Shifts, req.CaregiverID, date, start, end)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	res := dto.ConflictCheckResponse{Conflicts: make([]dto.OccurrenceResponse, 0, len(conflicts))}
	for _, occ := range conflicts {
		res.Conflicts = append(res.Conflicts, occurrenceResponse(occ))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func occurrenceResponse(occ domain.ShiftOccurrence) dto.OccurrenceResponse {
	return dto.OccurrenceResponse{
		DefinitionID: occ.DefinitionID,
		CaregiverID:  occ.CaregiverID,
		ClientID:     occ.ClientID,
		Date:         occ.Date.Format(time.DateOnly),
		Start:        occ.Start.String(),
		End:          occ.End.String(),
		Notes:        occ.Notes,
	}
}
