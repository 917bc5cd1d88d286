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

// ShiftHandler exposes single-shift create, reassign, and delete.
type ShiftHandler struct {
	Shifts     ports.ShiftRepository
	Caregivers ports.CaregiverRepository
	Logger     *zap.Logger
}

func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodDelete:
		h.delete(w, r)
		return
	default:
		w.Header().Set("Allow", "POST, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CreateShiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	schedule, err := scheduleFromRequest(&req)
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

	def := &domain.ShiftDefinition{
		CaregiverID: req.CaregiverID,
		ClientID:    req.ClientID,
		Schedule:    schedule,
		Start:       start,
		End:         end,
		Notes:       req.Notes,
	}

	created, err := services.CreateShift(r.Context(), h.Shifts, def)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, shiftResponse(created))
}

func (h *ShiftHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ReassignShiftRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := services.ReassignShift(r.Context(), h.Shifts, h.Caregivers, req.ShiftID, req.CaregiverID)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "reassigned"})
}

func (h *ShiftHandler) delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := services.DeleteShift(r.Context(), h.Shifts, id); err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

func scheduleFromRequest(req *dto.CreateShiftRequest) (domain.ShiftSchedule, error) {
	switch {
	case req.Date != nil && req.Weekday != nil:
		return nil, &domain.ValidationError{Field: "date", Reason: "date and weekday are mutually exclusive"}
	case req.Date != nil:
		d, err := parseDateField("date", *req.Date)
		if err != nil {
			return nil, err
		}
		return domain.OneTime{Date: d}, nil
	case req.Weekday != nil:
		if *req.Weekday < 0 || *req.Weekday > 6 {
			return nil, &domain.ValidationError{Field: "weekday", Reason: "must be 0 (Sunday) through 6 (Saturday)"}
		}
		rec := domain.Recurring{Weekday: time.Weekday(*req.Weekday)}
		if req.EffectiveFrom != nil {
			from, err := parseDateField("effective_from", *req.EffectiveFrom)
			if err != nil {
				return nil, err
			}
			rec.EffectiveFrom = &from
		}
		return rec, nil
	default:
		return nil, &domain.ValidationError{Field: "date", Reason: "either date (one-time) or weekday (recurring) is required"}
	}
}

func shiftResponse(def *domain.ShiftDefinition) dto.ShiftResponse {
	res := dto.ShiftResponse{
		ID:          def.ID,
		CaregiverID: def.CaregiverID,
		ClientID:    def.ClientID,
		Start:       def.Start.String(),
		End:         def.End.String(),
		Notes:       def.Notes,
		Active:      def.Active,
	}

	switch s := def.Schedule.(type) {
	case domain.OneTime:
		res.Kind = "one_time"
		d := s.Date.Format(time.DateOnly)
		res.Date = &d
	case domain.Recurring:
		res.Kind = "recurring"
		wd := int(s.Weekday)
		res.Weekday = &wd
		if s.EffectiveFrom != nil {
			from := s.EffectiveFrom.Format(time.DateOnly)
			res.EffectiveFrom = &from
		}
	}

	return res
}
