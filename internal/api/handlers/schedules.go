package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/services"
)

// ScheduleHandler exposes bulk recurring schedule generation.
type ScheduleHandler struct {
	Shifts ports.ShiftRepository
	Logger *zap.Logger
}

func (h *ScheduleHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BulkCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	template := make([]services.TemplateEntry, 0, len(req.Template))
	for i, entry := range req.Template {
		start, err := parseTimeField(fmt.Sprintf("template[%d].start", i), entry.Start)
		if err != nil {
			respondServiceError(w, r, h.Logger, err)
			return
		}
		end, err := parseTimeField(fmt.Sprintf("template[%d].end", i), entry.End)
		if err != nil {
			respondServiceError(w, r, h.Logger, err)
			return
		}
		template = append(template, services.TemplateEntry{
			Weekday: time.Weekday(entry.Weekday),
			Start:   start,
			End:     end,
		})
	}

	result, err := services.BulkCreate(r.Context(), h.Shifts, h.Logger,
		req.CaregiverID, req.ClientID, template, startDate, req.Weeks, req.Notes)
	if err != nil {
		respondServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.BulkCreateResponse{
		Created:          result.Created,
		SkippedConflicts: result.SkippedConflicts,
	})
}
