package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/api/dto"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

type stubShiftRepo struct {
	defs []*domain.ShiftDefinition
}

func (r *stubShiftRepo) GetShift(_ context.Context, id string) (*domain.ShiftDefinition, error) {
	for _, d := range r.defs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubShiftRepo) ListActiveByCaregiver(_ context.Context, caregiverID string) ([]*domain.ShiftDefinition, error) {
	var out []*domain.ShiftDefinition
	for _, d := range r.defs {
		if d.Active && d.CaregiverID == caregiverID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubShiftRepo) ListActive(_ context.Context) ([]*domain.ShiftDefinition, error) {
	return r.defs, nil
}

func (r *stubShiftRepo) CreateShift(_ context.Context, def *domain.ShiftDefinition) error {
	r.defs = append(r.defs, def)
	return nil
}

func (r *stubShiftRepo) ReassignShift(_ context.Context, id, newCaregiverID string) error {
	for _, d := range r.defs {
		if d.ID == id {
			d.CaregiverID = newCaregiverID
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubShiftRepo) DeleteShift(_ context.Context, id string) error {
	for i, d := range r.defs {
		if d.ID == id {
			r.defs = append(r.defs[:i], r.defs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func mustParseTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestConflictCheckHandler(t *testing.T) {
	effective := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	h := &ConflictHandler{
		Shifts: &stubShiftRepo{defs: []*domain.ShiftDefinition{{
			ID:          "shift-mon",
			CaregiverID: "cg-1",
			ClientID:    "cl-1",
			Schedule:    domain.Recurring{Weekday: time.Monday, EffectiveFrom: &effective},
			Start:       mustParseTime(t, "08:00"),
			End:         mustParseTime(t, "10:00"),
			Active:      true,
		}}},
		Logger: zap.NewNop(),
	}

	body := `{"caregiver_id":"cg-1","date":"2025-06-02","start":"09:00","end":"11:00"}`
	req := httptest.NewRequest(http.MethodPost, "/conflicts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.ConflictCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "shift-mon", res.Conflicts[0].DefinitionID)
	assert.Equal(t, "2025-06-02", res.Conflicts[0].Date)
	assert.Equal(t, "08:00", res.Conflicts[0].Start)
}

func TestConflictCheckHandlerNoConflicts(t *testing.T) {
	h := &ConflictHandler{Shifts: &stubShiftRepo{}, Logger: zap.NewNop()}

	body := `{"caregiver_id":"cg-1","date":"2025-06-02","start":"09:00","end":"11:00"}`
	req := httptest.NewRequest(http.MethodPost, "/conflicts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Empty list, not null: consumers iterate without nil checks.
	assert.JSONEq(t, `{"conflicts":[]}`, rec.Body.String())
}

func TestConflictCheckHandlerRejectsBadInput(t *testing.T) {
	h := &ConflictHandler{Shifts: &stubShiftRepo{}, Logger: zap.NewNop()}

	cases := map[string]string{
		"malformed date":  `{"caregiver_id":"cg-1","date":"06/02/2025","start":"09:00","end":"11:00"}`,
		"malformed time":  `{"caregiver_id":"cg-1","date":"2025-06-02","start":"9am","end":"11:00"}`,
		"inverted window": `{"caregiver_id":"cg-1","date":"2025-06-02","start":"11:00","end":"09:00"}`,
		"unknown field":   `{"caregiver_id":"cg-1","date":"2025-06-02","start":"09:00","end":"11:00","x":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/conflicts", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.Check(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestConflictCheckHandlerMethodNotAllowed(t *testing.T) {
	h := &ConflictHandler{Shifts: &stubShiftRepo{}, Logger: zap.NewNop()}

	req := httptest.NewRequest(http.MethodGet, "/conflicts", nil)
	rec := httptest.NewRecorder()

	h.Check(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}
