package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

func TestBulkCreateCleanCalendar(t *testing.T) {
	repo := newFakeShiftRepo()
	template := []TemplateEntry{
		{Weekday: time.Monday, Start: mustTime("08:00"), End: mustTime("10:00")},
		{Weekday: time.Wednesday, Start: mustTime("08:00"), End: mustTime("10:00")},
		{Weekday: time.Friday, Start: mustTime("13:00"), End: mustTime("15:00")},
	}

	result, err := BulkCreate(context.Background(), repo, zap.NewNop(),
		"cg-1", "cl-1", template, mustDate("2025-06-02"), 4, "standing visits")

	require.NoError(t, err)
	assert.Equal(t, 12, result.Created)
	assert.Equal(t, 0, result.SkippedConflicts)

	defs, err := repo.ListActiveByCaregiver(context.Background(), "cg-1")
	require.NoError(t, err)
	require.Len(t, defs, 12)
	for _, def := range defs {
		ot, ok := def.Schedule.(domain.OneTime)
		require.True(t, ok, "bulk-created shifts are concrete one-time days")
		wd := ot.Date.Weekday()
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, wd)
		assert.Equal(t, "standing visits", def.Notes)
		assert.True(t, def.Active)
	}
}

func TestBulkCreateSkipsConflictingDays(t *testing.T) {
	// A standing Monday shift collides with every Monday of the template.
	repo := newFakeShiftRepo(&domain.ShiftDefinition{
		ID:          "standing",
		CaregiverID: "cg-1",
		ClientID:    "cl-other",
		Schedule:    domain.Recurring{Weekday: time.Monday},
		Start:       mustTime("08:00"),
		End:         mustTime("10:00"),
		Active:      true,
	})
	template := []TemplateEntry{
		{Weekday: time.Monday, Start: mustTime("09:00"), End: mustTime("11:00")},
		{Weekday: time.Tuesday, Start: mustTime("09:00"), End: mustTime("11:00")},
	}

	result, err := BulkCreate(context.Background(), repo, zap.NewNop(),
		"cg-1", "cl-1", template, mustDate("2025-06-02"), 3, "")

	require.NoError(t, err)
	assert.Equal(t, 3, result.Created) // Tuesdays only
	assert.Equal(t, 3, result.SkippedConflicts)
}

func TestBulkCreateMidWeekStartRollsForward(t *testing.T) {
	repo := newFakeShiftRepo()
	template := []TemplateEntry{
		{Weekday: time.Monday, Start: mustTime("08:00"), End: mustTime("10:00")},
	}

	// Start on a Wednesday; the first Monday is the following week.
	result, err := BulkCreate(context.Background(), repo, zap.NewNop(),
		"cg-1", "cl-1", template, mustDate("2025-06-04"), 1, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	defs, err := repo.ListActiveByCaregiver(context.Background(), "cg-1")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, mustDate("2025-06-09"), defs[0].Schedule.(domain.OneTime).Date)
}

func TestBulkCreateValidation(t *testing.T) {
	repo := newFakeShiftRepo()
	template := []TemplateEntry{
		{Weekday: time.Monday, Start: mustTime("08:00"), End: mustTime("10:00")},
	}
	start := mustDate("2025-06-02")

	for name, call := range map[string]func() error{
		"zero weeks": func() error {
			_, err := BulkCreate(context.Background(), repo, zap.NewNop(), "cg-1", "cl-1", template, start, 0, "")
			return err
		},
		"too many weeks": func() error {
			_, err := BulkCreate(context.Background(), repo, zap.NewNop(), "cg-1", "cl-1", template, start, 13, "")
			return err
		},
		"empty template": func() error {
			_, err := BulkCreate(context.Background(), repo, zap.NewNop(), "cg-1", "cl-1", nil, start, 4, "")
			return err
		},
		"missing caregiver": func() error {
			_, err := BulkCreate(context.Background(), repo, zap.NewNop(), "", "cl-1", template, start, 4, "")
			return err
		},
		"inverted entry times": func() error {
			bad := []TemplateEntry{{Weekday: time.Monday, Start: mustTime("10:00"), End: mustTime("10:00")}}
			_, err := BulkCreate(context.Background(), repo, zap.NewNop(), "cg-1", "cl-1", bad, start, 4, "")
			return err
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, domain.IsValidation(call()))
		})
	}

	// Nothing may be written on validation failure.
	defs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, defs)
}
