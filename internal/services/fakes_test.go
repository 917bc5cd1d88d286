package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
)

type fakeShiftRepo struct {
	mu   sync.Mutex
	defs map[string]*domain.ShiftDefinition
}

func newFakeShiftRepo(defs ...*domain.ShiftDefinition) *fakeShiftRepo {
	r := &fakeShiftRepo{defs: make(map[string]*domain.ShiftDefinition)}
	for _, d := range defs {
		r.defs[d.ID] = d
	}
	return r
}

func (r *fakeShiftRepo) GetShift(_ context.Context, id string) (*domain.ShiftDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.defs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (r *fakeShiftRepo) ListActiveByCaregiver(_ context.Context, caregiverID string) ([]*domain.ShiftDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ShiftDefinition
	for _, d := range r.defs {
		if d.Active && d.CaregiverID == caregiverID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeShiftRepo) ListActive(_ context.Context) ([]*domain.ShiftDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ShiftDefinition
	for _, d := range r.defs {
		if d.Active {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeShiftRepo) CreateShift(_ context.Context, def *domain.ShiftDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *def
	r.defs[def.ID] = &cp
	return nil
}

func (r *fakeShiftRepo) ReassignShift(_ context.Context, id, newCaregiverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.defs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.CaregiverID = newCaregiverID
	return nil
}

func (r *fakeShiftRepo) DeleteShift(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.defs, id)
	return nil
}

type fakeCaregiverRepo struct {
	caregivers map[string]*domain.Caregiver
}

func newFakeCaregiverRepo(caregivers ...*domain.Caregiver) *fakeCaregiverRepo {
	r := &fakeCaregiverRepo{caregivers: make(map[string]*domain.Caregiver)}
	for _, c := range caregivers {
		r.caregivers[c.ID] = c
	}
	return r
}

func (r *fakeCaregiverRepo) GetCaregiver(_ context.Context, id string) (*domain.Caregiver, error) {
	c, ok := r.caregivers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCaregiverRepo) ListActiveCaregivers(_ context.Context) ([]*domain.Caregiver, error) {
	var out []*domain.Caregiver
	for _, c := range r.caregivers {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeClientRepo struct {
	clients map[string]*domain.Client
}

func newFakeClientRepo(clients ...*domain.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[string]*domain.Client)}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) GetClient(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeClientRepo) ListActiveClients(_ context.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func allWeek(start, end domain.TimeOfDay) [7]domain.AvailabilityWindow {
	var a [7]domain.AvailabilityWindow
	for i := range a {
		a[i] = domain.AvailabilityWindow{Available: true, Start: start, End: end}
	}
	return a
}

func mustTime(t string) domain.TimeOfDay {
	tod, err := domain.ParseTimeOfDay(t)
	if err != nil {
		panic(err)
	}
	return tod
}

func mustDate(d string) time.Time {
	date, err := domain.ParseDate(d)
	if err != nil {
		panic(err)
	}
	return date
}
