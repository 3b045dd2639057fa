package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/shiftpay-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	shifts    map[engine.ShiftID]engine.Shift
	jobs      map[engine.JobID]engine.JobConfig
	holidays  map[engine.Date]struct{}
	vacations []engine.VacationPeriod
}

func NewMemory() *Memory {
	return &Memory{
		shifts:   make(map[engine.ShiftID]engine.Shift),
		jobs:     make(map[engine.JobID]engine.JobConfig),
		holidays: make(map[engine.Date]struct{}),
	}
}

func (m *Memory) SaveShift(_ context.Context, s engine.Shift) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, id engine.ShiftID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *Memory) Shifts(_ context.Context) ([]engine.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedShiftsLocked(func(engine.Shift) bool { return true }), nil
}

func (m *Memory) ShiftsInRange(_ context.Context, from, to engine.Date) ([]engine.Shift, error) {
	period := engine.Period{Start: from, End: to}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedShiftsLocked(func(s engine.Shift) bool { return period.Contains(s.Date) }), nil
}

func (m *Memory) sortedShiftsLocked(keep func(engine.Shift) bool) []engine.Shift {
	result := make([]engine.Shift, 0, len(m.shifts))
	for _, s := range m.shifts {
		if keep(s) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (m *Memory) SaveJob(_ context.Context, j engine.JobConfig) error {
	if err := j.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
	return nil
}

func (m *Memory) Jobs(_ context.Context) (map[engine.JobID]engine.JobConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make(map[engine.JobID]engine.JobConfig, len(m.jobs))
	for id, j := range m.jobs {
		jobs[id] = j
	}
	return jobs, nil
}

func (m *Memory) SaveHoliday(_ context.Context, d engine.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holidays[d] = struct{}{}
	return nil
}

func (m *Memory) DeleteHoliday(_ context.Context, d engine.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.holidays[d]; !ok {
		return ErrNotFound
	}
	delete(m.holidays, d)
	return nil
}

func (m *Memory) Holidays(_ context.Context) ([]engine.Date, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]engine.Date, 0, len(m.holidays))
	for d := range m.holidays {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result, nil
}

func (m *Memory) SaveVacation(_ context.Context, v engine.VacationPeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacations = append(m.vacations, v)
	return nil
}

func (m *Memory) Vacations(_ context.Context) ([]engine.VacationPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]engine.VacationPeriod, len(m.vacations))
	copy(result, m.vacations)
	return result, nil
}

func (m *Memory) Close() error { return nil }
