package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minsu-han/warehouse-inbound/internal/exceldate"
	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// MemoryScheduleStore is the in-memory ScheduleStore used when the service
// runs without a database. Mutations are serialized by a single mutex.
type MemoryScheduleStore struct {
	mu      sync.RWMutex
	entries map[string]model.ScheduleEntry
}

// NewMemoryScheduleStore returns an empty in-memory store.
func NewMemoryScheduleStore() *MemoryScheduleStore {
	return &MemoryScheduleStore{entries: make(map[string]model.ScheduleEntry)}
}

// List returns entries, date-filtered and appointment-time ordered when a
// date is given, otherwise every entry newest first.
func (s *MemoryScheduleStore) List(_ context.Context, date string) ([]model.ScheduleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ScheduleEntry
	for _, e := range s.entries {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	if date != "" {
		sort.Slice(out, func(i, j int) bool {
			return exceldate.ClockToMinutes(out[i].AppointmentTime) < exceldate.ClockToMinutes(out[j].AppointmentTime)
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out, nil
}

// Get returns one entry by id.
func (s *MemoryScheduleStore) Get(_ context.Context, id string) (model.ScheduleEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return model.ScheduleEntry{}, ErrNotFound
	}
	return e, nil
}

// CreateBulk replaces all entries for the dates present in the input.
func (s *MemoryScheduleStore) CreateBulk(_ context.Context, entries []model.ScheduleEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dates := make(map[string]struct{})
	for _, e := range entries {
		dates[e.Date] = struct{}{}
	}
	for id, e := range s.entries {
		if _, ok := dates[e.Date]; ok {
			delete(s.entries, id)
		}
	}

	now := time.Now().UTC()
	for _, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.CreatedAt = now
		e.UpdatedAt = now
		s.entries[e.ID] = e
	}
	return len(entries), nil
}

// Update applies a partial patch.
func (s *MemoryScheduleStore) Update(_ context.Context, id string, patch model.SchedulePatch) (model.ScheduleEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return model.ScheduleEntry{}, ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

// Delete removes one entry.
func (s *MemoryScheduleStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// DeleteByDate removes every entry for a date.
func (s *MemoryScheduleStore) DeleteByDate(_ context.Context, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.Date == date {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}
