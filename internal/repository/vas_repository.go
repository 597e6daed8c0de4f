package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minsu-han/warehouse-inbound/internal/exceldate"
	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// VASStore is the persistence contract for value-added-service schedules.
type VASStore interface {
	List(ctx context.Context, date string) ([]model.VASEntry, error)
	CreateBulk(ctx context.Context, entries []model.VASEntry) (int, error)
	Update(ctx context.Context, id string, patch model.VASPatch) (model.VASEntry, error)
	Delete(ctx context.Context, id string) error
}

// VASRepo is the MySQL-backed VASStore.
type VASRepo struct {
	db *sql.DB
}

// NewVASRepo constructs a VASRepo with the given DB handle.
func NewVASRepo(db *sql.DB) *VASRepo {
	return &VASRepo{db: db}
}

const vasColumns = `id, date, appointment_time, client, service_type, quantity,
	note, created_at, updated_at`

func (r *VASRepo) List(ctx context.Context, date string) ([]model.VASEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+vasColumns+` FROM vas WHERE date = ? ORDER BY appointment_time`, date)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+vasColumns+` FROM vas ORDER BY date DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VASEntry
	for rows.Next() {
		var e model.VASEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.AppointmentTime, &e.Client, &e.ServiceType,
			&e.Quantity, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *VASRepo) CreateBulk(ctx context.Context, entries []model.VASEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	dates := make(map[string]struct{})
	for _, e := range entries {
		dates[e.Date] = struct{}{}
	}
	for date := range dates {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vas WHERE date = ?`, date); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	var b strings.Builder
	b.WriteString(`INSERT INTO vas (` + vasColumns + `) VALUES `)
	args := make([]any, 0, len(entries)*9)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		args = append(args, e.ID, e.Date, e.AppointmentTime, e.Client, e.ServiceType,
			e.Quantity, e.Note, now, now)
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (r *VASRepo) Update(ctx context.Context, id string, patch model.VASPatch) (model.VASEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.VASEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var e model.VASEntry
	err = tx.QueryRowContext(ctx,
		`SELECT `+vasColumns+` FROM vas WHERE id = ? FOR UPDATE`, id).
		Scan(&e.ID, &e.Date, &e.AppointmentTime, &e.Client, &e.ServiceType,
			&e.Quantity, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.VASEntry{}, ErrNotFound
	}
	if err != nil {
		return model.VASEntry{}, err
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE vas SET date=?, appointment_time=?, client=?, service_type=?,
		 quantity=?, note=?, updated_at=? WHERE id=?`,
		e.Date, e.AppointmentTime, e.Client, e.ServiceType,
		e.Quantity, e.Note, e.UpdatedAt, id)
	if err != nil {
		return model.VASEntry{}, err
	}
	return e, tx.Commit()
}

func (r *VASRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryVASStore is the in-memory VASStore.
type MemoryVASStore struct {
	mu      sync.RWMutex
	entries map[string]model.VASEntry
}

// NewMemoryVASStore returns an empty in-memory store.
func NewMemoryVASStore() *MemoryVASStore {
	return &MemoryVASStore{entries: make(map[string]model.VASEntry)}
}

func (s *MemoryVASStore) List(_ context.Context, date string) ([]model.VASEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.VASEntry
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
		sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	}
	return out, nil
}

func (s *MemoryVASStore) CreateBulk(_ context.Context, entries []model.VASEntry) (int, error) {
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
		e.CreatedAt, e.UpdatedAt = now, now
		s.entries[e.ID] = e
	}
	return len(entries), nil
}

func (s *MemoryVASStore) Update(_ context.Context, id string, patch model.VASPatch) (model.VASEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return model.VASEntry{}, ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

func (s *MemoryVASStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
