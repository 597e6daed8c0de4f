package repository

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// TimesheetStore is the persistence contract for timesheet entries.
// Unlike schedules, timesheets are created one at a time.
type TimesheetStore interface {
	List(ctx context.Context, date string) ([]model.TimesheetEntry, error)
	Create(ctx context.Context, e model.TimesheetEntry) (model.TimesheetEntry, error)
	Update(ctx context.Context, id string, patch model.TimesheetPatch) (model.TimesheetEntry, error)
	Delete(ctx context.Context, id string) error
}

// TimesheetRepo is the MySQL-backed TimesheetStore.
type TimesheetRepo struct {
	db *sql.DB
}

// NewTimesheetRepo constructs a TimesheetRepo with the given DB handle.
func NewTimesheetRepo(db *sql.DB) *TimesheetRepo {
	return &TimesheetRepo{db: db}
}

const timesheetColumns = `id, date, employee_name, check_in_time, check_out_time,
	location, total_hours, created_at, updated_at`

func (r *TimesheetRepo) List(ctx context.Context, date string) ([]model.TimesheetEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+timesheetColumns+` FROM timesheets WHERE date = ? ORDER BY created_at DESC`, date)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+timesheetColumns+` FROM timesheets ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimesheetEntry
	for rows.Next() {
		var e model.TimesheetEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.EmployeeName, &e.CheckInTime, &e.CheckOutTime,
			&e.Location, &e.TotalHours, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *TimesheetRepo) Create(ctx context.Context, e model.TimesheetEntry) (model.TimesheetEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timesheets (`+timesheetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.EmployeeName, e.CheckInTime, e.CheckOutTime,
		e.Location, e.TotalHours, e.CreatedAt, e.UpdatedAt)
	return e, err
}

func (r *TimesheetRepo) Update(ctx context.Context, id string, patch model.TimesheetPatch) (model.TimesheetEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.TimesheetEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var e model.TimesheetEntry
	err = tx.QueryRowContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE id = ? FOR UPDATE`, id).
		Scan(&e.ID, &e.Date, &e.EmployeeName, &e.CheckInTime, &e.CheckOutTime,
			&e.Location, &e.TotalHours, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.TimesheetEntry{}, ErrNotFound
	}
	if err != nil {
		return model.TimesheetEntry{}, err
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE timesheets SET date=?, employee_name=?, check_in_time=?, check_out_time=?,
		 location=?, total_hours=?, updated_at=? WHERE id=?`,
		e.Date, e.EmployeeName, e.CheckInTime, e.CheckOutTime,
		e.Location, e.TotalHours, e.UpdatedAt, id)
	if err != nil {
		return model.TimesheetEntry{}, err
	}
	return e, tx.Commit()
}

func (r *TimesheetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
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

// MemoryTimesheetStore is the in-memory TimesheetStore.
type MemoryTimesheetStore struct {
	mu      sync.RWMutex
	entries map[string]model.TimesheetEntry
}

// NewMemoryTimesheetStore returns an empty in-memory store.
func NewMemoryTimesheetStore() *MemoryTimesheetStore {
	return &MemoryTimesheetStore{entries: make(map[string]model.TimesheetEntry)}
}

func (s *MemoryTimesheetStore) List(_ context.Context, date string) ([]model.TimesheetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.TimesheetEntry
	for _, e := range s.entries {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryTimesheetStore) Create(_ context.Context, e model.TimesheetEntry) (model.TimesheetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	s.entries[e.ID] = e
	return e, nil
}

func (s *MemoryTimesheetStore) Update(_ context.Context, id string, patch model.TimesheetPatch) (model.TimesheetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return model.TimesheetEntry{}, ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

func (s *MemoryTimesheetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
