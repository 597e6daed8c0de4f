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

// OutboundStore is the persistence contract for outbound pickup schedules.
// Bulk creation uses the same replace-per-date semantics as inbound.
type OutboundStore interface {
	List(ctx context.Context, date string) ([]model.OutboundEntry, error)
	CreateBulk(ctx context.Context, entries []model.OutboundEntry) (int, error)
	Update(ctx context.Context, id string, patch model.OutboundPatch) (model.OutboundEntry, error)
	Delete(ctx context.Context, id string) error
}

// OutboundRepo is the MySQL-backed OutboundStore.
type OutboundRepo struct {
	db *sql.DB
}

// NewOutboundRepo constructs an OutboundRepo with the given DB handle.
func NewOutboundRepo(db *sql.DB) *OutboundRepo {
	return &OutboundRepo{db: db}
}

const outboundColumns = `id, date, appointment_time, carrier, reference, destination,
	note, created_at, updated_at`

func (r *OutboundRepo) List(ctx context.Context, date string) ([]model.OutboundEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+outboundColumns+` FROM outbound WHERE date = ? ORDER BY appointment_time`, date)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+outboundColumns+` FROM outbound ORDER BY date DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OutboundEntry
	for rows.Next() {
		var e model.OutboundEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.AppointmentTime, &e.Carrier, &e.Reference,
			&e.Destination, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *OutboundRepo) CreateBulk(ctx context.Context, entries []model.OutboundEntry) (int, error) {
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
		if _, err := tx.ExecContext(ctx, `DELETE FROM outbound WHERE date = ?`, date); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	var b strings.Builder
	b.WriteString(`INSERT INTO outbound (` + outboundColumns + `) VALUES `)
	args := make([]any, 0, len(entries)*9)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		args = append(args, e.ID, e.Date, e.AppointmentTime, e.Carrier, e.Reference,
			e.Destination, e.Note, now, now)
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (r *OutboundRepo) Update(ctx context.Context, id string, patch model.OutboundPatch) (model.OutboundEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.OutboundEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var e model.OutboundEntry
	err = tx.QueryRowContext(ctx,
		`SELECT `+outboundColumns+` FROM outbound WHERE id = ? FOR UPDATE`, id).
		Scan(&e.ID, &e.Date, &e.AppointmentTime, &e.Carrier, &e.Reference,
			&e.Destination, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.OutboundEntry{}, ErrNotFound
	}
	if err != nil {
		return model.OutboundEntry{}, err
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE outbound SET date=?, appointment_time=?, carrier=?, reference=?,
		 destination=?, note=?, updated_at=? WHERE id=?`,
		e.Date, e.AppointmentTime, e.Carrier, e.Reference,
		e.Destination, e.Note, e.UpdatedAt, id)
	if err != nil {
		return model.OutboundEntry{}, err
	}
	return e, tx.Commit()
}

func (r *OutboundRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM outbound WHERE id = ?`, id)
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

// MemoryOutboundStore is the in-memory OutboundStore.
type MemoryOutboundStore struct {
	mu      sync.RWMutex
	entries map[string]model.OutboundEntry
}

// NewMemoryOutboundStore returns an empty in-memory store.
func NewMemoryOutboundStore() *MemoryOutboundStore {
	return &MemoryOutboundStore{entries: make(map[string]model.OutboundEntry)}
}

func (s *MemoryOutboundStore) List(_ context.Context, date string) ([]model.OutboundEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.OutboundEntry
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

func (s *MemoryOutboundStore) CreateBulk(_ context.Context, entries []model.OutboundEntry) (int, error) {
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

func (s *MemoryOutboundStore) Update(_ context.Context, id string, patch model.OutboundPatch) (model.OutboundEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return model.OutboundEntry{}, ErrNotFound
	}
	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	s.entries[id] = e
	return e, nil
}

func (s *MemoryOutboundStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
