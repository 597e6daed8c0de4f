package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// ScheduleRepo is the MySQL-backed ScheduleStore.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo constructs a ScheduleRepo with the given DB handle.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

const scheduleColumns = `id, date, appointment_time, dock, location_id, hbl, container,
	note, check_in_time, type, status, created_at, updated_at`

// List returns entries, date-filtered and ordered by appointment time when
// a date is given, otherwise all entries newest first.
func (r *ScheduleRepo) List(ctx context.Context, date string) ([]model.ScheduleEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+scheduleColumns+` FROM schedules WHERE date = ? ORDER BY appointment_time`, date)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+scheduleColumns+` FROM schedules ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleEntry
	for rows.Next() {
		e, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns one entry by id.
func (r *ScheduleRepo) Get(ctx context.Context, id string) (model.ScheduleEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id)
	e, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return model.ScheduleEntry{}, ErrNotFound
	}
	return e, err
}

// CreateBulk replaces all entries for the dates present in the input and
// inserts the new set inside one transaction.
func (r *ScheduleRepo) CreateBulk(ctx context.Context, entries []model.ScheduleEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, date := range distinctDates(entries) {
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE date = ?`, date); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	var b strings.Builder
	b.WriteString(`INSERT INTO schedules (` + scheduleColumns + `) VALUES `)
	args := make([]any, 0, len(entries)*13)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		args = append(args, e.ID, e.Date, e.AppointmentTime, e.Dock, e.Location,
			e.HBL, e.Container, e.Note, e.CheckInTime, e.Type, e.Status, now, now)
	}
	if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Update applies a partial patch via read-modify-write inside a transaction.
func (r *ScheduleRepo) Update(ctx context.Context, id string, patch model.SchedulePatch) (model.ScheduleEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules WHERE id = ? FOR UPDATE`, id)
	e, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return model.ScheduleEntry{}, ErrNotFound
	}
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE schedules SET date=?, appointment_time=?, dock=?, location_id=?, hbl=?,
		 container=?, note=?, check_in_time=?, type=?, status=?, updated_at=? WHERE id=?`,
		e.Date, e.AppointmentTime, e.Dock, e.Location, e.HBL,
		e.Container, e.Note, e.CheckInTime, e.Type, e.Status, e.UpdatedAt, id)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.ScheduleEntry{}, err
	}
	return e, nil
}

// Delete removes one entry.
func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
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

// DeleteByDate removes every entry for a date.
func (r *ScheduleRepo) DeleteByDate(ctx context.Context, date string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE date = ?`, date)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := row.Scan(&e.ID, &e.Date, &e.AppointmentTime, &e.Dock, &e.Location,
		&e.HBL, &e.Container, &e.Note, &e.CheckInTime, &e.Type, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func distinctDates(entries []model.ScheduleEntry) []string {
	seen := make(map[string]struct{}, 1)
	var out []string
	for _, e := range entries {
		if _, ok := seen[e.Date]; !ok {
			seen[e.Date] = struct{}{}
			out = append(out, e.Date)
		}
	}
	return out
}
