package repository

import (
	"context"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// ScheduleStore is the persistence contract for inbound schedule entries.
// Bulk creation replaces all existing entries for the affected dates
// (delete-then-insert, not merge), matching the import workflow where a
// re-uploaded spreadsheet supersedes the previous plan for that day.
type ScheduleStore interface {
	// List returns entries, optionally filtered by date. Date-filtered
	// results are ordered by appointment time, unfiltered results newest
	// first.
	List(ctx context.Context, date string) ([]model.ScheduleEntry, error)
	// Get returns one entry or ErrNotFound.
	Get(ctx context.Context, id string) (model.ScheduleEntry, error)
	// CreateBulk deletes existing entries for every date present in the
	// input, inserts the new set and returns the inserted count. IDs are
	// assigned by the store.
	CreateBulk(ctx context.Context, entries []model.ScheduleEntry) (int, error)
	// Update applies a field-level patch and returns the updated entry,
	// or ErrNotFound.
	Update(ctx context.Context, id string, patch model.SchedulePatch) (model.ScheduleEntry, error)
	// Delete removes one entry or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// DeleteByDate removes every entry for a date and returns the count.
	DeleteByDate(ctx context.Context, date string) (int, error)
}
