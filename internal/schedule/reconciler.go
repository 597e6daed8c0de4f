package schedule

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/ledger"
	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

// Assignment errors. Handlers map these onto 409/422 responses.
var (
	// ErrDockUnavailable means the requested dock is occupied by another
	// entry or marked disabled on the dock status record.
	ErrDockUnavailable = errors.New("dock unavailable")
	// ErrNotCheckedIn means the entry has no check-in time; an entry that
	// has not checked in is not eligible for dock or location assignment.
	ErrNotCheckedIn = errors.New("entry not checked in")
	// ErrNoDock means a location change was requested before a dock was
	// assigned.
	ErrNoDock = errors.New("entry holds no dock")
	// ErrUnknownDock means the requested number names no physical door.
	ErrUnknownDock = errors.New("no such dock")
)

// Reconciler enforces the at-most-one-assignment invariants between
// schedule entries, dock doors and the location ledger.
//
// All mutations that touch those invariants run under one mutex: the
// source system serialized them behind a single user's UI, so a
// multi-client service needs explicit mutual exclusion to keep two
// requests from racing onto the same dock or slot.
type Reconciler struct {
	store  repository.ScheduleStore
	ledger *ledger.Ledger
	log    zerolog.Logger

	mu chan struct{} // 1-slot semaphore; allows ctx-aware acquisition
}

// NewReconciler wires the reconciler to its schedule store and ledger.
func NewReconciler(store repository.ScheduleStore, led *ledger.Ledger, log zerolog.Logger) *Reconciler {
	r := &Reconciler{
		store:  store,
		ledger: led,
		log:    log.With().Str("component", "reconciler").Logger(),
		mu:     make(chan struct{}, 1),
	}
	return r
}

func (r *Reconciler) lock(ctx context.Context) error {
	select {
	case r.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Reconciler) unlock() { <-r.mu }

// CheckIn records a driver arrival clock against an entry, moving it from
// NoCheckIn to CheckedInNoDock.
func (r *Reconciler) CheckIn(ctx context.Context, entryID, clock string) (model.ScheduleEntry, error) {
	if err := r.lock(ctx); err != nil {
		return model.ScheduleEntry{}, err
	}
	defer r.unlock()

	return r.store.Update(ctx, entryID, model.SchedulePatch{CheckInTime: &clock})
}

// CancelCheckIn reverses a check-in. Policy: cancelling restores the
// NoCheckIn state fully — the check-in time is cleared, any held dock is
// released and the location resets to stage, freeing the slot when no
// other entry still references it. Docks are therefore only ever held by
// checked-in entries.
func (r *Reconciler) CancelCheckIn(ctx context.Context, entryID string) (model.ScheduleEntry, error) {
	if err := r.lock(ctx); err != nil {
		return model.ScheduleEntry{}, err
	}
	defer r.unlock()

	prev, err := r.store.Get(ctx, entryID)
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	empty := ""
	updated, err := r.store.Update(ctx, entryID, model.SchedulePatch{
		CheckInTime: &empty,
		Dock:        &empty,
		Location:    &empty,
	})
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	r.releaseIfUnused(ctx, prev.Location)
	return updated, nil
}

// AssignDock claims a dock door for a checked-in entry.
//
// Preconditions, checked in order: the entry must have checked in; the
// dock must not appear in the occupancy index computed over all entries;
// the dock must not be disabled on the dock status record. An entry that
// already holds the requested dock is a no-op.
//
// On success the entry's dock field takes the canonical label, and an
// empty location defaults to stage — dock assignment alone never claims a
// physical storage slot.
func (r *Reconciler) AssignDock(ctx context.Context, entryID string, dock int) (model.ScheduleEntry, error) {
	if err := r.lock(ctx); err != nil {
		return model.ScheduleEntry{}, err
	}
	defer r.unlock()

	if !ValidDock(dock) {
		return model.ScheduleEntry{}, ErrUnknownDock
	}
	entry, err := r.store.Get(ctx, entryID)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if !entry.CheckedIn() {
		return model.ScheduleEntry{}, ErrNotCheckedIn
	}
	if n, ok := ParseDockLabel(entry.Dock); ok && n == dock {
		return entry, nil // already holds this dock
	}

	all, err := r.store.List(ctx, "")
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if _, taken := OccupiedDocks(all)[dock]; taken {
		r.log.Info().Int("dock", dock).Str("entry", entryID).Msg("dock already occupied")
		return model.ScheduleEntry{}, ErrDockUnavailable
	}
	if r.ledger.DockStatus(dock) == model.SlotDisabled {
		r.log.Info().Int("dock", dock).Str("entry", entryID).Msg("dock disabled")
		return model.ScheduleEntry{}, ErrDockUnavailable
	}

	label := DockLabel(dock)
	patch := model.SchedulePatch{Dock: &label}
	if entry.Location == "" {
		stage := model.StageLocation
		patch.Location = &stage
	}
	return r.store.Update(ctx, entryID, patch)
}

// ChangeLocation moves an entry to a storage slot (or back to stage). The
// entry must be checked in and hold a dock; location edits outside the
// DockAssigned states are rejected.
//
// Ledger side effects: a newly claimed slot is toggled to disabled; the
// previous slot is released only when, on the post-mutation collection, no
// other entry still references it. Ledger write failures are logged inside
// the ledger and never roll back the entry mutation.
func (r *Reconciler) ChangeLocation(ctx context.Context, entryID, slotID string) (model.ScheduleEntry, error) {
	if err := r.lock(ctx); err != nil {
		return model.ScheduleEntry{}, err
	}
	defer r.unlock()

	entry, err := r.store.Get(ctx, entryID)
	if err != nil {
		return model.ScheduleEntry{}, err
	}
	if !entry.CheckedIn() {
		return model.ScheduleEntry{}, ErrNotCheckedIn
	}
	if !entry.HasDock() {
		return model.ScheduleEntry{}, ErrNoDock
	}

	if slotID == "" {
		slotID = model.StageLocation
	}
	prev := entry.EffectiveLocation()

	updated, err := r.store.Update(ctx, entryID, model.SchedulePatch{Location: &slotID})
	if err != nil {
		return model.ScheduleEntry{}, err
	}

	if slotID != model.StageLocation && r.ledger.Status(slotID) == model.SlotAvailable {
		r.ledger.Toggle(slotID)
	}
	if prev != slotID {
		r.releaseIfUnused(ctx, prev)
	}
	return updated, nil
}

// releaseIfUnused re-enables a slot when the post-mutation collection no
// longer references it. The stage catch-all never occupies the ledger.
func (r *Reconciler) releaseIfUnused(ctx context.Context, slotID string) {
	if slotID == "" || slotID == model.StageLocation {
		return
	}
	all, err := r.store.List(ctx, "")
	if err != nil {
		r.log.Error().Err(err).Str("slot", slotID).Msg("cannot verify slot references; leaving disabled")
		return
	}
	if _, used := UsedLocations(all)[slotID]; used {
		return
	}
	if r.ledger.Status(slotID) == model.SlotDisabled {
		r.ledger.Toggle(slotID)
	}
}

// Resync is the self-healing sweep run on each full reload of the schedule
// collection: every slot referenced by an entry is forced to disabled. It
// repairs drift left by lost ledger writes but never re-enables a slot.
func (r *Reconciler) Resync(ctx context.Context) error {
	if err := r.lock(ctx); err != nil {
		return err
	}
	defer r.unlock()

	all, err := r.store.List(ctx, "")
	if err != nil {
		return err
	}
	r.ledger.SyncUsed(UsedLocations(all))
	return nil
}
