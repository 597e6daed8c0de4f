package schedule

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-han/warehouse-inbound/internal/ledger"
	"github.com/minsu-han/warehouse-inbound/internal/model"
	"github.com/minsu-han/warehouse-inbound/internal/repository"
)

type fixture struct {
	store *repository.MemoryScheduleStore
	led   *ledger.Ledger
	rec   *Reconciler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryScheduleStore()
	led := ledger.New(ledger.NewMemoryStore(), ledger.SeedAll, zerolog.Nop())
	return &fixture{
		store: store,
		led:   led,
		rec:   NewReconciler(store, led, zerolog.Nop()),
	}
}

func (f *fixture) seed(t *testing.T, entries ...model.ScheduleEntry) []model.ScheduleEntry {
	t.Helper()
	_, err := f.store.CreateBulk(context.Background(), entries)
	require.NoError(t, err)
	out, err := f.store.List(context.Background(), "")
	require.NoError(t, err)
	return out
}

func entry(date string) model.ScheduleEntry {
	return model.ScheduleEntry{
		Date:            date,
		AppointmentTime: "10:30 AM",
		Type:            model.TypeCell,
		Status:          model.StatusFree,
	}
}

func checkedIn(date string) model.ScheduleEntry {
	e := entry(date)
	e.CheckInTime = "09:45"
	return e
}

func TestAssignDock(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))

	got, err := f.rec.AssignDock(context.Background(), ids[0].ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "DOCK-04", got.Dock)
	// Dock assignment alone never claims a storage slot.
	assert.Equal(t, model.StageLocation, got.Location)
}

func TestAssignDockRequiresCheckIn(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, entry("2025-10-15"))

	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 4)
	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestAssignDockRefusedWhenOccupied(t *testing.T) {
	f := newFixture(t)
	first := checkedIn("2025-10-15")
	first.Dock = "DOCK-04"
	second := checkedIn("2025-10-15")
	ids := f.seed(t, first, second)

	var target string
	for _, e := range ids {
		if e.Dock == "" {
			target = e.ID
		}
	}
	require.NotEmpty(t, target)

	_, err := f.rec.AssignDock(context.Background(), target, 4)
	assert.ErrorIs(t, err, ErrDockUnavailable)

	// Nothing changed on the target entry.
	got, err := f.store.Get(context.Background(), target)
	require.NoError(t, err)
	assert.Empty(t, got.Dock)
}

func TestAssignDockRefusedWhenDisabled(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))
	f.led.SetDockStatus(6, model.SlotDisabled)

	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 6)
	assert.ErrorIs(t, err, ErrDockUnavailable)
}

func TestAssignDockIdempotent(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))

	first, err := f.rec.AssignDock(context.Background(), ids[0].ID, 8)
	require.NoError(t, err)
	// Re-assigning the dock the entry already holds is a no-op, not a
	// refusal, even though 8 now sits in the occupancy index.
	second, err := f.rec.AssignDock(context.Background(), ids[0].ID, 8)
	require.NoError(t, err)
	assert.Equal(t, first.Dock, second.Dock)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestAssignDockUnknownDoor(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))

	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 5)
	assert.ErrorIs(t, err, ErrUnknownDock)
}

func TestChangeLocationClaimsAndReleases(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))
	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 4)
	require.NoError(t, err)

	got, err := f.rec.ChangeLocation(context.Background(), ids[0].ID, "B-5")
	require.NoError(t, err)
	assert.Equal(t, "B-5", got.Location)
	assert.Equal(t, model.SlotDisabled, f.led.Status("B-5"))

	// Moving away releases B-5 because nothing else references it.
	_, err = f.rec.ChangeLocation(context.Background(), ids[0].ID, "C-7")
	require.NoError(t, err)
	assert.Equal(t, model.SlotAvailable, f.led.Status("B-5"))
	assert.Equal(t, model.SlotDisabled, f.led.Status("C-7"))
}

func TestChangeLocationKeepsSharedSlotDisabled(t *testing.T) {
	f := newFixture(t)
	a := checkedIn("2025-10-15")
	a.Dock = "DOCK-04"
	a.Location = "B-5"
	b := checkedIn("2025-10-15")
	b.Dock = "DOCK-06"
	b.Location = "B-5"
	ids := f.seed(t, a, b)
	f.led.SyncUsed(map[string]struct{}{"B-5": {}})

	// One of the two entries moves off the shared slot; the other still
	// references it, so it must stay disabled.
	_, err := f.rec.ChangeLocation(context.Background(), ids[0].ID, "D-1")
	require.NoError(t, err)
	assert.Equal(t, model.SlotDisabled, f.led.Status("B-5"))
}

func TestChangeLocationToStageNeverTouchesLedger(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))
	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 4)
	require.NoError(t, err)

	before := f.led.Statuses()
	_, err = f.rec.ChangeLocation(context.Background(), ids[0].ID, model.StageLocation)
	require.NoError(t, err)
	assert.Equal(t, before, f.led.Statuses())
	_, hasStage := f.led.Statuses()[model.StageLocation]
	assert.False(t, hasStage, "stage must never appear in the ledger")
}

func TestChangeLocationRejectedOutsideDockStates(t *testing.T) {
	f := newFixture(t)
	noCheckIn := entry("2025-10-15")
	noDock := checkedIn("2025-10-15")
	ids := f.seed(t, noCheckIn, noDock)

	for _, e := range ids {
		_, err := f.rec.ChangeLocation(context.Background(), e.ID, "B-5")
		if e.CheckInTime == "" {
			assert.ErrorIs(t, err, ErrNotCheckedIn)
		} else {
			assert.ErrorIs(t, err, ErrNoDock)
		}
	}
	assert.Equal(t, model.SlotAvailable, f.led.Status("B-5"))
}

func TestCancelCheckInReleasesEverything(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, checkedIn("2025-10-15"))
	_, err := f.rec.AssignDock(context.Background(), ids[0].ID, 4)
	require.NoError(t, err)
	_, err = f.rec.ChangeLocation(context.Background(), ids[0].ID, "B-5")
	require.NoError(t, err)

	got, err := f.rec.CancelCheckIn(context.Background(), ids[0].ID)
	require.NoError(t, err)
	assert.Empty(t, got.CheckInTime)
	assert.Empty(t, got.Dock)
	assert.Equal(t, model.StageLocation, got.EffectiveLocation())
	// The dock and slot are free for the next arrival.
	assert.Equal(t, model.SlotAvailable, f.led.Status("B-5"))
	all, _ := f.store.List(context.Background(), "")
	_, taken := OccupiedDocks(all)[4]
	assert.False(t, taken)
}

func TestCheckInThenAssign(t *testing.T) {
	f := newFixture(t)
	ids := f.seed(t, entry("2025-10-15"))

	_, err := f.rec.CheckIn(context.Background(), ids[0].ID, "08:15")
	require.NoError(t, err)
	got, err := f.rec.AssignDock(context.Background(), ids[0].ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "DOCK-10", got.Dock)
}

func TestResyncForcesUsedSlotsDisabled(t *testing.T) {
	f := newFixture(t)
	a := checkedIn("2025-10-15")
	a.Dock = "DOCK-04"
	a.Location = "E-9"
	f.seed(t, a)

	// Simulate drift: the ledger thinks E-9 is free.
	require.Equal(t, model.SlotAvailable, f.led.Status("E-9"))
	require.NoError(t, f.rec.Resync(context.Background()))
	assert.Equal(t, model.SlotDisabled, f.led.Status("E-9"))
}

func TestEntryNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.rec.AssignDock(context.Background(), "missing", 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.rec.ChangeLocation(context.Background(), "missing", "B-5")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
