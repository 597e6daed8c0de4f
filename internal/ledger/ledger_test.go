package ledger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

func newTestLedger(seed Seed) (*Ledger, *MemoryStore) {
	store := NewMemoryStore()
	return New(store, seed, zerolog.Nop()), store
}

func TestSeedSingle(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)
	statuses := l.Statuses()

	// A..I carry 28 slots, J..L carry 11.
	require.Len(t, statuses, 9*28+3*11)
	assert.Equal(t, model.SlotAvailable, statuses["A-23"])
	assert.Equal(t, model.SlotDisabled, statuses["A-1"])
	assert.Equal(t, model.SlotDisabled, statuses["J-11"])
	_, ok := statuses["J-12"]
	assert.False(t, ok, "J group must stop at 11")

	assert.Equal(t, []string{"A-23"}, l.AvailableSlots())
}

func TestSeedAll(t *testing.T) {
	l, _ := newTestLedger(SeedAll)
	assert.Len(t, l.AvailableSlots(), 9*28+3*11)
}

func TestToggle(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)

	after := l.Toggle("B-5")
	assert.Equal(t, model.SlotAvailable, after["B-5"])
	after = l.Toggle("B-5")
	assert.Equal(t, model.SlotDisabled, after["B-5"])
}

func TestToggleUnknownSlot(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)

	// An unknown id is created disabled and then flipped.
	after := l.Toggle("Z-99")
	assert.Equal(t, model.SlotAvailable, after["Z-99"])
}

func TestAvailableSlotsSorted(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)
	l.Toggle("C-2")
	l.Toggle("B-9")

	assert.Equal(t, []string{"A-23", "B-9", "C-2"}, l.AvailableSlots())
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	first := New(store, SeedSingle, zerolog.Nop())
	first.Toggle("D-4")
	first.SetDockStatus(16, model.SlotDisabled)

	second := New(store, SeedSingle, zerolog.Nop())
	assert.Equal(t, model.SlotAvailable, second.Status("D-4"))
	assert.Equal(t, model.SlotDisabled, second.DockStatus(16))
}

func TestSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := NewMemoryStore()
	l := New(store, SeedSingle, zerolog.Nop())
	store.FailSaves = true

	l.Toggle("E-7")
	assert.Equal(t, model.SlotAvailable, l.Status("E-7"), "in-memory state must survive a failed save")
}

func TestSyncUsed(t *testing.T) {
	l, _ := newTestLedger(SeedAll)

	l.SyncUsed(map[string]struct{}{
		"B-5":               {},
		model.StageLocation: {},
		"":                  {},
	})
	assert.Equal(t, model.SlotDisabled, l.Status("B-5"))
	// The sweep never re-enables and never touches stage or empty ids.
	assert.Equal(t, model.SlotAvailable, l.Status("B-6"))
	_, hasStage := l.Statuses()[model.StageLocation]
	assert.False(t, hasStage)
}

func TestReset(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)
	l.Toggle("F-1")
	l.Reset()
	assert.Equal(t, []string{"A-23"}, l.AvailableSlots())
}

func TestDockStatusDefaultsAvailable(t *testing.T) {
	l, _ := newTestLedger(SeedSingle)
	assert.Equal(t, model.SlotAvailable, l.DockStatus(4))

	l.SetDockStatus(4, model.SlotDisabled)
	assert.Equal(t, model.SlotDisabled, l.DockStatus(4))
	assert.Equal(t, model.SlotDisabled, l.DockStatuses()[4])
}
