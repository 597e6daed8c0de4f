// Package ledger tracks the availability of warehouse storage slots and of
// the dock doors. State lives in memory and is written through to a Store
// after every mutation; a write failure is logged and the in-memory state
// stays authoritative for the rest of the session.
package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// Slot groups. J, K and L are the short racks along the office wall.
var slotGroups = []struct {
	letter string
	max    int
}{
	{"A", 28}, {"B", 28}, {"C", 28}, {"D", 28}, {"E", 28}, {"F", 28},
	{"G", 28}, {"H", 28}, {"I", 28}, {"J", 11}, {"K", 11}, {"L", 11},
}

// Seed selects the initial slot configuration. SeedSingle reproduces the
// deployment where only A-23 starts available; SeedAll opens every slot.
type Seed string

const (
	SeedSingle Seed = "single"
	SeedAll    Seed = "all"
)

// seedSlot is the one slot left available under SeedSingle.
const seedSlot = "A-23"

// Ledger owns slot and dock status. All methods are safe for concurrent use.
type Ledger struct {
	mu    sync.Mutex
	slots map[string]model.SlotStatus
	docks map[int]model.SlotStatus
	store Store
	seed  Seed
	log   zerolog.Logger
}

// New builds a Ledger backed by store. It loads persisted state when
// present; a read or decode failure falls back silently to a fresh seed.
func New(store Store, seed Seed, log zerolog.Logger) *Ledger {
	l := &Ledger{
		store: store,
		seed:  seed,
		log:   log.With().Str("component", "ledger").Logger(),
	}
	slots, docks, err := store.Load()
	if err != nil || slots == nil {
		slots = initialSlots(seed)
	}
	if docks == nil {
		docks = map[int]model.SlotStatus{}
	}
	l.slots = slots
	l.docks = docks
	return l
}

func initialSlots(seed Seed) map[string]model.SlotStatus {
	slots := make(map[string]model.SlotStatus)
	for _, g := range slotGroups {
		for i := 1; i <= g.max; i++ {
			id := fmt.Sprintf("%s-%d", g.letter, i)
			if seed == SeedAll || id == seedSlot {
				slots[id] = model.SlotAvailable
			} else {
				slots[id] = model.SlotDisabled
			}
		}
	}
	return slots
}

// Statuses returns a copy of the full slot map.
func (l *Ledger) Statuses() map[string]model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copySlots(l.slots)
}

// Status returns one slot's status. Unknown slots read as disabled.
func (l *Ledger) Status(slotID string) model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.slots[slotID]; ok {
		return s
	}
	return model.SlotDisabled
}

// Toggle flips a slot between available and disabled and returns the full
// updated map. A slot the ledger has never seen is created disabled and
// then flipped, so toggling an unknown id yields available.
func (l *Ledger) Toggle(slotID string) map[string]model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.slots[slotID]
	if !ok {
		cur = model.SlotDisabled
	}
	l.slots[slotID] = cur.Toggle()
	l.persist()
	return copySlots(l.slots)
}

// SetStatus pins a slot to an explicit status, creating it if needed.
func (l *Ledger) SetStatus(slotID string, status model.SlotStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots[slotID] == status {
		return
	}
	l.slots[slotID] = status
	l.persist()
}

// AvailableSlots lists every available slot id in lexicographic order.
func (l *Ledger) AvailableSlots() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.slots))
	for id, s := range l.slots {
		if s == model.SlotAvailable {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Reset reinitializes every slot from the seed configuration.
func (l *Ledger) Reset() map[string]model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.slots = initialSlots(l.seed)
	l.persist()
	return copySlots(l.slots)
}

// SyncUsed force-disables every slot referenced by a schedule entry. This
// is the self-healing sweep run on each full reload: it repairs drift after
// a lost ledger write but never re-enables a slot on its own.
func (l *Ledger) SyncUsed(used map[string]struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := false
	for id := range used {
		if id == model.StageLocation || id == "" {
			continue
		}
		if l.slots[id] != model.SlotDisabled {
			l.slots[id] = model.SlotDisabled
			changed = true
		}
	}
	if changed {
		l.persist()
	}
}

// DockStatus reads one dock door's status. Docks default to available.
func (l *Ledger) DockStatus(dock int) model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.docks[dock]; ok {
		return s
	}
	return model.SlotAvailable
}

// SetDockStatus pins a dock door to an explicit status.
func (l *Ledger) SetDockStatus(dock int, status model.SlotStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.docks[dock]; ok && cur == status {
		return
	}
	l.docks[dock] = status
	l.persist()
}

// DockStatuses returns a copy of the dock status record.
func (l *Ledger) DockStatuses() map[int]model.SlotStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[int]model.SlotStatus, len(l.docks))
	for k, v := range l.docks {
		out[k] = v
	}
	return out
}

// persist writes through to the store. Caller holds l.mu.
func (l *Ledger) persist() {
	if err := l.store.Save(copySlots(l.slots), l.copyDocksLocked()); err != nil {
		l.log.Error().Err(err).Msg("ledger save failed; in-memory state stays authoritative")
	}
}

func (l *Ledger) copyDocksLocked() map[int]model.SlotStatus {
	out := make(map[int]model.SlotStatus, len(l.docks))
	for k, v := range l.docks {
		out[k] = v
	}
	return out
}

func copySlots(in map[string]model.SlotStatus) map[string]model.SlotStatus {
	out := make(map[string]model.SlotStatus, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
