package ledger

import (
	"errors"
	"sync"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

var errSaveFailed = errors.New("ledger store: save failed")

// Store persists the ledger as whole documents. Load returns nil maps when
// nothing has been persisted yet; implementations must treat decode errors
// as an error result so the ledger can fall back to its seed.
type Store interface {
	Load() (slots map[string]model.SlotStatus, docks map[int]model.SlotStatus, err error)
	Save(slots map[string]model.SlotStatus, docks map[int]model.SlotStatus) error
}

// MemoryStore keeps the persisted document in process memory. It backs the
// ledger when no Redis is configured and doubles as the test fake.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]model.SlotStatus
	docks map[int]model.SlotStatus

	// FailSaves makes every Save return an error, for exercising the
	// log-and-continue failure path in tests.
	FailSaves bool
	SaveErr   error
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load returns the last saved document, or nil maps when nothing was saved.
func (s *MemoryStore) Load() (map[string]model.SlotStatus, map[int]model.SlotStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots, s.docks, nil
}

// Save replaces the stored document.
func (s *MemoryStore) Save(slots map[string]model.SlotStatus, docks map[int]model.SlotStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves {
		if s.SaveErr != nil {
			return s.SaveErr
		}
		return errSaveFailed
	}
	s.slots = slots
	s.docks = docks
	return nil
}
