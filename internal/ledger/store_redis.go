package ledger

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minsu-han/warehouse-inbound/internal/model"
)

// Persisted layout: one JSON document per key, the slot document keyed by
// slot id and the dock document keyed by the dock number as a string.
const (
	slotKey = "ledger:locations"
	dockKey = "ledger:docks"
)

const opTimeout = 2 * time.Second

// RedisStore persists the ledger in Redis as two JSON blobs.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load reads both documents. A missing key yields a nil map; any other
// read or decode failure is returned so the ledger reseeds.
func (s *RedisStore) Load() (map[string]model.SlotStatus, map[int]model.SlotStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var slots map[string]model.SlotStatus
	raw, err := s.rdb.Get(ctx, slotKey).Bytes()
	switch {
	case err == redis.Nil:
		// nothing persisted yet
	case err != nil:
		return nil, nil, err
	default:
		if err := json.Unmarshal(raw, &slots); err != nil {
			return nil, nil, err
		}
	}

	var wire map[string]model.SlotStatus
	raw, err = s.rdb.Get(ctx, dockKey).Bytes()
	switch {
	case err == redis.Nil:
		return slots, nil, nil
	case err != nil:
		return nil, nil, err
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, nil, err
	}
	docks := make(map[int]model.SlotStatus, len(wire))
	for k, v := range wire {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		docks[n] = v
	}
	return slots, docks, nil
}

// Save writes both documents in one pipeline.
func (s *RedisStore) Save(slots map[string]model.SlotStatus, docks map[int]model.SlotStatus) error {
	slotDoc, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	wire := make(map[string]model.SlotStatus, len(docks))
	for k, v := range docks {
		wire[strconv.Itoa(k)] = v
	}
	dockDoc, err := json.Marshal(wire)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, slotKey, slotDoc, 0)
	pipe.Set(ctx, dockKey, dockDoc, 0)
	_, err = pipe.Exec(ctx)
	return err
}
