package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hotel-occupancy-backend/internal/model"
)

const roomKeyPrefix = "rooms:"

// RoomDirectory is a read-through cache over room-listing queries. It owns
// invalidation: every lifecycle mutation that can change a listing calls
// Invalidate after the store transaction commits. A reader racing that window
// may see a listing up to the TTL old, which is the accepted bounded
// staleness, not an error.
type RoomDirectory struct {
	cache Cache
	ttl   time.Duration
}

// NewRoomDirectory builds the directory. A nil cache disables caching
// entirely; lookups then go straight to the loader.
func NewRoomDirectory(c Cache, ttl time.Duration) *RoomDirectory {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &RoomDirectory{cache: c, ttl: ttl}
}

// listKey derives the cache key from the query filter.
func listKey(status *model.RoomStatus) string {
	if status == nil {
		return roomKeyPrefix + "all"
	}
	return roomKeyPrefix + "status:" + string(*status)
}

// List serves a room listing from the cache when possible, falling back to
// load and populating the entry best-effort on a miss.
func (d *RoomDirectory) List(ctx context.Context, status *model.RoomStatus, load func(context.Context) ([]model.Room, error)) ([]model.Room, error) {
	if d.cache == nil {
		return load(ctx)
	}

	key := listKey(status)
	if bs, ok, err := d.cache.Get(ctx, key); err != nil {
		log.Printf("room cache read for %s failed: %v", key, err)
	} else if ok {
		var rooms []model.Room
		uerr := json.Unmarshal(bs, &rooms)
		if uerr == nil {
			return rooms, nil
		}
		log.Printf("room cache entry %s is corrupt, discarding: %v", key, uerr)
	}

	rooms, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if bs, err := json.Marshal(rooms); err == nil {
		if err := d.cache.Set(ctx, key, bs, d.ttl); err != nil {
			log.Printf("room cache write for %s failed: %v", key, err)
		}
	}
	return rooms, nil
}

// Invalidate drops every room-listing entry. A status change moves a room
// between filter buckets, so invalidation is always by prefix rather than by
// the single touched key.
func (d *RoomDirectory) Invalidate(ctx context.Context) {
	if d.cache == nil {
		return
	}
	if err := d.cache.DeleteByPrefix(ctx, roomKeyPrefix); err != nil {
		log.Printf("room cache invalidation failed: %v", err)
	}
}
