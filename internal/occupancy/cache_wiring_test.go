package occupancy

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-occupancy-backend/internal/cache"
	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/store"
)

// mapCache is an in-memory cache.Cache capturing what the manager stores and
// invalidates.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (f *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bs, ok := f.entries[key]
	return bs, ok, nil
}

func (f *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *mapCache) DeleteByPrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			delete(f.entries, k)
		}
	}
	return nil
}

func (f *mapCache) listingKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.entries {
		if strings.HasPrefix(k, "rooms:") {
			keys = append(keys, k)
		}
	}
	return keys
}

func newCachedManager(t *testing.T) (*Manager, *mapCache) {
	t.Helper()
	s := store.NewGormStore(newTestDB(t))
	fc := newMapCache()
	return NewManager(s, cache.NewRoomDirectory(fc, time.Minute), nil), fc
}

// primeListing populates the cached listings so the next mutation has entries
// to invalidate.
func primeListing(t *testing.T, m *Manager, fc *mapCache) {
	t.Helper()
	_, err := m.ListRooms(context.Background(), nil)
	require.NoError(t, err)
	status := model.RoomStatusAvailable
	_, err = m.ListRooms(context.Background(), &status)
	require.NoError(t, err)
	require.NotEmpty(t, fc.listingKeys())
}

func TestRoomMutationsInvalidateListingCache(t *testing.T) {
	m, fc := newCachedManager(t)
	ctx := context.Background()

	primeListing(t, m, fc)
	room, err := m.CreateRoom(ctx, CreateRoomInput{
		Number:    "101",
		Floor:     1,
		Capacity:  2,
		RoomType:  model.RoomTypeStandard,
		DailyRate: model.CentsFromFloat(100),
		NightRate: model.CentsFromFloat(80),
	})
	require.NoError(t, err)
	assert.Empty(t, fc.listingKeys(), "create room must drop cached listings")

	primeListing(t, m, fc)
	newRate := model.CentsFromFloat(120)
	_, err = m.UpdateRoom(ctx, room.ID, store.RoomUpdate{DailyRate: &newRate})
	require.NoError(t, err)
	assert.Empty(t, fc.listingKeys(), "update room must drop cached listings")

	primeListing(t, m, fc)
	_, err = m.UpdateRoomStatus(ctx, room.ID, model.RoomStatusMaintenance)
	require.NoError(t, err)
	assert.Empty(t, fc.listingKeys(), "status update must drop cached listings")

	primeListing(t, m, fc)
	require.NoError(t, m.DeleteRoom(ctx, room.ID))
	assert.Empty(t, fc.listingKeys(), "delete room must drop cached listings")
}

func TestOccupationLifecycleInvalidatesListingCache(t *testing.T) {
	m, fc := newCachedManager(t)
	ctx := context.Background()
	room := createTestRoom(t, m, "201")

	primeListing(t, m, fc)
	occ, err := m.CreateOccupation(ctx, occupationInput(room.ID, time.Now()))
	require.NoError(t, err)
	assert.Empty(t, fc.listingKeys(), "create occupation must drop cached listings")

	primeListing(t, m, fc)
	_, err = m.CompleteCheckOut(ctx, occ.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, fc.listingKeys(), "checkout must drop cached listings")
}

// A listing read after a mutation must reflect the mutation even when the
// pre-mutation listing was cached.
func TestListingServedAfterMutationIsFresh(t *testing.T) {
	m, _ := newCachedManager(t)
	ctx := context.Background()
	room := createTestRoom(t, m, "301")

	rooms, err := m.ListRooms(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, model.RoomStatusAvailable, rooms[0].Status)

	occ, err := m.CreateOccupation(ctx, occupationInput(room.ID, time.Now()))
	require.NoError(t, err)

	rooms, err = m.ListRooms(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, model.RoomStatusOccupied, rooms[0].Status)

	_, err = m.CompleteCheckOut(ctx, occ.ID, 0)
	require.NoError(t, err)

	rooms, err = m.ListRooms(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, model.RoomStatusCleaning, rooms[0].Status)
}
