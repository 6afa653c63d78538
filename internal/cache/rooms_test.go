package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-occupancy-backend/internal/model"
)

// fakeCache is an in-memory Cache for exercising the directory without redis.
type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
	delErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	bs, ok := f.entries[key]
	return bs, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCache) DeleteByPrefix(_ context.Context, prefix string) error {
	if f.delErr != nil {
		return f.delErr
	}
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			delete(f.entries, k)
		}
	}
	return nil
}

func sampleRooms() []model.Room {
	return []model.Room{
		{ID: 1, Number: "101", Status: model.RoomStatusAvailable},
		{ID: 2, Number: "102", Status: model.RoomStatusOccupied},
	}
}

func countingLoader(rooms []model.Room, calls *int) func(context.Context) ([]model.Room, error) {
	return func(context.Context) ([]model.Room, error) {
		*calls++
		return rooms, nil
	}
}

func TestListPopulatesCacheOnMiss(t *testing.T) {
	fc := newFakeCache()
	d := NewRoomDirectory(fc, time.Minute)
	calls := 0

	got, err := d.List(context.Background(), nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls)
	assert.Contains(t, fc.entries, "rooms:all")
}

func TestListServesHitWithoutLoader(t *testing.T) {
	fc := newFakeCache()
	d := NewRoomDirectory(fc, time.Minute)
	ctx := context.Background()
	calls := 0

	_, err := d.List(ctx, nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)

	got, err := d.List(ctx, nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls, "second listing must come from the cache")
}

func TestListKeysByStatusFilter(t *testing.T) {
	fc := newFakeCache()
	d := NewRoomDirectory(fc, time.Minute)
	ctx := context.Background()
	calls := 0

	status := model.RoomStatusAvailable
	_, err := d.List(ctx, &status, countingLoader(sampleRooms()[:1], &calls))
	require.NoError(t, err)
	assert.Contains(t, fc.entries, "rooms:status:AVAILABLE")

	// The unfiltered listing has its own entry.
	_, err = d.List(ctx, nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestInvalidateDropsAllListings(t *testing.T) {
	fc := newFakeCache()
	d := NewRoomDirectory(fc, time.Minute)
	ctx := context.Background()
	calls := 0

	status := model.RoomStatusAvailable
	_, _ = d.List(ctx, nil, countingLoader(sampleRooms(), &calls))
	_, _ = d.List(ctx, &status, countingLoader(sampleRooms()[:1], &calls))
	require.Len(t, fc.entries, 2)

	d.Invalidate(ctx)
	assert.Empty(t, fc.entries)
}

func TestListSwallowsCacheErrors(t *testing.T) {
	fc := newFakeCache()
	fc.getErr = errors.New("connection refused")
	fc.setErr = errors.New("connection refused")
	d := NewRoomDirectory(fc, time.Minute)
	calls := 0

	got, err := d.List(context.Background(), nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err, "cache failure must not fail the listing")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls)
}

func TestInvalidateSwallowsCacheErrors(t *testing.T) {
	fc := newFakeCache()
	fc.delErr = errors.New("connection refused")
	d := NewRoomDirectory(fc, time.Minute)

	assert.NotPanics(t, func() { d.Invalidate(context.Background()) })
}

func TestListDiscardsCorruptEntry(t *testing.T) {
	fc := newFakeCache()
	fc.entries["rooms:all"] = []byte("{not json")
	d := NewRoomDirectory(fc, time.Minute)
	calls := 0

	got, err := d.List(context.Background(), nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls, "corrupt entry falls back to the loader")

	var cached []model.Room
	require.NoError(t, json.Unmarshal(fc.entries["rooms:all"], &cached))
	assert.Len(t, cached, 2)
}

func TestListLoaderErrorPropagates(t *testing.T) {
	d := NewRoomDirectory(newFakeCache(), time.Minute)
	boom := errors.New("db down")

	_, err := d.List(context.Background(), nil, func(context.Context) ([]model.Room, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilCacheIsPassThrough(t *testing.T) {
	d := NewRoomDirectory(nil, 0)
	calls := 0

	got, err := d.List(context.Background(), nil, countingLoader(sampleRooms(), &calls))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls)
	assert.NotPanics(t, func() { d.Invalidate(context.Background()) })
}
