package occupancy

import (
	"context"
	"fmt"

	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/store"
)

// CreateRoomInput carries the fields for room registration.
type CreateRoomInput struct {
	Number    string
	Floor     int
	Capacity  int
	RoomType  model.RoomType
	DailyRate model.Cents
	NightRate model.Cents
}

// CreateRoom registers a room as AVAILABLE.
func (m *Manager) CreateRoom(ctx context.Context, in CreateRoomInput) (*model.Room, error) {
	switch {
	case in.Number == "":
		return nil, fmt.Errorf("number is required: %w", store.ErrInvalidInput)
	case in.Capacity <= 0:
		return nil, fmt.Errorf("capacity must be positive: %w", store.ErrInvalidInput)
	case !model.ValidRoomType(in.RoomType):
		return nil, fmt.Errorf("unknown room type %q: %w", in.RoomType, store.ErrInvalidInput)
	case in.DailyRate <= 0:
		return nil, fmt.Errorf("dailyRate must be positive: %w", store.ErrInvalidInput)
	case in.NightRate <= 0:
		return nil, fmt.Errorf("nightRate must be positive: %w", store.ErrInvalidInput)
	}

	room := &model.Room{
		Number:    in.Number,
		Floor:     in.Floor,
		Capacity:  in.Capacity,
		RoomType:  in.RoomType,
		DailyRate: in.DailyRate,
		NightRate: in.NightRate,
		Status:    model.RoomStatusAvailable,
	}
	if err := m.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	m.rooms.Invalidate(ctx)
	return room, nil
}

// ListRooms serves the listing through the read-through cache. The status
// filter, when present, must be a known room status.
func (m *Manager) ListRooms(ctx context.Context, status *model.RoomStatus) ([]model.Room, error) {
	if status != nil && !model.ValidRoomStatus(*status) {
		return nil, fmt.Errorf("unknown room status %q: %w", *status, store.ErrInvalidInput)
	}
	return m.rooms.List(ctx, status, func(ctx context.Context) ([]model.Room, error) {
		return m.store.ListRooms(ctx, status)
	})
}

// GetRoom returns a room with its occupation history, newest first.
func (m *Manager) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	return m.store.GetRoom(ctx, id)
}

// UpdateRoom applies a partial update and refreshes the listing cache.
func (m *Manager) UpdateRoom(ctx context.Context, id int64, upd store.RoomUpdate) (*model.Room, error) {
	if upd.RoomType != nil && !model.ValidRoomType(*upd.RoomType) {
		return nil, fmt.Errorf("unknown room type %q: %w", *upd.RoomType, store.ErrInvalidInput)
	}
	if upd.Status != nil && !model.ValidRoomStatus(*upd.Status) {
		return nil, fmt.Errorf("unknown room status %q: %w", *upd.Status, store.ErrInvalidInput)
	}
	if upd.DailyRate != nil && *upd.DailyRate <= 0 {
		return nil, fmt.Errorf("dailyRate must be positive: %w", store.ErrInvalidInput)
	}
	if upd.NightRate != nil && *upd.NightRate <= 0 {
		return nil, fmt.Errorf("nightRate must be positive: %w", store.ErrInvalidInput)
	}
	if upd.Capacity != nil && *upd.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive: %w", store.ErrInvalidInput)
	}

	room, err := m.store.UpdateRoom(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	m.rooms.Invalidate(ctx)
	return room, nil
}

// UpdateRoomStatus is the housekeeping entry point for the transitions the
// lifecycle does not drive itself (CLEANING -> AVAILABLE, -> MAINTENANCE).
func (m *Manager) UpdateRoomStatus(ctx context.Context, id int64, status model.RoomStatus) (*model.Room, error) {
	if !model.ValidRoomStatus(status) {
		return nil, fmt.Errorf("unknown room status %q: %w", status, store.ErrInvalidInput)
	}
	room, err := m.store.UpdateRoom(ctx, id, store.RoomUpdate{Status: &status})
	if err != nil {
		return nil, err
	}
	m.rooms.Invalidate(ctx)
	return room, nil
}

// DeleteRoom removes a room that has no active occupation, along with its
// completed stay history.
func (m *Manager) DeleteRoom(ctx context.Context, id int64) error {
	if err := m.store.DeleteRoom(ctx, id); err != nil {
		return err
	}
	m.rooms.Invalidate(ctx)
	return nil
}
