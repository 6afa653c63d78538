// Package occupancy orchestrates the room and occupation lifecycle: it
// validates inputs, drives the store's transactional state transitions,
// delegates pricing to the billing package and keeps the room-listing cache
// invalidated after every mutation.
package occupancy

import (
	"context"
	"fmt"
	"time"

	"hotel-occupancy-backend/internal/billing"
	"hotel-occupancy-backend/internal/cache"
	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/store"
)

// CleaningNotifier receives the ID of a room that just entered CLEANING.
// Dispatch must not block request handling for long; the worker pool behind
// it owns delivery.
type CleaningNotifier interface {
	Dispatch(roomID int64)
}

// Manager is the occupancy lifecycle orchestrator.
type Manager struct {
	store    store.Store
	rooms    *cache.RoomDirectory
	notifier CleaningNotifier
	now      func() time.Time
}

// NewManager wires the lifecycle manager. rooms may be nil to run without a
// listing cache, notifier may be nil when housekeeping notifications are
// disabled.
func NewManager(s store.Store, rooms *cache.RoomDirectory, notifier CleaningNotifier) *Manager {
	if rooms == nil {
		rooms = cache.NewRoomDirectory(nil, 0)
	}
	return &Manager{
		store:    s,
		rooms:    rooms,
		notifier: notifier,
		now:      time.Now,
	}
}

// CompanionInput describes one additional guest on a new occupation.
type CompanionInput struct {
	Name      string
	Document  string
	BirthDate time.Time
}

// CreateOccupationInput carries everything needed to open a stay.
type CreateOccupationInput struct {
	RoomID               int64
	ResponsibleName      string
	ResponsibleDocument  string
	ResponsiblePhone     string
	ResponsibleBirthDate time.Time
	VehiclePlate         string
	CheckInDate          time.Time
	ExpectedCheckOut     time.Time
	RoomRate             model.Cents
	InitialConsumption   model.Cents
	Companions           []CompanionInput
}

func (in *CreateOccupationInput) validate(now time.Time) error {
	switch {
	case in.RoomID <= 0:
		return fmt.Errorf("roomId is required: %w", store.ErrInvalidInput)
	case in.ResponsibleName == "":
		return fmt.Errorf("responsibleName is required: %w", store.ErrInvalidInput)
	case in.ResponsibleDocument == "":
		return fmt.Errorf("responsibleDocument is required: %w", store.ErrInvalidInput)
	case in.ResponsiblePhone == "":
		return fmt.Errorf("responsiblePhone is required: %w", store.ErrInvalidInput)
	case in.ResponsibleBirthDate.IsZero():
		return fmt.Errorf("responsibleBirthDate is required: %w", store.ErrInvalidInput)
	case in.CheckInDate.IsZero():
		return fmt.Errorf("checkInDate is required: %w", store.ErrInvalidInput)
	case in.ExpectedCheckOut.IsZero():
		return fmt.Errorf("expectedCheckOut is required: %w", store.ErrInvalidInput)
	case in.RoomRate <= 0:
		return fmt.Errorf("roomRate is required: %w", store.ErrInvalidInput)
	case in.InitialConsumption < 0:
		return fmt.Errorf("initialConsumption must not be negative: %w", store.ErrInvalidInput)
	}

	if ageYears(in.ResponsibleBirthDate, now) < minimumAge {
		return fmt.Errorf("responsible %s must be at least %d years old: %w",
			in.ResponsibleName, minimumAge, store.ErrInvalidInput)
	}
	for _, c := range in.Companions {
		if c.Name == "" || c.Document == "" || c.BirthDate.IsZero() {
			return fmt.Errorf("companion name, document and birthDate are required: %w", store.ErrInvalidInput)
		}
		if ageYears(c.BirthDate, now) < minimumAge {
			return fmt.Errorf("companion %s must be at least %d years old: %w",
				c.Name, minimumAge, store.ErrInvalidInput)
		}
	}
	return nil
}

// CreateOccupation opens a stay on a room. The room goes to OCCUPIED when the
// check-in date is today or earlier (date-only comparison) and RESERVED when
// it lies in the future. Companions are created atomically with the
// occupation.
func (m *Manager) CreateOccupation(ctx context.Context, in CreateOccupationInput) (*model.Occupation, error) {
	now := m.now()
	if err := in.validate(now); err != nil {
		return nil, err
	}

	occ := &model.Occupation{
		RoomID:               in.RoomID,
		ResponsibleName:      in.ResponsibleName,
		ResponsibleDocument:  in.ResponsibleDocument,
		ResponsiblePhone:     in.ResponsiblePhone,
		ResponsibleBirthDate: in.ResponsibleBirthDate,
		VehiclePlate:         in.VehiclePlate,
		CheckInDate:          in.CheckInDate,
		ExpectedCheckOut:     in.ExpectedCheckOut,
		RoomRate:             in.RoomRate,
		InitialConsumption:   in.InitialConsumption,
		TotalConsumption:     in.InitialConsumption,
	}
	for _, c := range in.Companions {
		occ.Companions = append(occ.Companions, model.Companion{
			Name:      c.Name,
			Document:  c.Document,
			BirthDate: c.BirthDate,
		})
	}

	roomStatus := model.RoomStatusReserved
	if !dateOnly(in.CheckInDate, now.Location()).After(dateOnly(now, now.Location())) {
		roomStatus = model.RoomStatusOccupied
	}

	if err := m.store.CreateOccupation(ctx, occ, roomStatus); err != nil {
		return nil, err
	}
	m.rooms.Invalidate(ctx)
	return occ, nil
}

// AddConsumptionInput carries one new charge.
type AddConsumptionInput struct {
	ProductID int64
	Quantity  int
	UnitPrice model.Cents
}

// AddConsumption appends a charge to an active occupation and re-derives the
// occupation's running total from the full ledger.
func (m *Manager) AddConsumption(ctx context.Context, occupationID int64, in AddConsumptionInput) (*model.Consumption, error) {
	switch {
	case in.ProductID <= 0:
		return nil, fmt.Errorf("productId is required: %w", store.ErrInvalidInput)
	case in.Quantity <= 0:
		return nil, fmt.Errorf("quantity must be positive: %w", store.ErrInvalidInput)
	case in.UnitPrice <= 0:
		return nil, fmt.Errorf("unitPrice must be positive: %w", store.ErrInvalidInput)
	}

	cons := &model.Consumption{
		OccupationID: occupationID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
	}
	if err := m.store.AddConsumption(ctx, cons); err != nil {
		return nil, err
	}
	return cons, nil
}

// CheckOutItem is one ledger line on the checkout summary.
type CheckOutItem struct {
	ProductID   int64       `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	UnitPrice   model.Cents `json:"unitPrice"`
	TotalPrice  model.Cents `json:"totalPrice"`
	Date        time.Time   `json:"date"`
}

// CheckOutSummary is the itemized bill produced at checkout.
type CheckOutSummary struct {
	billing.Statement
	Items []CheckOutItem `json:"items"`
}

// CheckOutResult pairs the completed occupation with its bill.
type CheckOutResult struct {
	Occupation *model.Occupation `json:"occupation"`
	Summary    CheckOutSummary   `json:"summary"`
}

// CompleteCheckOut closes an active stay: it freezes the final figures on the
// occupation, moves the room to CLEANING, invalidates the listing cache and
// notifies housekeeping. A zero percentage selects the house default.
func (m *Manager) CompleteCheckOut(ctx context.Context, occupationID int64, serviceChargePercentage float64) (*CheckOutResult, error) {
	if serviceChargePercentage < 0 {
		return nil, fmt.Errorf("serviceChargePercentage must not be negative: %w", store.ErrInvalidInput)
	}
	if serviceChargePercentage == 0 {
		serviceChargePercentage = billing.DefaultServiceChargePercentage
	}

	var st billing.Statement
	occ, err := m.store.CheckOutOccupation(ctx, occupationID, m.now(),
		func(roomRate, totalConsumption model.Cents) (model.Cents, model.Cents) {
			st = billing.Calculate(roomRate, totalConsumption, serviceChargePercentage)
			return st.ServiceCharge, st.FinalPrice
		})
	if err != nil {
		return nil, err
	}

	m.rooms.Invalidate(ctx)
	if m.notifier != nil {
		m.notifier.Dispatch(occ.RoomID)
	}

	summary := CheckOutSummary{Statement: st}
	for _, c := range occ.Consumptions {
		item := CheckOutItem{
			ProductID:  c.ProductID,
			Quantity:   c.Quantity,
			UnitPrice:  c.UnitPrice,
			TotalPrice: c.TotalPrice,
			Date:       c.CreatedAt,
		}
		if c.Product != nil {
			item.ProductName = c.Product.Name
		}
		summary.Items = append(summary.Items, item)
	}
	return &CheckOutResult{Occupation: occ, Summary: summary}, nil
}

// DeleteOccupation removes a finished stay and its entire ledger. Active
// occupations cannot be deleted.
func (m *Manager) DeleteOccupation(ctx context.Context, id int64) error {
	return m.store.DeleteOccupation(ctx, id)
}

// GetOccupation returns one occupation with room, companions and charges.
func (m *Manager) GetOccupation(ctx context.Context, id int64) (*model.Occupation, error) {
	return m.store.GetOccupation(ctx, id)
}

// ActiveOccupationByRoom returns the room's current stay, if any.
func (m *Manager) ActiveOccupationByRoom(ctx context.Context, roomID int64) (*model.Occupation, error) {
	return m.store.ActiveOccupationByRoom(ctx, roomID)
}

// ListOccupations returns stays matching the filter, newest check-in first.
func (m *Manager) ListOccupations(ctx context.Context, f store.OccupationFilter) ([]model.Occupation, error) {
	if f.Status != nil && !model.ValidOccupationStatus(*f.Status) {
		return nil, fmt.Errorf("unknown occupation status %q: %w", *f.Status, store.ErrInvalidInput)
	}
	return m.store.ListOccupations(ctx, f)
}
