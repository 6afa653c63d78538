package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-occupancy-backend/internal/model"
)

// PriceFunc computes the checkout charges from the occupation's rate snapshot
// and accumulated consumption. The lifecycle manager supplies it so pricing
// policy stays out of the persistence layer while the numbers are still
// derived from the row read under lock.
type PriceFunc func(roomRate, totalConsumption model.Cents) (serviceCharge, finalPrice model.Cents)

// OccupationFilter narrows ListOccupations.
type OccupationFilter struct {
	Status *model.OccupationStatus
	RoomID *int64
}

// RoomUpdate carries the mutable room fields; nil members are left untouched.
type RoomUpdate struct {
	Number    *string
	Floor     *int
	Capacity  *int
	RoomType  *model.RoomType
	DailyRate *model.Cents
	NightRate *model.Cents
	Status    *model.RoomStatus
}

// ProductUpdate carries the mutable product fields; nil members are left
// untouched.
type ProductUpdate struct {
	Name        *string
	Price       *model.Cents
	Description *string
	Category    *string
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context, status *model.RoomStatus) ([]model.Room, error)
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	UpdateRoom(ctx context.Context, id int64, upd RoomUpdate) (*model.Room, error)
	DeleteRoom(ctx context.Context, id int64) error

	CreateOccupation(ctx context.Context, occ *model.Occupation, roomStatus model.RoomStatus) error
	GetOccupation(ctx context.Context, id int64) (*model.Occupation, error)
	ActiveOccupationByRoom(ctx context.Context, roomID int64) (*model.Occupation, error)
	ListOccupations(ctx context.Context, f OccupationFilter) ([]model.Occupation, error)
	AddConsumption(ctx context.Context, cons *model.Consumption) error
	CheckOutOccupation(ctx context.Context, id int64, now time.Time, price PriceFunc) (*model.Occupation, error)
	DeleteOccupation(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, p *model.Product) error
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateAdmin(ctx context.Context, a *model.Admin) error
	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	AdminByID(ctx context.Context, id int64) (*model.Admin, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db     *gorm.DB
	ledger ConsumptionLedger
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for wiring that predates the interface
// (subscription handlers, notification worker).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// lockForUpdate adds a row lock on dialects that support it. sqlite allows a
// single writer per database, so its transactions already serialize these
// sections and FOR UPDATE is not in its grammar.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if room.Status == "" {
		room.Status = model.RoomStatusAvailable
	}
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("room number %q already exists: %w", room.Number, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *gormStore) ListRooms(ctx context.Context, status *model.RoomStatus) ([]model.Room, error) {
	q := s.db.WithContext(ctx).
		Preload("Occupations", "status = ?", model.OccupationStatusActive).
		Order("number")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var rooms []model.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).
		Preload("Occupations", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in_date DESC")
		}).
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) UpdateRoom(ctx context.Context, id int64, upd RoomUpdate) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", id, ErrNotFound)
			}
			return err
		}

		updates := map[string]any{}
		if upd.Number != nil {
			updates["number"] = *upd.Number
		}
		if upd.Floor != nil {
			updates["floor"] = *upd.Floor
		}
		if upd.Capacity != nil {
			updates["capacity"] = *upd.Capacity
		}
		if upd.RoomType != nil {
			updates["room_type"] = *upd.RoomType
		}
		if upd.DailyRate != nil {
			updates["daily_rate"] = *upd.DailyRate
		}
		if upd.NightRate != nil {
			updates["night_rate"] = *upd.NightRate
		}
		if upd.Status != nil {
			updates["status"] = *upd.Status
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("room number already exists: %w", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) DeleteRoom(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := lockForUpdate(tx).First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", id, ErrNotFound)
			}
			return err
		}

		var active int64
		if err := tx.Model(&model.Occupation{}).
			Where("room_id = ? AND status = ?", id, model.OccupationStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("room %s has an active occupation: %w", room.Number, ErrConflict)
		}

		// Completed stays go with the room, bottom-up so no foreign key is
		// left dangling mid-transaction.
		occIDs := tx.Model(&model.Occupation{}).Select("id").Where("room_id = ?", id)
		if err := tx.Where("occupation_id IN (?)", occIDs).Delete(&model.Consumption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("occupation_id IN (?)", occIDs).Delete(&model.Companion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.Occupation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&room).Error
	})
}
