package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-occupancy-backend/internal/model"
)

// CreateOccupation opens a stay and moves the room to roomStatus in one
// transaction. The room row is locked first, so the no-active-occupation
// check and the insert execute as a unit; the partial unique index on
// occupations(room_id) catches anything that slips through on dialects
// without row locks.
func (s *gormStore) CreateOccupation(ctx context.Context, occ *model.Occupation, roomStatus model.RoomStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := lockForUpdate(tx).First(&room, occ.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room %d: %w", occ.RoomID, ErrNotFound)
			}
			return err
		}

		var active int64
		if err := tx.Model(&model.Occupation{}).
			Where("room_id = ? AND status = ?", occ.RoomID, model.OccupationStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("room %s already has an active occupation: %w", room.Number, ErrConflict)
		}

		occ.Status = model.OccupationStatusActive
		// Companions attached to the struct are inserted in the same
		// statement batch, atomically with the occupation.
		if err := tx.Create(occ).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("room %s already has an active occupation: %w", room.Number, ErrConflict)
			}
			return err
		}

		return tx.Model(&room).Update("status", roomStatus).Error
	})
}

func (s *gormStore) GetOccupation(ctx context.Context, id int64) (*model.Occupation, error) {
	var occ model.Occupation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Preload("Companions").
		Preload("Consumptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Consumptions.Product").
		First(&occ, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("occupation %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &occ, nil
}

func (s *gormStore) ActiveOccupationByRoom(ctx context.Context, roomID int64) (*model.Occupation, error) {
	var occ model.Occupation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Preload("Companions").
		Preload("Consumptions.Product").
		Where("room_id = ? AND status = ?", roomID, model.OccupationStatusActive).
		First(&occ).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no active occupation for room %d: %w", roomID, ErrNotFound)
		}
		return nil, err
	}
	return &occ, nil
}

func (s *gormStore) ListOccupations(ctx context.Context, f OccupationFilter) ([]model.Occupation, error) {
	q := s.db.WithContext(ctx).
		Preload("Room").
		Preload("Companions").
		Preload("Consumptions.Product").
		Order("check_in_date DESC")
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	var occs []model.Occupation
	if err := q.Find(&occs).Error; err != nil {
		return nil, err
	}
	return occs, nil
}

// AddConsumption appends a charge and re-derives the occupation's total in
// one transaction holding the occupation row, so a concurrently appended
// charge can never be missing from the committed total.
func (s *gormStore) AddConsumption(ctx context.Context, cons *model.Consumption) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var occ model.Occupation
		if err := lockForUpdate(tx).First(&occ, cons.OccupationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("occupation %d: %w", cons.OccupationID, ErrNotFound)
			}
			return err
		}
		if occ.Status != model.OccupationStatusActive {
			return fmt.Errorf("occupation %d is %s: %w", occ.ID, occ.Status, ErrInvalidState)
		}

		var product model.Product
		if err := tx.First(&product, cons.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", cons.ProductID, ErrNotFound)
			}
			return err
		}

		cons.TotalPrice = model.Cents(cons.Quantity) * cons.UnitPrice
		if err := s.ledger.Append(tx, cons); err != nil {
			return err
		}

		total, err := s.ledger.Sum(tx, cons.OccupationID)
		if err != nil {
			return err
		}
		if err := tx.Model(&occ).Update("total_consumption", total).Error; err != nil {
			return err
		}

		cons.Product = &product
		return nil
	})
}

// CheckOutOccupation closes a stay: it freezes the checkout figures computed
// by price, marks the occupation COMPLETED and sends the room to CLEANING.
// Both rows commit together or not at all.
func (s *gormStore) CheckOutOccupation(ctx context.Context, id int64, now time.Time, price PriceFunc) (*model.Occupation, error) {
	var occ model.Occupation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&occ, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("occupation %d: %w", id, ErrNotFound)
			}
			return err
		}
		if occ.Status != model.OccupationStatusActive {
			return fmt.Errorf("occupation %d is %s: %w", occ.ID, occ.Status, ErrInvalidState)
		}

		serviceCharge, finalPrice := price(occ.RoomRate, occ.TotalConsumption)
		if err := tx.Model(&occ).Updates(map[string]any{
			"check_out_date": now,
			"service_charge": serviceCharge,
			"final_price":    finalPrice,
			"status":         model.OccupationStatusCompleted,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Room{}).Where("id = ?", occ.RoomID).
			Update("status", model.RoomStatusCleaning).Error; err != nil {
			return err
		}

		// Reload with charges and products for the itemized summary.
		return tx.
			Preload("Room").
			Preload("Companions").
			Preload("Consumptions", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at")
			}).
			Preload("Consumptions.Product").
			First(&occ, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

// DeleteOccupation removes a non-active stay together with its ledger and
// companions.
func (s *gormStore) DeleteOccupation(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var occ model.Occupation
		if err := lockForUpdate(tx).First(&occ, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("occupation %d: %w", id, ErrNotFound)
			}
			return err
		}
		if occ.Status == model.OccupationStatusActive {
			return fmt.Errorf("occupation %d is still active: %w", id, ErrInvalidState)
		}

		if err := s.ledger.Purge(tx, id); err != nil {
			return err
		}
		if err := tx.Where("occupation_id = ?", id).Delete(&model.Companion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&occ).Error
	})
}
