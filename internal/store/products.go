package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-occupancy-backend/internal/model"
)

func (s *gormStore) CreateProduct(ctx context.Context, p *model.Product) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *gormStore) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	q := s.db.WithContext(ctx).Order("name")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *gormStore) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) UpdateProduct(ctx context.Context, id int64, upd ProductUpdate) (*model.Product, error) {
	var p model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", id, ErrNotFound)
			}
			return err
		}

		updates := map[string]any{}
		if upd.Name != nil {
			updates["name"] = *upd.Name
		}
		if upd.Price != nil {
			updates["price"] = *upd.Price
		}
		if upd.Description != nil {
			updates["description"] = *upd.Description
		}
		if upd.Category != nil {
			updates["category"] = *upd.Category
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&p).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct refuses to remove a product that appears on any ledger:
// consumption rows keep their product reference for the life of the stay.
func (s *gormStore) DeleteProduct(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", id, ErrNotFound)
			}
			return err
		}

		var refs int64
		if err := tx.Model(&model.Consumption{}).
			Where("product_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("product %q has %d recorded consumptions: %w", p.Name, refs, ErrConflict)
		}
		return tx.Delete(&p).Error
	})
}
