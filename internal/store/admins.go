package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-occupancy-backend/internal/model"
)

func (s *gormStore) CreateAdmin(ctx context.Context, a *model.Admin) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("admin with email %q already exists: %w", a.Email, ErrConflict)
		}
		return err
	}
	return nil
}

func (s *gormStore) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %q: %w", email, ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (s *gormStore) AdminByID(ctx context.Context, id int64) (*model.Admin, error) {
	var a model.Admin
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}
