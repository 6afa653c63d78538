package model

import "time"

// Admin is a staff account allowed to operate the API.
type Admin struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}
