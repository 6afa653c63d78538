package model

import "time"

// PushSubscription holds a housekeeping browser push subscription. Floor
// narrows the subscription to rooms on one floor; zero means every floor.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Floor     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}
