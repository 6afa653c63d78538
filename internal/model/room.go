package model

import "time"

// RoomType classifies a room's category.
type RoomType string

const (
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeDeluxe   RoomType = "DELUXE"
	RoomTypeSuite    RoomType = "SUITE"
	RoomTypePremium  RoomType = "PREMIUM"
)

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypePremium:
		return true
	}
	return false
}

// RoomStatus is the housekeeping state of a room. Transitions are driven by
// the occupancy lifecycle: AVAILABLE -> RESERVED/OCCUPIED on occupation
// creation, -> CLEANING on checkout. AVAILABLE and MAINTENANCE are reached by
// explicit status updates from staff.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusReserved    RoomStatus = "RESERVED"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusCleaning    RoomStatus = "CLEANING"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
)

// ValidRoomStatus reports whether s is one of the known room statuses.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusReserved, RoomStatusOccupied,
		RoomStatusCleaning, RoomStatusMaintenance:
		return true
	}
	return false
}

// Room represents a hotel room.
type Room struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Number    string     `gorm:"uniqueIndex;size:16;not null" json:"number"`
	Floor     int        `gorm:"not null" json:"floor"`
	Capacity  int        `gorm:"not null" json:"capacity"`
	RoomType  RoomType   `gorm:"size:16;not null" json:"roomType"`
	DailyRate Cents      `gorm:"not null" json:"dailyRate"`
	NightRate Cents      `gorm:"not null" json:"nightRate"`
	Status    RoomStatus `gorm:"size:16;not null;default:AVAILABLE" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Associations
	Occupations []Occupation `gorm:"foreignKey:RoomID" json:"occupations,omitempty"`
}
