package model

import "time"

// OccupationStatus is the lifecycle state of a stay. CANCELLED is reserved:
// no operation currently sets it, but filters and the schema accept it.
type OccupationStatus string

const (
	OccupationStatusActive    OccupationStatus = "ACTIVE"
	OccupationStatusCompleted OccupationStatus = "COMPLETED"
	OccupationStatusCancelled OccupationStatus = "CANCELLED"
)

// ValidOccupationStatus reports whether s is one of the known statuses.
func ValidOccupationStatus(s OccupationStatus) bool {
	switch s {
	case OccupationStatusActive, OccupationStatusCompleted, OccupationStatusCancelled:
		return true
	}
	return false
}

// Occupation is one stay of a responsible guest (plus optional companions) in
// a room, from check-in until checkout or deletion.
//
// RoomRate snapshots the rate agreed at creation and never changes afterwards.
// TotalConsumption is a materialized copy of the consumption ledger sum; it is
// always re-derived from the ledger on write, never incremented in place.
// The partial unique index on RoomID enforces at most one ACTIVE occupation
// per room at the database level, so a racing create loses with a constraint
// violation instead of slipping past the application check.
type Occupation struct {
	ID                   int64            `gorm:"primaryKey" json:"id"`
	RoomID               int64            `gorm:"not null;index:idx_occupations_one_active,unique,where:status = 'ACTIVE'" json:"roomId"`
	ResponsibleName      string           `gorm:"size:128;not null" json:"responsibleName"`
	ResponsibleDocument  string           `gorm:"size:32;not null" json:"responsibleDocument"`
	ResponsiblePhone     string           `gorm:"size:32;not null" json:"responsiblePhone"`
	ResponsibleBirthDate time.Time        `gorm:"not null" json:"responsibleBirthDate"`
	VehiclePlate         string           `gorm:"size:16" json:"vehiclePlate,omitempty"`
	CheckInDate          time.Time        `gorm:"not null;index" json:"checkInDate"`
	ExpectedCheckOut     time.Time        `gorm:"not null" json:"expectedCheckOut"`
	CheckOutDate         *time.Time       `json:"checkOutDate,omitempty"`
	RoomRate             Cents            `gorm:"not null" json:"roomRate"`
	InitialConsumption   Cents            `gorm:"not null;default:0" json:"initialConsumption"`
	TotalConsumption     Cents            `gorm:"not null;default:0" json:"totalConsumption"`
	ServiceCharge        *Cents           `json:"serviceCharge,omitempty"`
	FinalPrice           *Cents           `json:"finalPrice,omitempty"`
	Status               OccupationStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`

	// Associations
	Room         *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Companions   []Companion   `gorm:"foreignKey:OccupationID;constraint:OnDelete:CASCADE" json:"companions"`
	Consumptions []Consumption `gorm:"foreignKey:OccupationID" json:"consumptions,omitempty"`
}

// Companion is an additional adult guest attached to an occupation. Companions
// are created atomically with their occupation and never mutated.
type Companion struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	OccupationID int64     `gorm:"index;not null" json:"occupationId"`
	Name         string    `gorm:"size:128;not null" json:"name"`
	Document     string    `gorm:"size:32;not null" json:"document"`
	BirthDate    time.Time `gorm:"not null" json:"birthDate"`
	CreatedAt    time.Time `json:"createdAt"`
}
