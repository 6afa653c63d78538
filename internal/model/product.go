package model

import "time"

// Product is a catalog item that can be charged to an occupation.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Price       Cents     `gorm:"not null" json:"price"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	Category    string    `gorm:"size:64;index" json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Consumption is one line-item charge (product x quantity x unit price) on an
// occupation's ledger. Rows are append-only: they are never updated and are
// removed only en masse when the owning occupation is deleted.
type Consumption struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	OccupationID int64     `gorm:"index;not null" json:"occupationId"`
	ProductID    int64     `gorm:"index;not null" json:"productId"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    Cents     `gorm:"not null" json:"unitPrice"`
	TotalPrice   Cents     `gorm:"not null" json:"totalPrice"`
	CreatedAt    time.Time `json:"createdAt"`

	// Associations
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
