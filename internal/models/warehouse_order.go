package models

import (
	"time"

	"gorm.io/gorm"
)

// WarehouseOrder replenishes module stock for a customer order. Its line
// items are modules carrying provenance links back to the products they
// were resolved from.
type WarehouseOrder struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderNumber     string         `json:"order_number" gorm:"unique;not null"`
	CustomerOrderID *uint          `json:"customer_order_id" gorm:"index"`
	LocationID      string         `json:"location_id" gorm:"not null"` // module store
	Status          string         `json:"status" gorm:"default:'pending'"`
	Notes           string         `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
