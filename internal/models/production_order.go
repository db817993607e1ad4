package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductionOrder is spawned either directly by a CustomerOrder
// (direct-production and partial-fulfillment scenarios) or by a
// WarehouseOrder whose replenishment needs manufacturing. Exactly one
// of the two parent references is populated.
type ProductionOrder struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	OrderNumber      string         `json:"order_number" gorm:"unique;not null"`
	CustomerOrderID  *uint          `json:"customer_order_id" gorm:"index"`
	WarehouseOrderID *uint          `json:"warehouse_order_id" gorm:"index"`
	Status           string         `json:"status" gorm:"default:'pending'"`
	Notes            string         `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
