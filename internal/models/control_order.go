package models

import (
	"time"

	"gorm.io/gorm"
)

type ControlOrderVariant string

const (
	ControlProduction ControlOrderVariant = "production"
	ControlAssembly   ControlOrderVariant = "assembly"
)

// ControlOrder groups the workstation orders for one module. The
// production variant hangs under a ProductionOrder; the assembly variant
// is the final-assembly order created at the warehouse-order join point
// and hangs under a WarehouseOrder directly.
type ControlOrder struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	OrderNumber       string `json:"order_number" gorm:"unique;not null"`
	Variant           string `json:"variant" gorm:"not null"`
	ProductionOrderID *uint  `json:"production_order_id" gorm:"index"`
	WarehouseOrderID  *uint  `json:"warehouse_order_id" gorm:"index"`
	// What this control order produces once all its workstation orders
	// are complete.
	ItemCategory string         `json:"item_category" gorm:"not null"`
	ItemID       uint           `json:"item_id" gorm:"not null"`
	Quantity     int            `json:"quantity" gorm:"not null"`
	Status       string         `json:"status" gorm:"default:'pending'"`
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
