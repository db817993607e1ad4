package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderLineItem belongs to one order of any level, identified by
// (OrderType, OrderID). FulfilledQuantity only ever grows and never
// exceeds Quantity.
type OrderLineItem struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	OrderType         string `json:"order_type" gorm:"not null;index:idx_line_item_owner"`
	OrderID           uint   `json:"order_id" gorm:"not null;index:idx_line_item_owner"`
	ItemCategory      string `json:"item_category" gorm:"not null"`
	ItemID            uint   `json:"item_id" gorm:"not null"`
	Quantity          int    `json:"quantity" gorm:"not null"`
	FulfilledQuantity int    `json:"fulfilled_quantity" gorm:"default:0"`
	// Provenance back to the product this line was derived from, used to
	// re-attach module replenishment to final-assembly creation.
	SourceProductID  *uint          `json:"source_product_id"`
	SourceProductQty int            `json:"source_product_qty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
