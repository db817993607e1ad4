package models

import (
	"time"

	"gorm.io/gorm"
)

type CustomerOrder struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderNumber  string         `json:"order_number" gorm:"unique;not null"`
	CustomerName string         `json:"customer_name" gorm:"not null"`
	LocationID   string         `json:"location_id" gorm:"not null"` // finished-goods store serving this order
	Status       string         `json:"status" gorm:"default:'pending'"`
	Scenario     string         `json:"scenario"` // cached classification, advisory only
	Notes        string         `json:"notes" gorm:"type:text"`
	// SecondaryFailure records a failed inventory side effect that did not
	// block the order's own status transition.
	SecondaryFailure     bool           `json:"secondary_failure" gorm:"default:false"`
	SecondaryFailureNote string         `json:"secondary_failure_note"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
