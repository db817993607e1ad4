package models

import (
	"time"
)

// Setting is a named, slowly-changing configuration value. The database
// row is authoritative; services read it through a cache.
type Setting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SettingName string    `json:"setting_name" gorm:"unique;not null"` // e.g. lot_size_threshold
	IntValue    int       `json:"int_value"`
	StringValue string    `json:"string_value"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const SettingLotSizeThreshold = "lot_size_threshold"

// OrderEvent is one audited row per order creation or status transition.
// Matching webhook subscribers receive a POST with the same payload.
type OrderEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderType   string    `json:"orderType" gorm:"not null;index"`
	OrderID     uint      `json:"orderId" gorm:"not null;index"`
	EventType   string    `json:"eventType" gorm:"not null"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	EventCreated          = "created"
	EventConfirmed        = "confirmed"
	EventClassified       = "classified"
	EventStatusChanged    = "status_changed"
	EventCompleted        = "completed"
	EventCancelled        = "cancelled"
	EventSecondaryFailure = "secondary_failure"
)

// WebhookSubscription registers an external listener. Empty OrderType or
// EventType matches everything.
type WebhookSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	URL       string    `json:"url" gorm:"not null"`
	OrderType string    `json:"order_type"`
	EventType string    `json:"event_type"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
