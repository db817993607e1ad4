package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkstationKind names the six station types on the shop floor.
type WorkstationKind string

const (
	// Raw-material stages.
	StationMilling WorkstationKind = "milling"
	StationLathing WorkstationKind = "lathing"
	// Assembly stages.
	StationPreAssembly          WorkstationKind = "pre_assembly"
	StationIntermediateAssembly WorkstationKind = "intermediate_assembly"
	StationEndAssembly          WorkstationKind = "end_assembly"
	// Final stage; the only one whose output is a finished product.
	StationFinalAssembly WorkstationKind = "final_assembly"
)

// ProductionStages are the workstation kinds a production control order
// dispatches, in shop-floor sequence.
var ProductionStages = []WorkstationKind{
	StationMilling,
	StationLathing,
	StationPreAssembly,
	StationIntermediateAssembly,
	StationEndAssembly,
}

// WorkstationOrder is the leaf of the hierarchy: one unit of work at one
// station. Its parent is a ControlOrder, or a WarehouseOrder for ad-hoc
// warehouse picking work.
type WorkstationOrder struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	OrderNumber      string `json:"order_number" gorm:"unique;not null"`
	Kind             string `json:"kind" gorm:"not null"`
	ControlOrderID   *uint  `json:"control_order_id" gorm:"index"`
	WarehouseOrderID *uint  `json:"warehouse_order_id" gorm:"index"`
	// Output of this station: the module being built, or the finished
	// product for the final-assembly stage.
	ItemCategory         string         `json:"item_category" gorm:"not null"`
	ItemID               uint           `json:"item_id" gorm:"not null"`
	Quantity             int            `json:"quantity" gorm:"not null"`
	Status               string         `json:"status" gorm:"default:'pending'"`
	Notes                string         `json:"notes" gorm:"type:text"`
	SecondaryFailure     bool           `json:"secondary_failure" gorm:"default:false"`
	SecondaryFailureNote string         `json:"secondary_failure_note"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
