package models

import (
	"fmt"
	"time"
)

// OrderStatus is shared by all five order levels.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAssigned   OrderStatus = "assigned"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusHalted     OrderStatus = "halted"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// allowedTransitions encodes the per-level state machine:
// pending|assigned -> in_progress -> completed|halted|cancelled,
// with halted resumable back to in_progress.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusAssigned, StatusInProgress, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusHalted, StatusCancelled},
	StatusHalted:     {StatusInProgress, StatusCancelled},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ScenarioTag is the fulfillment strategy derived from stock availability
// and order size. It is cached on the order for operator display but is
// always re-derived before execution.
type ScenarioTag string

const (
	ScenarioDirectFulfillment  ScenarioTag = "direct_fulfillment"
	ScenarioWarehouseOrder     ScenarioTag = "warehouse_order_needed"
	ScenarioDirectProduction   ScenarioTag = "direct_production"
	ScenarioPartialFulfillment ScenarioTag = "partial_fulfillment"
)

// ItemCategory is the abstraction level of an item in the bill of materials.
type ItemCategory string

const (
	CategoryProduct ItemCategory = "product"
	CategoryModule  ItemCategory = "module"
	CategoryPart    ItemCategory = "part"
)

// OrderType identifies an order level for polymorphic references
// (line items, audit events, webhook filters).
type OrderType string

const (
	TypeCustomerOrder    OrderType = "customer_order"
	TypeWarehouseOrder   OrderType = "warehouse_order"
	TypeProductionOrder  OrderType = "production_order"
	TypeControlOrder     OrderType = "control_order"
	TypeWorkstationOrder OrderType = "workstation_order"
)

// NewOrderNumber builds a unique human-readable order number such as
// "CO-20260827-1724318530123456789".
func NewOrderNumber(prefix string) string {
	now := time.Now()
	return fmt.Sprintf("%s-%s-%d", prefix, now.Format("20060102"), now.UnixNano())
}
