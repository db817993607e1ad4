package services

import "errors"

// Validation errors are rejected immediately and never retried. BOM
// errors abort the enclosing fulfillment action and leave the order in
// its prior state.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no line items")
	ErrOrderTerminal     = errors.New("order is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingBOM        = errors.New("no composition data defined")
)
