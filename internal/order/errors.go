package order

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var (
	ErrNotFound            = errors.New("order not found")
	ErrIdempotencyConflict = errors.New("order already placed")
	ErrConflict            = errors.New("order was changed concurrently")
	ErrInvalidBucket       = errors.New("unknown order bucket")
)

// DuplicateError carries the order a repeated submission resolved to. OrderID
// is empty when the original could not be looked up.
type DuplicateError struct {
	OrderID string
}

func (e *DuplicateError) Error() string {
	if e.OrderID == "" {
		return ErrIdempotencyConflict.Error()
	}
	return fmt.Sprintf("%s: %s", ErrIdempotencyConflict, e.OrderID)
}

func (e *DuplicateError) Unwrap() error { return ErrIdempotencyConflict }

// ConflictError reports that the order left the expected status between the
// read and the write. It matches both ErrConflict and
// lifecycle.ErrInvalidTransition.
type ConflictError struct {
	OrderID string
	Current model.OrderStatus
	Event   lifecycle.Event
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: order %s is now %s, cannot %s", ErrConflict, e.OrderID, e.Current, e.Event)
}

func (e *ConflictError) Unwrap() []error {
	return []error{ErrConflict, lifecycle.ErrInvalidTransition}
}
