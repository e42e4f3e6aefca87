package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("product ID is required")
	ErrInvalidPrice     = errors.New("product price must not be negative")
	ErrInvalidSize      = errors.New("size is not offered for this product")

	// Item errors
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidItemID   = errors.New("invalid cart item ID")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrDuplicateItem   = errors.New("cart already has an item for this product and size")
	ErrWrongBackend    = errors.New("item is not owned by this backend")

	// Store errors
	ErrRemoteUnavailable = errors.New("remote cart service unavailable")
	ErrUnauthenticated   = errors.New("remote cart requires an authenticated session")
)

// TransportError reports a failed or timed-out Remote Cart Service call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every transport failure match ErrRemoteUnavailable.
func (e *TransportError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// SyncError reports that an operation's in-memory transition was applied
// but a backing store could not be brought in line with it.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("cart %s applied locally, store sync failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// NewSyncError wraps err, returning nil when err is nil.
func NewSyncError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SyncError{Op: op, Err: err}
}

// IsSyncError reports whether err means "state changed, store lagging".
func IsSyncError(err error) bool {
	var syncErr *SyncError
	return errors.As(err, &syncErr)
}
