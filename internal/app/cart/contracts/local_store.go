package contracts

import "context"

// LocalStore is a durable, client-scoped key-value container.
// The cart core owns a single named slot in it.
type LocalStore interface {
	// Get returns the slot value; ok is false when the slot is empty.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put overwrites the slot value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete empties the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context, key string) error
}
