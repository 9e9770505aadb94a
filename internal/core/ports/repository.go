package ports

import "context"

// SlotStore is a durable key-value slot. Read returns exceptions.ErrSlotEmpty when the key
// holds nothing yet.
type SlotStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}
