package btree

import "fmt"

// ErrInvalidOrder indicates an order outside [1, MaxOrder].
type ErrInvalidOrder struct {
	Order int
}

func (e *ErrInvalidOrder) Error() string {
	return fmt.Sprintf("invalid order: %d", e.Order)
}

// ErrInvalidArenaSize indicates an arena budget too small to hold even a
// single node at the configured order.
type ErrInvalidArenaSize struct {
	Size    int // Configured budget in bytes
	MinSize int // Footprint of one node at the configured order
}

func (e *ErrInvalidArenaSize) Error() string {
	return fmt.Sprintf("invalid arena size: %d bytes (one node needs %d)", e.Size, e.MinSize)
}
