package ordex

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ordex/btree"
)

var (
	// ErrArenaExhausted is returned by Insert when the node budget fixed
	// at construction time is spent. The condition is permanent: the
	// arena cannot grow and never reclaims space. Previously inserted
	// keys remain searchable.
	ErrArenaExhausted = errors.New("arena exhausted")

	// ErrClosed is returned when operating on a closed index.
	ErrClosed = errors.New("index is closed")
)

// ErrInvalidOrder indicates an invalid configured fanout.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidOrder struct {
	Order int
	cause error
}

func (e *ErrInvalidOrder) Error() string {
	return fmt.Sprintf("invalid order: %d", e.Order)
}

func (e *ErrInvalidOrder) Unwrap() error { return e.cause }

// ErrInvalidArenaSize indicates an arena budget too small to hold a
// single node at the configured order.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidArenaSize struct {
	Size  int
	cause error
}

func (e *ErrInvalidArenaSize) Error() string {
	return fmt.Sprintf("invalid arena size: %d", e.Size)
}

func (e *ErrInvalidArenaSize) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, btree.ErrArenaExhausted) {
		return fmt.Errorf("%w: %w", ErrArenaExhausted, err)
	}

	var io *btree.ErrInvalidOrder
	if errors.As(err, &io) {
		return &ErrInvalidOrder{Order: io.Order, cause: err}
	}
	var ia *btree.ErrInvalidArenaSize
	if errors.As(err, &ia) {
		return &ErrInvalidArenaSize{Size: ia.Size, cause: err}
	}

	return err
}
