package domain

import (
	"errors"
	"fmt"
	"time"
)

// Name length bounds enforced on create and rename.
const (
	MinNameLength = 2
	MaxNameLength = 100
)

var (
	ErrSweetNotFound      = errors.New("sweet not found")
	ErrDuplicateSweetName = errors.New("sweet name already exists")
	ErrInvalidSweetID     = errors.New("invalid sweet id")
	ErrOutOfStock         = errors.New("sweet out of stock")
)

// ValidationError reports a rejected input value. The message is safe to
// return to the client verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Invalid builds a ValidationError with the given client-facing message.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// InsufficientStockError is returned when a purchase requests more units than
// are currently available. Available carries the true remaining quantity so
// the caller can retry with a valid amount.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d available", e.Available)
}

// Sweet is the core inventory item.
type Sweet struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock reports whether at least one unit is available. Derived, never
// persisted.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}
