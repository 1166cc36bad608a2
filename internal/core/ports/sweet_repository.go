package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// SearchSweetsFilter carries the optional search criteria. All set filters
// are combined with AND.
type SearchSweetsFilter struct {
	Name     string   // case-insensitive substring match
	Category string   // case-insensitive exact match
	MinPrice *float64 // inclusive lower bound, nil = unbounded
	MaxPrice *float64 // inclusive upper bound, nil = unbounded
}

// SweetUpdate holds a partial update; nil fields are left untouched.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// SweetRepository defines persistence operations for sweets.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	// FindByID returns domain.ErrInvalidSweetID for a malformed id and
	// domain.ErrSweetNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// FindByName matches the name case-insensitively and exactly.
	FindByName(ctx context.Context, name string) (*domain.Sweet, error)
	// List returns all sweets ordered newest-created-first.
	List(ctx context.Context) ([]*domain.Sweet, error)
	// Search returns matching sweets ordered by name ascending.
	Search(ctx context.Context, filter SearchSweetsFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, upd SweetUpdate) (*domain.Sweet, error)
	// Delete removes the record and returns it.
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
	// DecrementQuantity atomically subtracts qty when at least qty units are
	// available; otherwise it returns *domain.InsufficientStockError with the
	// true remaining quantity. The check and the write are a single store
	// operation so concurrent purchases cannot oversell.
	DecrementQuantity(ctx context.Context, id string, qty int64) (*domain.Sweet, error)
	// IncrementQuantity atomically adds qty.
	IncrementQuantity(ctx context.Context, id string, qty int64) (*domain.Sweet, error)
}
