package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// AddSweetInput carries all data needed to create a new sweet.
type AddSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int64
}

// UpdateSweetInput is a partial update; nil fields are left unchanged.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
}

// PurchaseSweetInput identifies the sweet, the requested quantity, and the
// buying account (for the audit log only).
type PurchaseSweetInput struct {
	ID       string
	Quantity int64
	BuyerID  string
}

// PurchaseResult is returned by a successful purchase.
type PurchaseResult struct {
	Sweet     *domain.Sweet
	Quantity  int64
	TotalCost float64
}

// RestockResult is returned by a successful restock.
type RestockResult struct {
	Sweet    *domain.Sweet
	Quantity int64
}

// SweetService defines the inventory use cases.
type SweetService interface {
	Add(ctx context.Context, input AddSweetInput) (*domain.Sweet, error)
	List(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SearchSweetsFilter) ([]*domain.Sweet, error)
	Update(ctx context.Context, id string, input UpdateSweetInput) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) (*domain.Sweet, error)
	Purchase(ctx context.Context, input PurchaseSweetInput) (*PurchaseResult, error)
	Restock(ctx context.Context, id string, qty int64) (*RestockResult, error)
}
