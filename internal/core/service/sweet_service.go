package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
	"github.com/sweetshop/sweetshop-api/internal/metrics"
)

// SweetService implements the inventory use cases over a SweetRepository.
type SweetService struct {
	repo   ports.SweetRepository
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, logger: logger}
}

// Add creates a new sweet after validating fields and name uniqueness.
func (s *SweetService) Add(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)

	if name == "" || category == "" {
		return nil, domain.Invalid("All fields are required: name, category, price, quantity")
	}
	if err := validateSweetFields(name, input.Price, input.Quantity); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateSweetName
	} else if !errors.Is(err, domain.ErrSweetNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:     name,
		Category: category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create sweet")
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(category).Inc()
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet added")
	return created, nil
}

// List returns every sweet, newest first.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.List(ctx)
}

// Search returns sweets matching the filter, ordered by name ascending.
func (s *SweetService) Search(ctx context.Context, filter ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.Search(ctx, filter)
}

// Update applies a partial update. Validators re-run on every supplied field
// and a rename is checked for case-insensitive collisions with other sweets.
func (s *SweetService) Update(ctx context.Context, id string, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := ports.SweetUpdate{Price: input.Price, Quantity: input.Quantity}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < domain.MinNameLength {
			return nil, domain.Invalid("Name must be at least 2 characters")
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.Invalid("Name cannot exceed 100 characters")
		}
		dup, err := s.repo.FindByName(ctx, name)
		if err == nil && dup.ID != existing.ID {
			return nil, domain.ErrDuplicateSweetName
		}
		if err != nil && !errors.Is(err, domain.ErrSweetNotFound) {
			return nil, err
		}
		upd.Name = &name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.Invalid("Category is required")
		}
		upd.Category = &category
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domain.Invalid("Price cannot be negative")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, domain.Invalid("Quantity cannot be negative")
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

// Delete removes a sweet permanently and returns the removed record.
func (s *SweetService) Delete(ctx context.Context, id string) (*domain.Sweet, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", id).Str("name", deleted.Name).Msg("sweet deleted")
	return deleted, nil
}

// Purchase decrements stock by the requested quantity. The decrement is a
// single conditional store operation, so two racing purchases can never
// combine to oversell.
func (s *SweetService) Purchase(ctx context.Context, input ports.PurchaseSweetInput) (*ports.PurchaseResult, error) {
	if input.Quantity <= 0 {
		return nil, domain.Invalid("Quantity must be a positive number")
	}

	sweet, err := s.repo.DecrementQuantity(ctx, input.ID, input.Quantity)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			if insufficient.Available == 0 {
				metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
				return nil, domain.ErrOutOfStock
			}
			metrics.PurchasesTotal.WithLabelValues("insufficient_stock").Inc()
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	metrics.UnitsPurchasedTotal.Add(float64(input.Quantity))
	s.logger.Info().
		Str("sweet_id", sweet.ID).
		Str("buyer_id", input.BuyerID).
		Int64("quantity", input.Quantity).
		Int64("remaining", sweet.Quantity).
		Msg("sweet purchased")

	return &ports.PurchaseResult{
		Sweet:     sweet,
		Quantity:  input.Quantity,
		TotalCost: float64(input.Quantity) * sweet.Price,
	}, nil
}

// Restock increments stock by the requested quantity. No upper bound.
func (s *SweetService) Restock(ctx context.Context, id string, qty int64) (*ports.RestockResult, error) {
	if qty <= 0 {
		return nil, domain.Invalid("Quantity must be a positive number")
	}

	sweet, err := s.repo.IncrementQuantity(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	metrics.UnitsRestockedTotal.Add(float64(qty))
	s.logger.Info().
		Str("sweet_id", sweet.ID).
		Int64("quantity", qty).
		Int64("in_stock", sweet.Quantity).
		Msg("sweet restocked")

	return &ports.RestockResult{Sweet: sweet, Quantity: qty}, nil
}

func validateSweetFields(name string, price float64, quantity int64) error {
	if len(name) < domain.MinNameLength {
		return domain.Invalid("Name must be at least 2 characters")
	}
	if len(name) > domain.MaxNameLength {
		return domain.Invalid("Name cannot exceed 100 characters")
	}
	if price < 0 {
		return domain.Invalid("Price cannot be negative")
	}
	if quantity < 0 {
		return domain.Invalid("Quantity cannot be negative")
	}
	return nil
}
