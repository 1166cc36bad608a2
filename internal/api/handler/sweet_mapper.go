package handler

import (
	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// --- Request → Service input ---

func toAddInput(req addSweetRequest) ports.AddSweetInput {
	return ports.AddSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	}
}

func toUpdateInput(req updateSweetRequest) ports.UpdateSweetInput {
	return ports.UpdateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
}

// --- Domain → HTTP response ---

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Quantity:  s.Quantity,
		InStock:   s.InStock(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSweetListResponse(sweets []*domain.Sweet) sweetListResponse {
	items := make([]sweetResponse, 0, len(sweets))
	for _, s := range sweets {
		items = append(items, toSweetResponse(s))
	}
	return sweetListResponse{Count: len(items), Sweets: items}
}
