package handler

import "time"

// --- Requests ---

// Price and Quantity are pointers so "missing" and "zero" are distinguishable:
// a zero price is legal, an absent one is a validation error.
type addSweetRequest struct {
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int64   `json:"quantity" validate:"required,gte=0"`
}

type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int64   `json:"quantity"`
}

// quantityRequest is shared by purchase and restock; quantity defaults to 1
// when the body is empty or omits it.
type quantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

// --- Responses ---

type sweetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	InStock   bool      `json:"inStock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type sweetListResponse struct {
	Count  int             `json:"count"`
	Sweets []sweetResponse `json:"sweets"`
}

type sweetMessageResponse struct {
	Message string        `json:"message"`
	Sweet   sweetResponse `json:"sweet"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type purchaseResponse struct {
	Message   string        `json:"message"`
	Sweet     sweetResponse `json:"sweet"`
	TotalCost float64       `json:"totalCost"`
}
