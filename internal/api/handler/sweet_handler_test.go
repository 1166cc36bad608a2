package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-api/internal/api/middleware"
	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// sweetServiceStub records the last call and returns canned results.
type sweetServiceStub struct {
	addInput      ports.AddSweetInput
	updateID      string
	updateInput   ports.UpdateSweetInput
	deleteID      string
	searchFilter  ports.SearchSweetsFilter
	purchaseInput ports.PurchaseSweetInput
	restockID     string
	restockQty    int64

	sweet    *domain.Sweet
	sweets   []*domain.Sweet
	purchase *ports.PurchaseResult
	restock  *ports.RestockResult
	err      error
}

func (s *sweetServiceStub) Add(_ context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	s.addInput = input
	return s.sweet, s.err
}

func (s *sweetServiceStub) List(_ context.Context) ([]*domain.Sweet, error) {
	return s.sweets, s.err
}

func (s *sweetServiceStub) Search(_ context.Context, filter ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	s.searchFilter = filter
	return s.sweets, s.err
}

func (s *sweetServiceStub) Update(_ context.Context, id string, input ports.UpdateSweetInput) (*domain.Sweet, error) {
	s.updateID = id
	s.updateInput = input
	return s.sweet, s.err
}

func (s *sweetServiceStub) Delete(_ context.Context, id string) (*domain.Sweet, error) {
	s.deleteID = id
	return s.sweet, s.err
}

func (s *sweetServiceStub) Purchase(_ context.Context, input ports.PurchaseSweetInput) (*ports.PurchaseResult, error) {
	s.purchaseInput = input
	return s.purchase, s.err
}

func (s *sweetServiceStub) Restock(_ context.Context, id string, qty int64) (*ports.RestockResult, error) {
	s.restockID = id
	s.restockQty = qty
	return s.restock, s.err
}

func sampleSweet() *domain.Sweet {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Sweet{
		ID:        "65a000000000000000000001",
		Name:      "Ladoo",
		Category:  "Indian",
		Price:     25,
		Quantity:  10,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / Search
// ---------------------------------------------------------------------------

func TestSweetHandler_List(t *testing.T) {
	empty := sampleSweet()
	empty.ID = "65a000000000000000000002"
	empty.Name = "Soan Papdi"
	empty.Quantity = 0

	svc := &sweetServiceStub{sweets: []*domain.Sweet{sampleSweet(), empty}}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/api/sweets", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Count  int `json:"count"`
		Sweets []struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			InStock bool   `json:"inStock"`
		} `json:"sweets"`
	}
	decodeBody(t, rec, &body)

	if body.Count != 2 || len(body.Sweets) != 2 {
		t.Fatalf("count = %d, sweets = %d", body.Count, len(body.Sweets))
	}
	if !body.Sweets[0].InStock {
		t.Error("sweet with stock should report inStock=true")
	}
	if body.Sweets[1].InStock {
		t.Error("sweet with zero quantity should report inStock=false")
	}
}

func TestSweetHandler_Search_QueryParsing(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/sweets/search?name=choc&category=cake&min=5&max=20.5", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	f := svc.searchFilter
	if f.Name != "choc" || f.Category != "cake" {
		t.Errorf("filter strings: %+v", f)
	}
	if f.MinPrice == nil || *f.MinPrice != 5 {
		t.Errorf("min price not parsed: %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 20.5 {
		t.Errorf("max price not parsed: %v", f.MaxPrice)
	}
}

func TestSweetHandler_Search_IgnoresNonNumericPrices(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/sweets/search?min=cheap&max=", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if svc.searchFilter.MinPrice != nil || svc.searchFilter.MaxPrice != nil {
		t.Errorf("malformed bounds should be ignored: %+v", svc.searchFilter)
	}
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func TestSweetHandler_Add_Success(t *testing.T) {
	svc := &sweetServiceStub{sweet: sampleSweet()}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/sweets",
		`{"name":"Ladoo","category":"Indian","price":25,"quantity":10}`)
	if err := h.Add(c); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
		Sweet   struct {
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Quantity int64   `json:"quantity"`
		} `json:"sweet"`
	}
	decodeBody(t, rec, &body)

	if body.Message != "Sweet added successfully" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Sweet.Name != "Ladoo" || body.Sweet.Price != 25 || body.Sweet.Quantity != 10 {
		t.Errorf("sweet payload: %+v", body.Sweet)
	}
	if svc.addInput.Name != "Ladoo" || svc.addInput.Quantity != 10 {
		t.Errorf("service received %+v", svc.addInput)
	}
}

func TestSweetHandler_Add_ZeroPriceAndQuantityAreValid(t *testing.T) {
	free := sampleSweet()
	free.Price = 0
	free.Quantity = 0
	svc := &sweetServiceStub{sweet: free}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/api/sweets",
		`{"name":"Sample","category":"free","price":0,"quantity":0}`)
	if err := h.Add(c); err != nil {
		t.Fatalf("explicit zeros must pass validation: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestSweetHandler_Add_MissingFields(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	cases := []struct {
		name string
		body string
	}{
		{"no price", `{"name":"Ladoo","category":"Indian","quantity":10}`},
		{"no quantity", `{"name":"Ladoo","category":"Indian","price":25}`},
		{"no name", `{"category":"Indian","price":25,"quantity":10}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/api/sweets", tc.body)
			err := h.Add(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if he.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", he.Code)
			}
			if he.Message != "All fields are required: name, category, price, quantity" {
				t.Errorf("message = %v", he.Message)
			}
		})
	}
}

func TestSweetHandler_Add_PropagatesDomainErrors(t *testing.T) {
	svc := &sweetServiceStub{err: domain.ErrDuplicateSweetName}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/api/sweets",
		`{"name":"Ladoo","category":"Indian","price":25,"quantity":10}`)
	err := h.Add(c)
	if !errors.Is(err, domain.ErrDuplicateSweetName) {
		t.Fatalf("expected ErrDuplicateSweetName to pass through, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func TestSweetHandler_Update_PartialBody(t *testing.T) {
	updated := sampleSweet()
	updated.Price = 30
	svc := &sweetServiceStub{sweet: updated}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPut, "/api/sweets/65a000000000000000000001",
		`{"price":30}`)
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if svc.updateID != "65a000000000000000000001" {
		t.Errorf("service received id %q", svc.updateID)
	}
	in := svc.updateInput
	if in.Price == nil || *in.Price != 30 {
		t.Errorf("price not forwarded: %v", in.Price)
	}
	if in.Name != nil || in.Category != nil || in.Quantity != nil {
		t.Errorf("absent fields must stay nil: %+v", in)
	}

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Sweet updated successfully" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestSweetHandler_Delete(t *testing.T) {
	svc := &sweetServiceStub{sweet: sampleSweet()}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodDelete, "/api/sweets/65a000000000000000000001", "")
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.deleteID != "65a000000000000000000001" {
		t.Errorf("service received id %q", svc.deleteID)
	}

	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Sweet deleted successfully" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestSweetHandler_Delete_NotFoundPassesThrough(t *testing.T) {
	svc := &sweetServiceStub{err: domain.ErrSweetNotFound}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodDelete, "/api/sweets/65a000000000000000000009", "")
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000009")

	if err := h.Delete(c); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Purchase / Restock
// ---------------------------------------------------------------------------

func TestSweetHandler_Purchase_Success(t *testing.T) {
	after := sampleSweet()
	after.Quantity = 7
	svc := &sweetServiceStub{purchase: &ports.PurchaseResult{
		Sweet: after, Quantity: 3, TotalCost: 75,
	}}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPost,
		"/api/sweets/65a000000000000000000001/purchase", `{"quantity":3}`)
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")
	c.Set(middleware.ContextUserID, "user_42")

	if err := h.Purchase(c); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if svc.purchaseInput.Quantity != 3 || svc.purchaseInput.BuyerID != "user_42" {
		t.Errorf("service received %+v", svc.purchaseInput)
	}

	var body struct {
		Message   string  `json:"message"`
		TotalCost float64 `json:"totalCost"`
		Sweet     struct {
			Quantity int64 `json:"quantity"`
			InStock  bool  `json:"inStock"`
		} `json:"sweet"`
	}
	decodeBody(t, rec, &body)

	if body.Message != "Successfully purchased 3 Ladoo(s)" {
		t.Errorf("message = %q", body.Message)
	}
	if body.TotalCost != 75 {
		t.Errorf("totalCost = %v, want 75", body.TotalCost)
	}
	if body.Sweet.Quantity != 7 || !body.Sweet.InStock {
		t.Errorf("sweet payload: %+v", body.Sweet)
	}
}

func TestSweetHandler_Purchase_DefaultsQuantityToOne(t *testing.T) {
	svc := &sweetServiceStub{purchase: &ports.PurchaseResult{
		Sweet: sampleSweet(), Quantity: 1, TotalCost: 25,
	}}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost,
		"/api/sweets/65a000000000000000000001/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")
	c.Set(middleware.ContextUserID, "user_42")

	if err := h.Purchase(c); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if svc.purchaseInput.Quantity != 1 {
		t.Errorf("empty body should default quantity to 1, got %d", svc.purchaseInput.Quantity)
	}
}

func TestSweetHandler_Purchase_NonNumericQuantityRejected(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	for _, body := range []string{`{"quantity":"abc"}`, `{"quantity":`} {
		c, _ := newTestContext(t, http.MethodPost,
			"/api/sweets/65a000000000000000000001/purchase", body)
		c.SetParamNames("id")
		c.SetParamValues("65a000000000000000000001")
		c.Set(middleware.ContextUserID, "user_42")

		err := h.Purchase(c)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("body %s: expected ValidationError, got %v", body, err)
		}
		if ve.Msg != "Quantity must be a positive number" {
			t.Errorf("body %s: message = %q", body, ve.Msg)
		}
		if svc.purchaseInput.Quantity != 0 {
			t.Errorf("body %s: service must not be called, received quantity %d",
				body, svc.purchaseInput.Quantity)
		}
	}
}

func TestSweetHandler_Restock_NonNumericQuantityRejected(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPut,
		"/api/sweets/65a000000000000000000001/restock", `{"quantity":"many"}`)
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")

	err := h.Restock(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if svc.restockID != "" {
		t.Error("service must not be called for an unbindable body")
	}
}

func TestSweetHandler_Purchase_MissingClaimsRejected(t *testing.T) {
	svc := &sweetServiceStub{}
	h := NewSweetHandler(svc)

	c, _ := newTestContext(t, http.MethodPost,
		"/api/sweets/65a000000000000000000001/purchase", "")
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")
	// No user_id set: the auth gate did not run.

	err := h.Purchase(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSweetHandler_Restock(t *testing.T) {
	after := sampleSweet()
	after.Quantity = 15
	svc := &sweetServiceStub{restock: &ports.RestockResult{Sweet: after, Quantity: 5}}
	h := NewSweetHandler(svc)

	c, rec := newTestContext(t, http.MethodPut,
		"/api/sweets/65a000000000000000000001/restock", `{"quantity":5}`)
	c.SetParamNames("id")
	c.SetParamValues("65a000000000000000000001")

	if err := h.Restock(c); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.restockID != "65a000000000000000000001" || svc.restockQty != 5 {
		t.Errorf("service received id=%q qty=%d", svc.restockID, svc.restockQty)
	}

	var body struct {
		Message string `json:"message"`
		Sweet   struct {
			Quantity int64 `json:"quantity"`
		} `json:"sweet"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Successfully restocked 5 Ladoo(s)" {
		t.Errorf("message = %q", body.Message)
	}
	if body.Sweet.Quantity != 15 {
		t.Errorf("sweet quantity = %d, want 15", body.Sweet.Quantity)
	}
}
