package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for inventory operations. Domain errors
// are returned as-is and resolved by the central HTTP error handler.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// List handles GET /api/sweets.
//
// @Summary      List all sweets, newest first
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sweetListResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Search handles GET /api/sweets/search.
//
// @Summary      Search sweets by name, category, and price range
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "case-insensitive substring match"
// @Param        category  query     string  false  "case-insensitive exact match"
// @Param        min       query     number  false  "inclusive minimum price"
// @Param        max       query     number  false  "inclusive maximum price"
// @Success      200       {object}  sweetListResponse
// @Failure      401       {object}  messageResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	filter := ports.SearchSweetsFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		MinPrice: parsePrice(c.QueryParam("min")),
		MaxPrice: parsePrice(c.QueryParam("max")),
	}

	sweets, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Add handles POST /api/sweets.
//
// @Summary      Add a new sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addSweetRequest  true  "Sweet details"
// @Success      201   {object}  sweetMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Add(c echo.Context) error {
	var req addSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			"All fields are required: name, category, price, quantity")
	}

	sweet, err := h.service.Add(c.Request().Context(), toAddInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sweetMessageResponse{
		Message: "Sweet added successfully",
		Sweet:   toSweetResponse(sweet),
	})
}

// Update handles PUT /api/sweets/:id.
//
// @Summary      Update a sweet (partial)
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sweetMessageResponse{
		Message: "Sweet updated successfully",
		Sweet:   toSweetResponse(sweet),
	})
}

// Delete handles DELETE /api/sweets/:id.
//
// @Summary      Delete a sweet permanently
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Sweet id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if _, err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet deleted successfully"})
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase a sweet, decrementing stock
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true   "Sweet id"
// @Param        body  body      quantityRequest  false  "Quantity (defaults to 1)"
// @Success      200   {object}  purchaseResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	buyerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	qty, err := bindQuantity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Purchase(c.Request().Context(), ports.PurchaseSweetInput{
		ID:       c.Param("id"),
		Quantity: qty,
		BuyerID:  buyerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchaseResponse{
		Message:   fmt.Sprintf("Successfully purchased %d %s(s)", result.Quantity, result.Sweet.Name),
		Sweet:     toSweetResponse(result.Sweet),
		TotalCost: result.TotalCost,
	})
}

// Restock handles PUT /api/sweets/:id/restock.
//
// @Summary      Restock a sweet, incrementing stock
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true   "Sweet id"
// @Param        body  body      quantityRequest  false  "Quantity (defaults to 1)"
// @Success      200   {object}  sweetMessageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id}/restock [put]
func (h *SweetHandler) Restock(c echo.Context) error {
	qty, err := bindQuantity(c)
	if err != nil {
		return err
	}

	result, err := h.service.Restock(c.Request().Context(), c.Param("id"), qty)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sweetMessageResponse{
		Message: fmt.Sprintf("Successfully restocked %d %s(s)", result.Quantity, result.Sweet.Name),
		Sweet:   toSweetResponse(result.Sweet),
	})
}

// bindQuantity reads an optional {"quantity": n} body. An absent body or an
// omitted field defaults to 1; a body that is present but does not bind (bad
// JSON, non-numeric quantity) is a validation failure, never a silent default.
// Out-of-range numbers pass through so the service can reject them with its
// own validation message.
func bindQuantity(c echo.Context) (int64, error) {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return 0, domain.Invalid("Quantity must be a positive number")
	}
	if req.Quantity == nil {
		return 1, nil
	}
	return *req.Quantity, nil
}

// parsePrice interprets a price bound query parameter. Empty or non-numeric
// values mean "no bound" rather than an error.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
