package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tarun1516/yaakai/domain"
	"github.com/Tarun1516/yaakai/internal/catalog"
)

// CartHandlers handles cart HTTP requests. Prices come from the
// catalog, never from the request body.
type CartHandlers struct {
	cart    domain.CartStore
	catalog *catalog.Catalog
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(cart domain.CartStore, cat *catalog.Catalog) *CartHandlers {
	return &CartHandlers{cart: cart, catalog: cat}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gte=1"`
}

// UpdateQuantityRequest represents a quantity change. The gte=1 floor
// mirrors the cart page's disabled decrement below 1.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

func cartBody(items []domain.CartItem) gin.H {
	var total int64
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		total += item.Subtotal()
		lines = append(lines, gin.H{
			"id":         item.ID,
			"product_id": item.ProductID,
			"name":       item.Name,
			"price":      item.Price,
			"quantity":   item.Quantity,
			"subtotal":   item.Subtotal(),
		})
	}
	return gin.H{"items": lines, "total": total}
}

// List returns the current cart contents.
func (h *CartHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": cartBody(h.cart.Items())})
}

// Add puts a catalog product into the cart. Cart mutations are
// fire-and-forget from the caller's perspective; the response reflects
// the local state after the operation.
func (h *CartHandlers) Add(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.cart.Add(c.Request.Context(), product.ID, product.Name, product.Price, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"data": cartBody(h.cart.Items())})
}

// UpdateQuantity sets one line's quantity.
func (h *CartHandlers) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		// Backstop for the gte=1 binding above.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cartBody(h.cart.Items())})
}

// Remove drops one line from the cart.
func (h *CartHandlers) Remove(c *gin.Context) {
	h.cart.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"data": cartBody(h.cart.Items())})
}

// Clear empties the cart.
func (h *CartHandlers) Clear(c *gin.Context) {
	h.cart.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": cartBody(h.cart.Items())})
}

// Checkout is a dead-end stub; there is no payment flow.
func (h *CartHandlers) Checkout(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "Checkout is not available yet"})
}
