package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tarun1516/yaakai/domain"
	"github.com/Tarun1516/yaakai/internal/catalog"
)

// CatalogHandlers serves the product card data.
type CatalogHandlers struct {
	catalog *catalog.Catalog
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(cat *catalog.Catalog) *CatalogHandlers {
	return &CatalogHandlers{catalog: cat}
}

func productBody(p domain.Product) gin.H {
	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
	}
}

// List returns all catalog products.
func (h *CatalogHandlers) List(c *gin.Context) {
	products := h.catalog.List()
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, productBody(p))
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"products": out}})
}

// Get returns one product by ID.
func (h *CatalogHandlers) Get(c *gin.Context) {
	p, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": productBody(p)})
}
