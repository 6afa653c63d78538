package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-occupancy-backend/internal/model"
	"hotel-occupancy-backend/internal/store"
)

type createProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Price       model.Cents `json:"price" binding:"required"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	p := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := h.store.CreateProduct(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListProducts handles GET /api/products with an optional ?category= filter.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateProductRequest struct {
	Name        *string      `json:"name"`
	Price       *model.Cents `json:"price"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
}

// UpdateProduct handles PUT /api/products/:id with a partial body.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	p, err := h.store.UpdateProduct(c.Request.Context(), id, store.ProductUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /api/products/:id. Products referenced by any
// consumption cannot be removed.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
