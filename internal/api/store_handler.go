package api

import (
	"net/http"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreHandler holds the store service dependency.
type StoreHandler struct {
	storeService service.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// --- Request/Response Structs ---

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       int      `json:"price" binding:"min=0"`
	Category    string   `json:"category" binding:"required,oneof=NEW POPULAR FOOD EQUIPMENT"`
	Link        string   `json:"link"`
	Images      []string `json:"images"`
}

type ProductResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Price       int                    `json:"price"`
	Category    domain.ProductCategory `json:"category"`
	Link        string                 `json:"link,omitempty"`
	Images      []string               `json:"images"`
}

// --- Handler Methods ---

// Create adds a store product.
func (h *StoreHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.storeService.Create(c.Request.Context(), mapProductInput(req))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProductToResponse(product))
}

// GetByID returns one product.
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProductToResponse(product))
}

// List returns products, optionally filtered by category, paged.
func (h *StoreHandler) List(c *gin.Context) {
	page, size, ok := pagination(c)
	if !ok {
		return
	}

	category := domain.ProductCategory(c.Query("category"))

	products, total, err := h.storeService.List(c.Request.Context(), category, page, size)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = MapProductToResponse(&products[i])
	}
	c.JSON(http.StatusOK, PageResponse{Items: items, Total: total, Page: page, Size: size})
}

// Update rewrites a product.
func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.storeService.Update(c.Request.Context(), id, mapProductInput(req))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProductToResponse(product))
}

// Delete removes a product.
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func mapProductInput(req ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.ProductCategory(req.Category),
		Link:        req.Link,
		Images:      req.Images,
	}
}

// MapProductToResponse converts a domain Product to its DTO.
func MapProductToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Link:        product.Link,
		Images:      product.Images,
	}
}
