package app

import (
	"net/http"

	"github.com/ak/tcs/internal/domain/repositories"
	"github.com/ak/tcs/internal/domain/services"
	"github.com/gin-gonic/gin"
)

// ==================== Product handlers ====================

func (a *Application) listProducts(c *gin.Context) {
	page, limit := getPagination(c)
	filter := repositories.ProductFilter{
		Category:   c.Query("category"),
		ActiveOnly: c.DefaultQuery("active_only", "true") == "true",
		Page:       page,
		Limit:      limit,
	}

	products, total, err := a.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	paginatedResponse(c, products, page, limit, total)
}

func (a *Application) createProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	product, err := a.productService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	createdResponse(c, product)
}

func (a *Application) getProduct(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	product, err := a.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, product)
}

func (a *Application) updateProduct(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	product, err := a.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, product)
}

func (a *Application) deleteProduct(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}
