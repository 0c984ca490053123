package app

import (
	"context"
	"net/http"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/ak/tcs/internal/domain/repositories"
	"github.com/ak/tcs/internal/domain/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ==================== Tech card handlers ====================

type SetWeightRequest struct {
	Value float64 `json:"value"`
}

type SetProcessRequest struct {
	ProcessID string `json:"process_id"` // empty clears the process
}

type RescalePreviewRequest struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

func (a *Application) listTechCards(c *gin.Context) {
	page, limit := getPagination(c)
	filter := repositories.TechCardFilter{
		Category: c.Query("category"),
		CardType: c.Query("card_type"),
		Page:     page,
		Limit:    limit,
	}

	cards, total, err := a.techCardService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	paginatedResponse(c, cards, page, limit, total)
}

func (a *Application) createTechCard(c *gin.Context) {
	var req services.CreateTechCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := a.techCardService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	createdResponse(c, card)
}

func (a *Application) getTechCard(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	card, err := a.techCardService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) updateTechCard(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTechCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := a.techCardService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) deleteTechCard(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	if err := a.techCardService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, gin.H{"deleted": true})
}

// ==================== Ingredient line handlers ====================

func (a *Application) addIngredient(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req services.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := a.techCardService.AddIngredient(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) replaceIngredient(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	index, ok := getIndex(c, "index")
	if !ok {
		return
	}

	var req services.IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := a.techCardService.ReplaceIngredient(c.Request.Context(), id, index, req)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) removeIngredient(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	index, ok := getIndex(c, "index")
	if !ok {
		return
	}

	card, err := a.techCardService.RemoveIngredient(c.Request.Context(), id, index)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) setIngredientGrossWeight(c *gin.Context) {
	a.setIngredientWeight(c, a.techCardService.SetIngredientGrossWeight)
}

func (a *Application) setIngredientNetWeight(c *gin.Context) {
	a.setIngredientWeight(c, a.techCardService.SetIngredientNetWeight)
}

func (a *Application) setIngredientWeight(c *gin.Context, set func(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*models.TechCard, error)) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	index, ok := getIndex(c, "index")
	if !ok {
		return
	}

	var req SetWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := set(c.Request.Context(), id, index, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

func (a *Application) setIngredientProcess(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	index, ok := getIndex(c, "index")
	if !ok {
		return
	}

	var req SetProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	card, err := a.techCardService.SetIngredientProcess(c.Request.Context(), id, index, req.ProcessID)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, card)
}

// ==================== Derived report handlers ====================

func (a *Application) getCostSummary(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	summary, err := a.techCardService.CostSummary(c.Request.Context(), id, a.requestLanguage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, summary)
}

func (a *Application) rescalePreview(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}

	var req RescalePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	preview, err := a.techCardService.RescalePreview(c.Request.Context(), id, req.Index, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	successResponse(c, preview)
}

func (a *Application) getPortionQuantities(c *gin.Context) {
	id, ok := getObjectID(c, "id")
	if !ok {
		return
	}
	count, ok := getIndex(c, "count")
	if !ok {
		return
	}
	if count < 1 {
		errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "portion count must be at least 1")
		return
	}

	card, err := a.techCardService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	quantities := make([]float64, len(card.Ingredients))
	for i := range card.Ingredients {
		q, err := card.DisplayedQuantity(i, count)
		if err != nil {
			respondError(c, err)
			return
		}
		quantities[i] = q
	}

	successResponse(c, gin.H{
		"card_id":       card.ID.Hex(),
		"base_portions": card.BasePortions,
		"portions":      count,
		"quantities":    quantities,
	})
}
