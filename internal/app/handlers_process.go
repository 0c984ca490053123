package app

import (
	"net/http"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/gin-gonic/gin"
)

// ==================== Cooking process handlers ====================

// ProcessView is the presentation shape of a catalog entry: the canonical
// fields plus the resolved display name for the requested language.
type ProcessView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	DisplayName       string  `json:"display_name"`
	CalorieMultiplier float64 `json:"calorie_multiplier"`
	ProteinMultiplier float64 `json:"protein_multiplier"`
	FatMultiplier     float64 `json:"fat_multiplier"`
	CarbsMultiplier   float64 `json:"carbs_multiplier"`
	WeightLossPercent float64 `json:"weight_loss_percent"`
}

func processView(p models.CookingProcess, lang models.LanguageCode) ProcessView {
	return ProcessView{
		ID:                p.ID,
		Name:              p.Name,
		DisplayName:       p.DisplayName(lang),
		CalorieMultiplier: p.CalorieMultiplier,
		ProteinMultiplier: p.ProteinMultiplier,
		FatMultiplier:     p.FatMultiplier,
		CarbsMultiplier:   p.CarbsMultiplier,
		WeightLossPercent: p.WeightLossPercent,
	}
}

func (a *Application) listProcesses(c *gin.Context) {
	lang := a.requestLanguage(c)

	var processes []models.CookingProcess
	if category := c.Query("category"); category != "" {
		processes = a.catalog.ProcessesForCategory(models.ProductCategory(category))
	} else {
		processes = a.catalog.Processes()
	}

	views := make([]ProcessView, len(processes))
	for i, p := range processes {
		views[i] = processView(p, lang)
	}
	successResponse(c, views)
}

func (a *Application) getProcess(c *gin.Context) {
	process := a.catalog.ProcessByID(c.Param("id"))
	if process == nil {
		errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Cooking process not found")
		return
	}
	successResponse(c, processView(*process, a.requestLanguage(c)))
}
