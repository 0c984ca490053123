package models

// CookingProcess is an immutable catalog entry describing how a cooking
// transformation changes nutrient density and weight. Multipliers apply to
// per-100g values; WeightLossPercent is the cooking-stage shrinkage.
type CookingProcess struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	LocalizedNames    map[LanguageCode]string `json:"localized_names,omitempty"`
	CalorieMultiplier float64                 `json:"calorie_multiplier"`
	ProteinMultiplier float64                 `json:"protein_multiplier"`
	FatMultiplier     float64                 `json:"fat_multiplier"`
	CarbsMultiplier   float64                 `json:"carbs_multiplier"`
	WeightLossPercent float64                 `json:"weight_loss_percent"`
	Categories        []ProductCategory       `json:"categories"`
}

// DisplayName returns the localized process name for the given language.
func (p *CookingProcess) DisplayName(lang LanguageCode) string {
	return LocalizedName(p.LocalizedNames, lang, p.Name)
}

// AppliesTo reports whether the process is applicable to the given product
// category, honoring the "all" sentinel.
func (p *CookingProcess) AppliesTo(category ProductCategory) bool {
	for _, c := range p.Categories {
		if c == CategoryAll || c == category {
			return true
		}
	}
	return false
}

// ProcessResolver resolves a bound cooking process by id. A nil result means
// the process is unknown or no process is selected; callers degrade to zero
// shrinkage and pass-through nutrition.
type ProcessResolver interface {
	ProcessByID(id string) *CookingProcess
}
