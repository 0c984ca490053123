package models

import (
	"time"

	apperrors "github.com/ak/tcs/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CardType distinguishes the two rescaling behaviors of a tech card
type CardType string

const (
	// CardTypeDish quantities are defined for a fixed base portion count and
	// rescale linearly with the desired portion count.
	CardTypeDish CardType = "dish"
	// CardTypeSemiFinished quantities are a batch reference that rescales
	// proportionally from any single edited anchor ingredient.
	CardTypeSemiFinished CardType = "semi_finished"
)

// TechCard is a costed recipe card: an ordered list of ingredient lines plus
// preparation text. Ingredient order is display order and is preserved across
// mutations.
type TechCard struct {
	ID                  primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Name                string                  `bson:"name" json:"name"`
	LocalizedNames      map[LanguageCode]string `bson:"localized_names,omitempty" json:"localized_names,omitempty"`
	Category            string                  `bson:"category,omitempty" json:"category,omitempty"`
	CardType            CardType                `bson:"card_type" json:"card_type"`
	BasePortions        int                     `bson:"base_portions" json:"base_portions"`
	Ingredients         []TechCardIngredient    `bson:"ingredients" json:"ingredients"`
	Technology          string                  `bson:"technology,omitempty" json:"technology,omitempty"`
	LocalizedTechnology map[LanguageCode]string `bson:"localized_technology,omitempty" json:"localized_technology,omitempty"`
	Comment             string                  `bson:"comment,omitempty" json:"comment,omitempty"` // semi-finished only, e.g. storage instructions
	CreatedAt           time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time               `bson:"updated_at" json:"updated_at"`
}

// TechCardTotals aggregates the per-line derived fields of a card
type TechCardTotals struct {
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Fat         float64 `json:"fat"`
	Carbs       float64 `json:"carbs"`
	Cost        float64 `json:"cost"`
	NetWeight   float64 `json:"net_weight"`
	GrossWeight float64 `json:"gross_weight"`
}

// DisplayName returns the localized card name for the given language.
func (t *TechCard) DisplayName(lang LanguageCode) string {
	return LocalizedName(t.LocalizedNames, lang, t.Name)
}

// DisplayTechnology returns the localized preparation text.
func (t *TechCard) DisplayTechnology(lang LanguageCode) string {
	return LocalizedName(t.LocalizedTechnology, lang, t.Technology)
}

// Normalize clamps invariants after construction or update. BasePortions is
// always at least 1, so portion math never divides by zero.
func (t *TechCard) Normalize() {
	if t.BasePortions < 1 {
		t.BasePortions = 1
	}
	if t.CardType != CardTypeSemiFinished {
		t.CardType = CardTypeDish
	}
}

// AddIngredient appends a line, preserving display order.
func (t *TechCard) AddIngredient(ing TechCardIngredient) {
	t.Ingredients = append(t.Ingredients, ing)
}

// RemoveIngredient deletes the line at index.
func (t *TechCard) RemoveIngredient(index int) error {
	if index < 0 || index >= len(t.Ingredients) {
		return apperrors.IndexOutOfRange(index, len(t.Ingredients))
	}
	t.Ingredients = append(t.Ingredients[:index], t.Ingredients[index+1:]...)
	return nil
}

// ReplaceIngredient swaps the line at index for a new one.
func (t *TechCard) ReplaceIngredient(index int, ing TechCardIngredient) error {
	if index < 0 || index >= len(t.Ingredients) {
		return apperrors.IndexOutOfRange(index, len(t.Ingredients))
	}
	t.Ingredients[index] = ing
	return nil
}

// Ingredient returns a pointer to the line at index for in-place mutation.
func (t *TechCard) Ingredient(index int) (*TechCardIngredient, error) {
	if index < 0 || index >= len(t.Ingredients) {
		return nil, apperrors.IndexOutOfRange(index, len(t.Ingredients))
	}
	return &t.Ingredients[index], nil
}

// Totals sums the cached per-line fields. An empty card yields zero totals.
func (t *TechCard) Totals() TechCardTotals {
	var totals TechCardTotals
	for _, ing := range t.Ingredients {
		totals.Calories += ing.FinalCalories
		totals.Protein += ing.FinalProtein
		totals.Fat += ing.FinalFat
		totals.Carbs += ing.FinalCarbs
		totals.Cost += ing.Cost
		totals.NetWeight += ing.NetWeight
		totals.GrossWeight += ing.GrossWeight
	}
	return totals
}

// TotalYield sums each line's yield weight, resolving bound processes through
// the catalog. A process id with no catalog entry degrades to zero shrinkage
// rather than failing: catalog entries are static constants and a dangling
// reference is a data-integrity issue outside the card's control.
func (t *TechCard) TotalYield(resolver ProcessResolver) float64 {
	var total float64
	for _, ing := range t.Ingredients {
		var process *CookingProcess
		if ing.ProcessID != "" && resolver != nil {
			process = resolver.ProcessByID(ing.ProcessID)
		}
		total += ing.YieldWeight(process)
	}
	return total
}

// QuantityPerPortion is the stored gross weight of one line divided by the
// card's base portion count (dish cards).
func (t *TechCard) QuantityPerPortion(index int) (float64, error) {
	ing, err := t.Ingredient(index)
	if err != nil {
		return 0, err
	}
	portions := t.BasePortions
	if portions < 1 {
		portions = 1
	}
	return ing.GrossWeight / float64(portions), nil
}

// DisplayedQuantity is the presentation-level gross quantity of one line for
// the selected portion count. Stored quantities are never mutated.
func (t *TechCard) DisplayedQuantity(index, selectedPortions int) (float64, error) {
	perPortion, err := t.QuantityPerPortion(index)
	if err != nil {
		return 0, err
	}
	return perPortion * float64(selectedPortions), nil
}

// BaseGrossQuantities snapshots the stored gross weights in display order,
// the reference vector for proportional batch rescaling.
func (t *TechCard) BaseGrossQuantities() []float64 {
	base := make([]float64, len(t.Ingredients))
	for i, ing := range t.Ingredients {
		base[i] = ing.GrossWeight
	}
	return base
}
