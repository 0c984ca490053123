package models

import (
	"math"

	apperrors "github.com/ak/tcs/internal/pkg/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TechCardIngredient is one ingredient line inside a tech card. It owns the
// gross -> waste -> net -> shrinkage -> yield weight pipeline and caches the
// derived nutrition totals and cost. Product and process names are stored as
// snapshots so a line stays displayable after the referenced product is
// removed from the catalog.
type TechCardIngredient struct {
	ID          uuid.UUID           `bson:"id" json:"id"`
	ProductID   *primitive.ObjectID `bson:"product_id,omitempty" json:"product_id,omitempty"`
	ProductName string              `bson:"product_name" json:"product_name"`
	ProcessID   string              `bson:"process_id,omitempty" json:"process_id,omitempty"`
	ProcessName string              `bson:"process_name,omitempty" json:"process_name,omitempty"`

	GrossWeight     float64 `bson:"gross_weight" json:"gross_weight"` // grams, as purchased
	NetWeight       float64 `bson:"net_weight" json:"net_weight"`     // grams, after trimming
	NetWeightManual bool    `bson:"net_weight_manual" json:"net_weight_manual"`

	FinalCalories float64 `bson:"final_calories" json:"final_calories"`
	FinalProtein  float64 `bson:"final_protein" json:"final_protein"`
	FinalFat      float64 `bson:"final_fat" json:"final_fat"`
	FinalCarbs    float64 `bson:"final_carbs" json:"final_carbs"`
	Cost          float64 `bson:"cost" json:"cost"`
	Currency      string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// NewTechCardIngredient builds an ingredient line and computes all derived
// fields. Product and process are optional binding states. When netWeight is
// supplied the line starts in manual mode and gross-weight edits will not
// overwrite it; otherwise net weight derives from gross and the product's
// default waste percent.
func NewTechCardIngredient(product *Product, process *CookingProcess, grossWeight float64, netWeight *float64, currency string) (*TechCardIngredient, error) {
	if err := validateWeight("gross_weight", grossWeight); err != nil {
		return nil, err
	}

	ing := &TechCardIngredient{
		ID:       uuid.New(),
		Currency: currency,
	}
	if product != nil {
		id := product.ID
		ing.ProductID = &id
		ing.ProductName = product.Name
	}
	if process != nil {
		ing.ProcessID = process.ID
		ing.ProcessName = process.Name
	}

	ing.GrossWeight = grossWeight
	if netWeight != nil {
		if err := validateWeight("net_weight", *netWeight); err != nil {
			return nil, err
		}
		ing.NetWeight = *netWeight
		ing.NetWeightManual = true
	} else {
		ing.NetWeight = deriveNetWeight(grossWeight, product)
	}

	ing.recompute(product, process)
	return ing, nil
}

// UpdateGrossWeight sets a new gross weight and re-derives the dependent
// fields. A manually entered net weight is preserved; an automatic one is
// re-derived from the product's waste percent.
func (i *TechCardIngredient) UpdateGrossWeight(grossWeight float64, product *Product, process *CookingProcess) error {
	if err := validateWeight("gross_weight", grossWeight); err != nil {
		return err
	}
	i.GrossWeight = grossWeight
	if !i.NetWeightManual {
		i.NetWeight = deriveNetWeight(grossWeight, product)
	}
	i.recompute(product, process)
	return nil
}

// UpdateNetWeight sets an explicit net weight and switches the line to manual
// mode. There is no operation to revert to automatic derivation: once a user
// corrects the net weight it stays decoupled from gross-weight edits for the
// life of the line.
func (i *TechCardIngredient) UpdateNetWeight(netWeight float64, product *Product, process *CookingProcess) error {
	if err := validateWeight("net_weight", netWeight); err != nil {
		return err
	}
	i.NetWeight = netWeight
	i.NetWeightManual = true
	i.recompute(product, process)
	return nil
}

// UpdateCookingProcess rebinds the cooking process (nil clears it) and
// re-derives net weight when the line is still in automatic mode.
func (i *TechCardIngredient) UpdateCookingProcess(process *CookingProcess, product *Product) {
	if process != nil {
		i.ProcessID = process.ID
		i.ProcessName = process.Name
	} else {
		i.ProcessID = ""
		i.ProcessName = ""
	}
	if !i.NetWeightManual {
		i.NetWeight = deriveNetWeight(i.GrossWeight, product)
	}
	i.recompute(product, process)
}

// WastePercent is the trimming loss, (gross-net)/gross*100, 0 when gross is 0.
func (i *TechCardIngredient) WastePercent() float64 {
	if i.GrossWeight == 0 {
		return 0
	}
	return (i.GrossWeight - i.NetWeight) / i.GrossWeight * 100
}

// ShrinkagePercent is the bound process's weight loss, 0 without a process.
func (i *TechCardIngredient) ShrinkagePercent(process *CookingProcess) float64 {
	if process == nil {
		return 0
	}
	return process.WeightLossPercent
}

// YieldWeight is the served weight: net weight after cooking shrinkage.
func (i *TechCardIngredient) YieldWeight(process *CookingProcess) float64 {
	return i.NetWeight * (1 - i.ShrinkagePercent(process)/100)
}

// recompute refreshes the cached nutrition totals and cost. Nutrition scales
// from netWeight, with process multipliers applied to the per-100g density;
// shrinkage never enters the nutrition math. Cost comes from gross weight,
// since gross is what is purchased raw.
func (i *TechCardIngredient) recompute(product *Product, process *CookingProcess) {
	i.FinalCalories = 0
	i.FinalProtein = 0
	i.FinalFat = 0
	i.FinalCarbs = 0
	i.Cost = 0

	if product == nil {
		return
	}

	if product.Nutrition != nil {
		n := *product.Nutrition
		if process != nil {
			n.CaloriesPer100g *= process.CalorieMultiplier
			n.ProteinPer100g *= process.ProteinMultiplier
			n.FatPer100g *= process.FatMultiplier
			n.CarbsPer100g *= process.CarbsMultiplier
		}
		i.FinalCalories = n.CaloriesPer100g * i.NetWeight / 100
		i.FinalProtein = n.ProteinPer100g * i.NetWeight / 100
		i.FinalFat = n.FatPer100g * i.NetWeight / 100
		i.FinalCarbs = n.CarbsPer100g * i.NetWeight / 100
	}

	if product.BasePricePerKg != nil {
		i.Cost = i.GrossWeight / 1000 * *product.BasePricePerKg
	}
}

func deriveNetWeight(grossWeight float64, product *Product) float64 {
	if product == nil {
		return grossWeight
	}
	return grossWeight * (1 - product.WastePercent()/100)
}

func validateWeight(field string, value float64) error {
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return apperrors.InvalidWeight(field, value)
	}
	return nil
}
