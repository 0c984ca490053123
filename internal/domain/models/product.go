package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategory tags a product for cooking process applicability
type ProductCategory string

const (
	CategoryAll        ProductCategory = "all" // sentinel: process applies to every category
	CategoryMeat       ProductCategory = "meat"
	CategoryPoultry    ProductCategory = "poultry"
	CategoryFish       ProductCategory = "fish"
	CategorySeafood    ProductCategory = "seafood"
	CategoryVegetables ProductCategory = "vegetables"
	CategoryFruits     ProductCategory = "fruits"
	CategoryDairy      ProductCategory = "dairy"
	CategoryGrains     ProductCategory = "grains"
	CategoryEggs       ProductCategory = "eggs"
	CategorySauces     ProductCategory = "sauces"
)

// NutritionInfo holds per-100g nutrition values for a raw product
type NutritionInfo struct {
	CaloriesPer100g float64 `bson:"calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64 `bson:"protein_per_100g" json:"protein_per_100g"`
	FatPer100g      float64 `bson:"fat_per_100g" json:"fat_per_100g"`
	CarbsPer100g    float64 `bson:"carbs_per_100g" json:"carbs_per_100g"`
}

// Product represents a purchasable raw product in the catalog.
// Nutrition, price and waste are optional: a product may be created before
// its supplier data is known, and every computation treats absence as zero.
type Product struct {
	ID                  primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Name                string                  `bson:"name" json:"name"`
	LocalizedNames      map[LanguageCode]string `bson:"localized_names,omitempty" json:"localized_names,omitempty"`
	Category            ProductCategory         `bson:"category" json:"category"`
	Nutrition           *NutritionInfo          `bson:"nutrition,omitempty" json:"nutrition,omitempty"`
	BasePricePerKg      *float64                `bson:"base_price_per_kg,omitempty" json:"base_price_per_kg,omitempty"`
	DefaultWastePercent *float64                `bson:"default_waste_percent,omitempty" json:"default_waste_percent,omitempty"`
	IsActive            bool                    `bson:"is_active" json:"is_active"`
	CreatedAt           time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time               `bson:"updated_at" json:"updated_at"`
}

// DisplayName returns the localized product name for the given language.
func (p *Product) DisplayName(lang LanguageCode) string {
	return LocalizedName(p.LocalizedNames, lang, p.Name)
}

// WastePercent returns the trimming waste for this product, 0 when unset.
func (p *Product) WastePercent() float64 {
	if p == nil || p.DefaultWastePercent == nil {
		return 0
	}
	return *p.DefaultWastePercent
}
