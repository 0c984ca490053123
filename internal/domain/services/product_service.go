package services

import (
	"context"
	"time"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/ak/tcs/internal/domain/repositories"
	apperrors "github.com/ak/tcs/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService handles product catalog business logic
type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, int64, error)
}

type CreateProductRequest struct {
	Name                string                         `json:"name" binding:"required"`
	LocalizedNames      map[models.LanguageCode]string `json:"localized_names"`
	Category            models.ProductCategory         `json:"category" binding:"required"`
	Nutrition           *models.NutritionInfo          `json:"nutrition"`
	BasePricePerKg      *float64                       `json:"base_price_per_kg"`
	DefaultWastePercent *float64                       `json:"default_waste_percent"`
}

type UpdateProductRequest struct {
	Name                string                         `json:"name"`
	LocalizedNames      map[models.LanguageCode]string `json:"localized_names"`
	Category            models.ProductCategory         `json:"category"`
	Nutrition           *models.NutritionInfo          `json:"nutrition"`
	BasePricePerKg      *float64                       `json:"base_price_per_kg"`
	DefaultWastePercent *float64                       `json:"default_waste_percent"`
}

type productService struct {
	productRepo repositories.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repositories.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	if err := validateProductData(req.Nutrition, req.BasePricePerKg, req.DefaultWastePercent); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:                req.Name,
		LocalizedNames:      req.LocalizedNames,
		Category:            req.Category,
		Nutrition:           req.Nutrition,
		BasePricePerKg:      req.BasePricePerKg,
		DefaultWastePercent: req.DefaultWastePercent,
		IsActive:            true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateProductData(req.Nutrition, req.BasePricePerKg, req.DefaultWastePercent); err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.LocalizedNames != nil {
		product.LocalizedNames = req.LocalizedNames
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Nutrition != nil {
		product.Nutrition = req.Nutrition
	}
	if req.BasePricePerKg != nil {
		product.BasePricePerKg = req.BasePricePerKg
	}
	if req.DefaultWastePercent != nil {
		product.DefaultWastePercent = req.DefaultWastePercent
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *productService) List(ctx context.Context, filter repositories.ProductFilter) ([]*models.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return products, total, nil
}

func validateProductData(nutrition *models.NutritionInfo, price, waste *float64) error {
	if nutrition != nil {
		if nutrition.CaloriesPer100g < 0 || nutrition.ProteinPer100g < 0 ||
			nutrition.FatPer100g < 0 || nutrition.CarbsPer100g < 0 {
			return apperrors.Validation("nutrition values must be non-negative")
		}
	}
	if price != nil && *price < 0 {
		return apperrors.Validation("base_price_per_kg must be non-negative")
	}
	if waste != nil && (*waste < 0 || *waste >= 100) {
		return apperrors.Validation("default_waste_percent must be in [0,100)")
	}
	return nil
}
