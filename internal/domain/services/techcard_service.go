package services

import (
	"context"
	"time"

	"github.com/ak/tcs/internal/domain/catalog"
	"github.com/ak/tcs/internal/domain/models"
	"github.com/ak/tcs/internal/domain/repositories"
	apperrors "github.com/ak/tcs/internal/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TechCardService handles tech card business logic: card CRUD plus the
// ingredient-line mutations that drive the costing engine.
type TechCardService interface {
	Create(ctx context.Context, req CreateTechCardRequest) (*models.TechCard, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TechCard, error)
	Update(ctx context.Context, id primitive.ObjectID, req UpdateTechCardRequest) (*models.TechCard, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repositories.TechCardFilter) ([]*models.TechCard, int64, error)

	AddIngredient(ctx context.Context, cardID primitive.ObjectID, req IngredientRequest) (*models.TechCard, error)
	ReplaceIngredient(ctx context.Context, cardID primitive.ObjectID, index int, req IngredientRequest) (*models.TechCard, error)
	RemoveIngredient(ctx context.Context, cardID primitive.ObjectID, index int) (*models.TechCard, error)
	SetIngredientGrossWeight(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*models.TechCard, error)
	SetIngredientNetWeight(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*models.TechCard, error)
	SetIngredientProcess(ctx context.Context, cardID primitive.ObjectID, index int, processID string) (*models.TechCard, error)

	CostSummary(ctx context.Context, cardID primitive.ObjectID, lang models.LanguageCode) (*CostSummary, error)
	RescalePreview(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*RescalePreview, error)
}

type CreateTechCardRequest struct {
	Name                string                         `json:"name" binding:"required"`
	LocalizedNames      map[models.LanguageCode]string `json:"localized_names"`
	Category            string                         `json:"category"`
	CardType            models.CardType                `json:"card_type" binding:"required"`
	BasePortions        int                            `json:"base_portions"`
	Technology          string                         `json:"technology"`
	LocalizedTechnology map[models.LanguageCode]string `json:"localized_technology"`
	Comment             string                         `json:"comment"`
	Ingredients         []IngredientRequest            `json:"ingredients"`
}

type UpdateTechCardRequest struct {
	Name                string                         `json:"name"`
	LocalizedNames      map[models.LanguageCode]string `json:"localized_names"`
	Category            string                         `json:"category"`
	BasePortions        int                            `json:"base_portions"`
	Technology          string                         `json:"technology"`
	LocalizedTechnology map[models.LanguageCode]string `json:"localized_technology"`
	Comment             string                         `json:"comment"`
}

// IngredientRequest describes one ingredient line to construct. ProductID
// and ProcessID are optional binding states; NetWeight, when present, starts
// the line in manual mode.
type IngredientRequest struct {
	ProductID   string   `json:"product_id"`
	ProcessID   string   `json:"process_id"`
	GrossWeight float64  `json:"gross_weight"`
	NetWeight   *float64 `json:"net_weight"`
}

// CostSummary is the per-card costing report assembled for presentation.
type CostSummary struct {
	CardID         string                `json:"card_id"`
	Name           string                `json:"name"`
	CardType       models.CardType       `json:"card_type"`
	BasePortions   int                   `json:"base_portions"`
	Lines          []CostSummaryLine     `json:"lines"`
	Totals         models.TechCardTotals `json:"totals"`
	TotalYield     float64               `json:"total_yield"`
	CostPerPortion float64               `json:"cost_per_portion,omitempty"`
}

type CostSummaryLine struct {
	ProductName      string  `json:"product_name"`
	ProcessName      string  `json:"process_name,omitempty"`
	GrossWeight      float64 `json:"gross_weight"`
	NetWeight        float64 `json:"net_weight"`
	WastePercent     float64 `json:"waste_percent"`
	ShrinkagePercent float64 `json:"shrinkage_percent"`
	YieldWeight      float64 `json:"yield_weight"`
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	Fat              float64 `json:"fat"`
	Carbs            float64 `json:"carbs"`
	Cost             float64 `json:"cost"`
}

// RescalePreview is the display-only result of anchoring a semi-finished
// card's batch on one edited ingredient quantity. Nothing is persisted.
type RescalePreview struct {
	CardID              string    `json:"card_id"`
	ScaleFactor         float64   `json:"scale_factor"`
	BaseQuantities      []float64 `json:"base_quantities"`
	DisplayedQuantities []float64 `json:"displayed_quantities"`
	DisplayedYield      float64   `json:"displayed_yield"`
}

type techCardService struct {
	cardRepo    repositories.TechCardRepository
	productRepo repositories.ProductRepository
	catalog     *catalog.Catalog
	currency    string
}

// NewTechCardService creates a new tech card service
func NewTechCardService(cardRepo repositories.TechCardRepository, productRepo repositories.ProductRepository, cat *catalog.Catalog, currency string) TechCardService {
	return &techCardService{
		cardRepo:    cardRepo,
		productRepo: productRepo,
		catalog:     cat,
		currency:    currency,
	}
}

func (s *techCardService) Create(ctx context.Context, req CreateTechCardRequest) (*models.TechCard, error) {
	if req.CardType != models.CardTypeDish && req.CardType != models.CardTypeSemiFinished {
		return nil, apperrors.Validation("card_type must be dish or semi_finished")
	}

	card := &models.TechCard{
		Name:                req.Name,
		LocalizedNames:      req.LocalizedNames,
		Category:            req.Category,
		CardType:            req.CardType,
		BasePortions:        req.BasePortions,
		Technology:          req.Technology,
		LocalizedTechnology: req.LocalizedTechnology,
		Comment:             req.Comment,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	card.Normalize()

	for _, ingReq := range req.Ingredients {
		ing, err := s.buildIngredient(ctx, ingReq)
		if err != nil {
			return nil, err
		}
		card.AddIngredient(*ing)
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return card, nil
}

func (s *techCardService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TechCard, error) {
	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if card == nil {
		return nil, apperrors.NotFound("tech card")
	}
	return card, nil
}

func (s *techCardService) Update(ctx context.Context, id primitive.ObjectID, req UpdateTechCardRequest) (*models.TechCard, error) {
	card, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		card.Name = req.Name
	}
	if req.LocalizedNames != nil {
		card.LocalizedNames = req.LocalizedNames
	}
	if req.Category != "" {
		card.Category = req.Category
	}
	if req.BasePortions > 0 {
		card.BasePortions = req.BasePortions
	}
	if req.Technology != "" {
		card.Technology = req.Technology
	}
	if req.LocalizedTechnology != nil {
		card.LocalizedTechnology = req.LocalizedTechnology
	}
	if req.Comment != "" {
		card.Comment = req.Comment
	}
	card.Normalize()

	return s.save(ctx, card)
}

func (s *techCardService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(ctx, id); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *techCardService) List(ctx context.Context, filter repositories.TechCardFilter) ([]*models.TechCard, int64, error) {
	cards, total, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return cards, total, nil
}

func (s *techCardService) AddIngredient(ctx context.Context, cardID primitive.ObjectID, req IngredientRequest) (*models.TechCard, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	ing, err := s.buildIngredient(ctx, req)
	if err != nil {
		return nil, err
	}
	card.AddIngredient(*ing)
	return s.save(ctx, card)
}

func (s *techCardService) ReplaceIngredient(ctx context.Context, cardID primitive.ObjectID, index int, req IngredientRequest) (*models.TechCard, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	ing, err := s.buildIngredient(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := card.ReplaceIngredient(index, *ing); err != nil {
		return nil, err
	}
	return s.save(ctx, card)
}

func (s *techCardService) RemoveIngredient(ctx context.Context, cardID primitive.ObjectID, index int) (*models.TechCard, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := card.RemoveIngredient(index); err != nil {
		return nil, err
	}
	return s.save(ctx, card)
}

func (s *techCardService) SetIngredientGrossWeight(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*models.TechCard, error) {
	return s.mutateIngredient(ctx, cardID, index, func(ing *models.TechCardIngredient, product *models.Product, process *models.CookingProcess) error {
		return ing.UpdateGrossWeight(value, product, process)
	})
}

func (s *techCardService) SetIngredientNetWeight(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*models.TechCard, error) {
	return s.mutateIngredient(ctx, cardID, index, func(ing *models.TechCardIngredient, product *models.Product, process *models.CookingProcess) error {
		return ing.UpdateNetWeight(value, product, process)
	})
}

func (s *techCardService) SetIngredientProcess(ctx context.Context, cardID primitive.ObjectID, index int, processID string) (*models.TechCard, error) {
	var process *models.CookingProcess
	if processID != "" {
		process = s.catalog.ProcessByID(processID)
		if process == nil {
			return nil, apperrors.NotFound("cooking process")
		}
	}
	return s.mutateIngredient(ctx, cardID, index, func(ing *models.TechCardIngredient, product *models.Product, _ *models.CookingProcess) error {
		ing.UpdateCookingProcess(process, product)
		return nil
	})
}

func (s *techCardService) CostSummary(ctx context.Context, cardID primitive.ObjectID, lang models.LanguageCode) (*CostSummary, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	summary := &CostSummary{
		CardID:       card.ID.Hex(),
		Name:         card.DisplayName(lang),
		CardType:     card.CardType,
		BasePortions: card.BasePortions,
		Lines:        make([]CostSummaryLine, len(card.Ingredients)),
		Totals:       card.Totals(),
		TotalYield:   card.TotalYield(s.catalog),
	}

	for i, ing := range card.Ingredients {
		process := s.catalog.ProcessByID(ing.ProcessID)
		line := CostSummaryLine{
			ProductName:      ing.ProductName,
			GrossWeight:      ing.GrossWeight,
			NetWeight:        ing.NetWeight,
			WastePercent:     ing.WastePercent(),
			ShrinkagePercent: ing.ShrinkagePercent(process),
			YieldWeight:      ing.YieldWeight(process),
			Calories:         ing.FinalCalories,
			Protein:          ing.FinalProtein,
			Fat:              ing.FinalFat,
			Carbs:            ing.FinalCarbs,
			Cost:             ing.Cost,
		}
		if process != nil {
			line.ProcessName = process.DisplayName(lang)
		}
		summary.Lines[i] = line
	}

	if card.CardType == models.CardTypeDish {
		summary.CostPerPortion = summary.Totals.Cost / float64(card.BasePortions)
	}
	return summary, nil
}

func (s *techCardService) RescalePreview(ctx context.Context, cardID primitive.ObjectID, index int, value float64) (*RescalePreview, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.CardType != models.CardTypeSemiFinished {
		return nil, apperrors.Validation("proportional rescaling applies to semi-finished cards only")
	}

	base := card.BaseGrossQuantities()
	scale := models.NewBatchScale()
	if err := scale.Edit(base, index, value); err != nil {
		return nil, err
	}

	return &RescalePreview{
		CardID:              card.ID.Hex(),
		ScaleFactor:         scale.Factor(),
		BaseQuantities:      base,
		DisplayedQuantities: scale.Displayed(base),
		DisplayedYield:      card.TotalYield(s.catalog) * scale.Factor(),
	}, nil
}

// buildIngredient resolves the optional product and process bindings and
// constructs a fully computed line. An unknown product id means "no product
// bound", not an error; an unknown process id is rejected since the caller
// picked it from the catalog.
func (s *techCardService) buildIngredient(ctx context.Context, req IngredientRequest) (*models.TechCardIngredient, error) {
	var product *models.Product
	if req.ProductID != "" {
		id, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid product_id format")
		}
		product, err = s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
	}

	var process *models.CookingProcess
	if req.ProcessID != "" {
		process = s.catalog.ProcessByID(req.ProcessID)
		if process == nil {
			return nil, apperrors.NotFound("cooking process")
		}
	}

	return models.NewTechCardIngredient(product, process, req.GrossWeight, req.NetWeight, s.currency)
}

type ingredientMutation func(ing *models.TechCardIngredient, product *models.Product, process *models.CookingProcess) error

// mutateIngredient loads the card, resolves the line's current product and
// process bindings, applies the mutation and persists the card. The line is
// only saved after the mutation succeeds, so a failed edit leaves the stored
// card in its last valid state.
func (s *techCardService) mutateIngredient(ctx context.Context, cardID primitive.ObjectID, index int, mutate ingredientMutation) (*models.TechCard, error) {
	card, err := s.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	ing, err := card.Ingredient(index)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	if ing.ProductID != nil {
		product, err = s.productRepo.GetByID(ctx, *ing.ProductID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		// A deleted product leaves the line with its name snapshot and zeroed
		// derived fields on the next recompute.
	}
	process := s.catalog.ProcessByID(ing.ProcessID)

	if err := mutate(ing, product, process); err != nil {
		return nil, err
	}
	return s.save(ctx, card)
}

func (s *techCardService) save(ctx context.Context, card *models.TechCard) (*models.TechCard, error) {
	card.UpdatedAt = time.Now()
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return card, nil
}
