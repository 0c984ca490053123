package services

import (
	"context"
	"testing"

	"github.com/ak/tcs/internal/domain/catalog"
	"github.com/ak/tcs/internal/domain/models"
	apperrors "github.com/ak/tcs/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(v float64) *float64 { return &v }

type serviceFixture struct {
	service  TechCardService
	cardRepo *mockTechCardRepo
	prodRepo *mockProductRepo
	beef     *models.Product
	potato   *models.Product
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	cardRepo := newMockTechCardRepo()
	prodRepo := newMockProductRepo()

	beef := prodRepo.put(&models.Product{
		Name:     "Beef tenderloin",
		Category: models.CategoryMeat,
		Nutrition: &models.NutritionInfo{
			CaloriesPer100g: 250, ProteinPer100g: 26, FatPer100g: 15,
		},
		BasePricePerKg:      floatPtr(800),
		DefaultWastePercent: floatPtr(20),
		IsActive:            true,
	})
	potato := prodRepo.put(&models.Product{
		Name:     "Potato",
		Category: models.CategoryVegetables,
		Nutrition: &models.NutritionInfo{
			CaloriesPer100g: 77, ProteinPer100g: 2, CarbsPer100g: 17,
		},
		BasePricePerKg:      floatPtr(40),
		DefaultWastePercent: floatPtr(25),
		IsActive:            true,
	})

	return &serviceFixture{
		service:  NewTechCardService(cardRepo, prodRepo, catalog.New(), "USD"),
		cardRepo: cardRepo,
		prodRepo: prodRepo,
		beef:     beef,
		potato:   potato,
	}
}

func (f *serviceFixture) createCard(t *testing.T, req CreateTechCardRequest) *models.TechCard {
	t.Helper()
	card, err := f.service.Create(context.Background(), req)
	require.NoError(t, err)
	return card
}

func TestCreate_BuildsComputedIngredients(t *testing.T) {
	f := newFixture(t)

	card := f.createCard(t, CreateTechCardRequest{
		Name:         "Beef stew",
		CardType:     models.CardTypeDish,
		BasePortions: 4,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), ProcessID: "boiling", GrossWeight: 200},
			{ProductID: f.potato.ID.Hex(), ProcessID: "boiling", GrossWeight: 400},
		},
	})

	require.Len(t, card.Ingredients, 2)
	beefLine := card.Ingredients[0]
	assert.InDelta(t, 160.0, beefLine.NetWeight, 1e-9)
	assert.InDelta(t, 360.0, beefLine.FinalCalories, 1e-9)
	assert.InDelta(t, 160.0, beefLine.Cost, 1e-9)
	assert.Equal(t, "USD", beefLine.Currency)

	potatoLine := card.Ingredients[1]
	assert.InDelta(t, 300.0, potatoLine.NetWeight, 1e-9) // 25% waste
	assert.InDelta(t, 16.0, potatoLine.Cost, 1e-9)
}

func TestCreate_RejectsUnknownCardType(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateTechCardRequest{
		Name:     "Mystery",
		CardType: models.CardType("snack"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestCreate_RejectsUnknownProcess(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateTechCardRequest{
		Name:     "Bad process",
		CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProcessID: "microwaving", GrossWeight: 100},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestCreate_UnknownProductIDMeansUnboundLine(t *testing.T) {
	f := newFixture(t)

	card := f.createCard(t, CreateTechCardRequest{
		Name:     "Draft card",
		CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: primitive.NewObjectID().Hex(), GrossWeight: 100},
		},
	})

	line := card.Ingredients[0]
	assert.Nil(t, line.ProductID)
	assert.Equal(t, 100.0, line.NetWeight) // no product, no waste data
	assert.Zero(t, line.Cost)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByID(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestAddIngredient_AppendsAndPersists(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
	})

	updated, err := f.service.AddIngredient(context.Background(), card.ID, IngredientRequest{
		ProductID: f.beef.ID.Hex(), ProcessID: "grilling", GrossWeight: 150,
	})
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 1)

	stored, err := f.service.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Ingredients, 1)
	assert.Equal(t, "grilling", stored.Ingredients[0].ProcessID)
}

func TestSetIngredientGrossWeight_RecomputesLine(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), ProcessID: "boiling", GrossWeight: 200},
		},
	})

	updated, err := f.service.SetIngredientGrossWeight(context.Background(), card.ID, 0, 300)
	require.NoError(t, err)

	line := updated.Ingredients[0]
	assert.InDelta(t, 240.0, line.NetWeight, 1e-9)
	assert.InDelta(t, 540.0, line.FinalCalories, 1e-9)
	assert.InDelta(t, 240.0, line.Cost, 1e-9)
}

func TestSetIngredientNetWeight_ManualModePersists(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 200},
		},
	})

	_, err := f.service.SetIngredientNetWeight(context.Background(), card.ID, 0, 150)
	require.NoError(t, err)

	// A later gross edit must not revert the manual net weight.
	updated, err := f.service.SetIngredientGrossWeight(context.Background(), card.ID, 0, 400)
	require.NoError(t, err)
	line := updated.Ingredients[0]
	assert.Equal(t, 150.0, line.NetWeight)
	assert.True(t, line.NetWeightManual)
	assert.InDelta(t, 320.0, line.Cost, 1e-9)
}

func TestSetIngredientWeight_InvalidValueDoesNotSave(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 200},
		},
	})
	updatesBefore := f.cardRepo.updates

	_, err := f.service.SetIngredientGrossWeight(context.Background(), card.ID, 0, -5)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidInput, apperrors.CodeOf(err))
	assert.Equal(t, updatesBefore, f.cardRepo.updates)

	stored, err := f.service.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.0, stored.Ingredients[0].GrossWeight)
}

func TestSetIngredientProcess_SwitchAndClear(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), ProcessID: "boiling", GrossWeight: 200},
		},
	})

	updated, err := f.service.SetIngredientProcess(context.Background(), card.ID, 0, "grilling")
	require.NoError(t, err)
	line := updated.Ingredients[0]
	assert.Equal(t, "grilling", line.ProcessID)
	// 250*1.10 * 160/100
	assert.InDelta(t, 440.0, line.FinalCalories, 1e-9)

	updated, err = f.service.SetIngredientProcess(context.Background(), card.ID, 0, "")
	require.NoError(t, err)
	line = updated.Ingredients[0]
	assert.Empty(t, line.ProcessID)
	assert.InDelta(t, 400.0, line.FinalCalories, 1e-9) // raw density
}

func TestSetIngredientProcess_UnknownID(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 200},
		},
	})

	_, err := f.service.SetIngredientProcess(context.Background(), card.ID, 0, "microwaving")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestMutateIngredient_IndexOutOfRange(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
	})

	_, err := f.service.SetIngredientGrossWeight(context.Background(), card.ID, 0, 100)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrIndexOutOfRange, apperrors.CodeOf(err))
}

func TestCostSummary_DishCard(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name:           "Beef stew",
		LocalizedNames: map[models.LanguageCode]string{models.LanguageRU: "Тушёная говядина"},
		CardType:       models.CardTypeDish,
		BasePortions:   4,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), ProcessID: "boiling", GrossWeight: 200},
			{ProductID: f.potato.ID.Hex(), GrossWeight: 400},
		},
	})

	summary, err := f.service.CostSummary(context.Background(), card.ID, models.LanguageRU)
	require.NoError(t, err)

	assert.Equal(t, "Тушёная говядина", summary.Name)
	require.Len(t, summary.Lines, 2)

	beefLine := summary.Lines[0]
	assert.Equal(t, "Beef tenderloin", beefLine.ProductName)
	assert.Equal(t, "Варка", beefLine.ProcessName)
	assert.InDelta(t, 20.0, beefLine.WastePercent, 1e-9)
	assert.InDelta(t, 10.0, beefLine.ShrinkagePercent, 1e-9)
	assert.InDelta(t, 144.0, beefLine.YieldWeight, 1e-9)

	potatoLine := summary.Lines[1]
	assert.Empty(t, potatoLine.ProcessName)
	assert.Zero(t, potatoLine.ShrinkagePercent)
	assert.InDelta(t, 300.0, potatoLine.YieldWeight, 1e-9)

	assert.InDelta(t, 176.0, summary.Totals.Cost, 1e-9)      // 160 + 16
	assert.InDelta(t, 444.0, summary.TotalYield, 1e-9)       // 144 + 300
	assert.InDelta(t, 44.0, summary.CostPerPortion, 1e-9)    // 176 / 4
}

func TestCostSummary_SemiFinishedHasNoPerPortionCost(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name:     "Demi-glace",
		CardType: models.CardTypeSemiFinished,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 1000},
		},
	})

	summary, err := f.service.CostSummary(context.Background(), card.ID, models.LanguageEN)
	require.NoError(t, err)
	assert.Zero(t, summary.CostPerPortion)
	assert.InDelta(t, 800.0, summary.Totals.Cost, 1e-9)
}

func TestRescalePreview_SemiFinished(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name:     "Demi-glace",
		CardType: models.CardTypeSemiFinished,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 1000},
			{ProductID: f.potato.ID.Hex(), GrossWeight: 500},
		},
	})

	preview, err := f.service.RescalePreview(context.Background(), card.ID, 1, 750)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, preview.ScaleFactor, 1e-12)
	assert.Equal(t, []float64{1000, 500}, preview.BaseQuantities)
	assert.InDelta(t, 1500.0, preview.DisplayedQuantities[0], 1e-9)
	assert.Equal(t, 750.0, preview.DisplayedQuantities[1])

	// Preview never persists: stored quantities are untouched.
	stored, err := f.service.GetByID(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, stored.Ingredients[0].GrossWeight)
	assert.Equal(t, 500.0, stored.Ingredients[1].GrossWeight)
}

func TestRescalePreview_DishCardRejected(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
		Ingredients: []IngredientRequest{
			{ProductID: f.beef.ID.Hex(), GrossWeight: 200},
		},
	})

	_, err := f.service.RescalePreview(context.Background(), card.ID, 0, 100)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestRescalePreview_ZeroBaseAnchor(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name:     "Draft batch",
		CardType: models.CardTypeSemiFinished,
		Ingredients: []IngredientRequest{
			{GrossWeight: 0},
			{ProductID: f.beef.ID.Hex(), GrossWeight: 500},
		},
	})

	_, err := f.service.RescalePreview(context.Background(), card.ID, 0, 100)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrZeroBaseRescale, apperrors.CodeOf(err))
}

func TestUpdate_PartialFieldsAndNormalize(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish, BasePortions: 4,
	})

	updated, err := f.service.Update(context.Background(), card.ID, UpdateTechCardRequest{
		Name:         "Hearty stew",
		BasePortions: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hearty stew", updated.Name)
	assert.Equal(t, 6, updated.BasePortions)
	assert.Equal(t, models.CardTypeDish, updated.CardType)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	card := f.createCard(t, CreateTechCardRequest{
		Name: "Stew", CardType: models.CardTypeDish,
	})

	require.NoError(t, f.service.Delete(context.Background(), card.ID))

	_, err := f.service.GetByID(context.Background(), card.ID)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}
