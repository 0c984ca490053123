package catalog

import (
	"github.com/ak/tcs/internal/domain/models"
)

// Catalog is the read-only cooking process catalog, built once at startup
// from the static definition table and injected into whatever needs lookups.
type Catalog struct {
	processes []models.CookingProcess
	byID      map[string]*models.CookingProcess
}

// New builds the catalog from the default process definitions.
func New() *Catalog {
	return FromDefinitions(defaultProcesses)
}

// FromDefinitions builds a catalog from an explicit definition list,
// preserving definition order for presentation.
func FromDefinitions(defs []models.CookingProcess) *Catalog {
	c := &Catalog{
		processes: make([]models.CookingProcess, len(defs)),
		byID:      make(map[string]*models.CookingProcess, len(defs)),
	}
	copy(c.processes, defs)
	for i := range c.processes {
		c.byID[c.processes[i].ID] = &c.processes[i]
	}
	return c
}

// Processes returns every catalog entry in definition order.
func (c *Catalog) Processes() []models.CookingProcess {
	out := make([]models.CookingProcess, len(c.processes))
	copy(out, c.processes)
	return out
}

// ProcessesForCategory returns the entries applicable to the given product
// category, in definition order. The curated order (boiling before frying
// before grilling) is what pickers display.
func (c *Catalog) ProcessesForCategory(category models.ProductCategory) []models.CookingProcess {
	var out []models.CookingProcess
	for _, p := range c.processes {
		if p.AppliesTo(category) {
			out = append(out, p)
		}
	}
	return out
}

// ProcessByID returns the entry with the given id, or nil when absent.
// Absence is a normal outcome: a line with no process selected yet.
func (c *Catalog) ProcessByID(id string) *models.CookingProcess {
	return c.byID[id]
}

// defaultProcesses is the curated process table. Multipliers model how each
// process changes nutrient density per 100g; WeightLossPercent is the
// cooking-stage shrinkage applied to net weight.
var defaultProcesses = []models.CookingProcess{
	{
		ID:   "boiling",
		Name: "Boiling",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Boiling",
			models.LanguageRU: "Варка",
			models.LanguageES: "Hervido",
			models.LanguageDE: "Kochen",
		},
		CalorieMultiplier: 0.90,
		ProteinMultiplier: 0.95,
		FatMultiplier:     0.85,
		CarbsMultiplier:   0.95,
		WeightLossPercent: 10,
		Categories:        []models.ProductCategory{models.CategoryAll},
	},
	{
		ID:   "frying_oil",
		Name: "Frying in oil",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Frying in oil",
			models.LanguageRU: "Жарка в масле",
			models.LanguageES: "Fritura en aceite",
			models.LanguageDE: "Braten in Öl",
		},
		CalorieMultiplier: 1.25,
		ProteinMultiplier: 1.05,
		FatMultiplier:     1.30,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 20,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryPoultry, models.CategoryFish,
			models.CategorySeafood, models.CategoryVegetables, models.CategoryEggs,
		},
	},
	{
		ID:   "grilling",
		Name: "Grilling",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Grilling",
			models.LanguageRU: "Гриль",
			models.LanguageES: "A la parrilla",
			models.LanguageDE: "Grillen",
		},
		CalorieMultiplier: 1.10,
		ProteinMultiplier: 1.10,
		FatMultiplier:     0.80,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 25,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryPoultry, models.CategoryFish,
			models.CategorySeafood, models.CategoryVegetables,
		},
	},
	{
		ID:   "baking",
		Name: "Baking",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Baking",
			models.LanguageRU: "Запекание",
			models.LanguageES: "Horneado",
			models.LanguageDE: "Backen",
		},
		CalorieMultiplier: 1.05,
		ProteinMultiplier: 1.05,
		FatMultiplier:     0.95,
		CarbsMultiplier:   1.05,
		WeightLossPercent: 15,
		Categories:        []models.ProductCategory{models.CategoryAll},
	},
	{
		ID:   "stewing",
		Name: "Stewing",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Stewing",
			models.LanguageRU: "Тушение",
			models.LanguageES: "Estofado",
			models.LanguageDE: "Schmoren",
		},
		CalorieMultiplier: 0.95,
		ProteinMultiplier: 0.95,
		FatMultiplier:     0.90,
		CarbsMultiplier:   0.95,
		WeightLossPercent: 12,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryPoultry, models.CategoryFish,
			models.CategoryVegetables,
		},
	},
	{
		ID:   "sauteing",
		Name: "Sautéing",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Sautéing",
			models.LanguageRU: "Пассерование",
			models.LanguageES: "Salteado",
			models.LanguageDE: "Sautieren",
		},
		CalorieMultiplier: 1.15,
		ProteinMultiplier: 1.00,
		FatMultiplier:     1.20,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 18,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryPoultry, models.CategorySeafood,
			models.CategoryVegetables,
		},
	},
	{
		ID:   "sous_vide",
		Name: "Sous-vide",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Sous-vide",
			models.LanguageRU: "Су-вид",
			models.LanguageES: "Sous-vide",
			models.LanguageDE: "Sous-vide",
		},
		CalorieMultiplier: 1.00,
		ProteinMultiplier: 1.00,
		FatMultiplier:     0.95,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 8,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryPoultry, models.CategoryFish,
			models.CategoryVegetables, models.CategoryEggs,
		},
	},
	{
		ID:   "fermentation",
		Name: "Fermentation",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Fermentation",
			models.LanguageRU: "Ферментация",
			models.LanguageES: "Fermentación",
			models.LanguageDE: "Fermentation",
		},
		CalorieMultiplier: 0.90,
		ProteinMultiplier: 1.00,
		FatMultiplier:     1.00,
		CarbsMultiplier:   0.70,
		WeightLossPercent: 5,
		Categories: []models.ProductCategory{
			models.CategoryVegetables, models.CategoryFruits, models.CategoryDairy,
			models.CategoryGrains,
		},
	},
	{
		ID:   "torch_browning",
		Name: "Torch browning",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Torch browning",
			models.LanguageRU: "Обжиг горелкой",
			models.LanguageES: "Dorado con soplete",
			models.LanguageDE: "Abflämmen",
		},
		CalorieMultiplier: 1.05,
		ProteinMultiplier: 1.00,
		FatMultiplier:     0.95,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 3,
		Categories: []models.ProductCategory{
			models.CategoryMeat, models.CategoryFish, models.CategorySeafood,
		},
	},
	{
		ID:   "blanching",
		Name: "Blanching",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Blanching",
			models.LanguageRU: "Бланширование",
			models.LanguageES: "Escaldado",
			models.LanguageDE: "Blanchieren",
		},
		CalorieMultiplier: 0.95,
		ProteinMultiplier: 0.98,
		FatMultiplier:     1.00,
		CarbsMultiplier:   0.97,
		WeightLossPercent: 5,
		Categories: []models.ProductCategory{
			models.CategoryVegetables, models.CategoryFruits,
		},
	},
	{
		ID:   "steaming",
		Name: "Steaming",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Steaming",
			models.LanguageRU: "Приготовление на пару",
			models.LanguageES: "Al vapor",
			models.LanguageDE: "Dämpfen",
		},
		CalorieMultiplier: 0.95,
		ProteinMultiplier: 1.00,
		FatMultiplier:     0.95,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 7,
		Categories:        []models.ProductCategory{models.CategoryAll},
	},
	{
		ID:   "raw",
		Name: "Raw",
		LocalizedNames: map[models.LanguageCode]string{
			models.LanguageEN: "Raw",
			models.LanguageRU: "Без обработки",
			models.LanguageES: "Crudo",
			models.LanguageDE: "Roh",
		},
		CalorieMultiplier: 1.00,
		ProteinMultiplier: 1.00,
		FatMultiplier:     1.00,
		CarbsMultiplier:   1.00,
		WeightLossPercent: 0,
		Categories:        []models.ProductCategory{models.CategoryAll},
	},
}
