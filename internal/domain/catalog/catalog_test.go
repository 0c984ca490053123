package catalog

import (
	"testing"

	"github.com/ak/tcs/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BuildsDefaultCatalog(t *testing.T) {
	c := New()
	processes := c.Processes()
	require.Len(t, processes, 12)

	// Curated order is presentation order.
	assert.Equal(t, "boiling", processes[0].ID)
	assert.Equal(t, "frying_oil", processes[1].ID)
	assert.Equal(t, "raw", processes[len(processes)-1].ID)

	seen := make(map[string]bool, len(processes))
	for _, p := range processes {
		assert.False(t, seen[p.ID], "duplicate process id %s", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Categories)
	}
}

func TestProcessByID(t *testing.T) {
	c := New()

	boiling := c.ProcessByID("boiling")
	require.NotNil(t, boiling)
	assert.Equal(t, 10.0, boiling.WeightLossPercent)
	assert.Equal(t, 0.90, boiling.CalorieMultiplier)

	assert.Nil(t, c.ProcessByID("microwaving"))
	assert.Nil(t, c.ProcessByID(""))
}

func TestProcessesForCategory(t *testing.T) {
	c := New()

	meat := c.ProcessesForCategory(models.CategoryMeat)
	require.NotEmpty(t, meat)

	ids := make([]string, len(meat))
	for i, p := range meat {
		ids[i] = p.ID
	}
	// "all" entries apply to meat; blanching and fermentation do not.
	assert.Contains(t, ids, "boiling")
	assert.Contains(t, ids, "grilling")
	assert.Contains(t, ids, "raw")
	assert.NotContains(t, ids, "blanching")
	assert.NotContains(t, ids, "fermentation")

	// Definition order survives filtering.
	assert.Equal(t, "boiling", meat[0].ID)
}

func TestProcessesForCategory_AllSentinelOnly(t *testing.T) {
	c := New()

	sauces := c.ProcessesForCategory(models.CategorySauces)
	ids := make([]string, len(sauces))
	for i, p := range sauces {
		ids[i] = p.ID
	}
	// Sauces only match processes declared with the "all" sentinel.
	assert.ElementsMatch(t, []string{"boiling", "baking", "steaming", "raw"}, ids)
}

func TestFromDefinitions_IsolatedFromInput(t *testing.T) {
	defs := []models.CookingProcess{
		{ID: "smoking", Name: "Smoking", WeightLossPercent: 30,
			Categories: []models.ProductCategory{models.CategoryFish}},
	}
	c := FromDefinitions(defs)

	defs[0].WeightLossPercent = 99
	got := c.ProcessByID("smoking")
	require.NotNil(t, got)
	assert.Equal(t, 30.0, got.WeightLossPercent)
}

func TestDefaultProcesses_RawIsIdentity(t *testing.T) {
	raw := New().ProcessByID("raw")
	require.NotNil(t, raw)
	assert.Equal(t, 1.0, raw.CalorieMultiplier)
	assert.Equal(t, 1.0, raw.ProteinMultiplier)
	assert.Equal(t, 1.0, raw.FatMultiplier)
	assert.Equal(t, 1.0, raw.CarbsMultiplier)
	assert.Zero(t, raw.WeightLossPercent)
	assert.True(t, raw.AppliesTo(models.CategoryDairy))
}

func TestDefaultProcesses_LocalizedNames(t *testing.T) {
	boiling := New().ProcessByID("boiling")
	require.NotNil(t, boiling)

	assert.Equal(t, "Варка", boiling.DisplayName(models.LanguageRU))
	assert.Equal(t, "Kochen", boiling.DisplayName(models.LanguageDE))
	assert.Equal(t, "Boiling", boiling.DisplayName(models.LanguageEN))
}
