package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebornlabs/wastelog/internal/models"
)

func TestTotalWeightPortionMode(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	// rice: 150g per portion, two portions
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))
	assert.Equal(t, 300.0, TotalWeight(store, models.UnitPortion))
}

func TestTotalWeightGramsModeIgnoresPortionWeight(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	// eggshells are 5g per portion, but grams mode takes the quantity raw
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "egg_shells", 45))
	assert.Equal(t, 45.0, TotalWeight(store, models.UnitGrams))
}

func TestTotalWeightSpansAllCategories(t *testing.T) {
	catalog := models.DefaultCatalog()
	store := NewSelectionStore(catalog)

	quantities := map[models.Category]map[string]float64{
		models.CategoryUnavoidable: {"fruit_peels": 1, "chicken_bones": 2},
		models.CategoryAvoidable:   {"rice": 3},
		models.CategoryFoodRelated: {"plastic_bag": 4},
	}
	var want float64
	for category, byItem := range quantities {
		for itemID, qty := range byItem {
			require.NoError(t, store.SetQuantity(category, itemID, qty))
			item, ok := catalog.Find(category, itemID)
			require.True(t, ok)
			want += qty * item.UnitWeightGrams
		}
	}

	assert.Equal(t, want, TotalWeight(store, models.UnitPortion))

	var rawSum float64
	for _, byItem := range quantities {
		for _, qty := range byItem {
			rawSum += qty
		}
	}
	assert.Equal(t, rawSum, TotalWeight(store, models.UnitGrams))
}

func TestTotalWeightTracksLatestEdit(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))
	require.Equal(t, 300.0, TotalWeight(store, models.UnitPortion))

	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 1))
	assert.Equal(t, 150.0, TotalWeight(store, models.UnitPortion))

	// the same store under the other mode, no staleness between calls
	assert.Equal(t, 1.0, TotalWeight(store, models.UnitGrams))
}

func TestCategoriesUsed(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	assert.Empty(t, CategoriesUsed(store))

	require.NoError(t, store.SetQuantity(models.CategoryFoodRelated, "plastic_cups", 2))
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "fish_skin", 1))

	assert.Equal(t,
		[]models.Category{models.CategoryUnavoidable, models.CategoryFoodRelated},
		CategoriesUsed(store))

	// dropping a quantity back to zero removes the category again
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "fish_skin", 0))
	assert.Equal(t, []models.Category{models.CategoryFoodRelated}, CategoriesUsed(store))
}
