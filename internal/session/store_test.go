package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebornlabs/wastelog/internal/models"
)

func TestNewSelectionStoreFullyPopulated(t *testing.T) {
	catalog := models.DefaultCatalog()
	store := NewSelectionStore(catalog)

	for _, category := range models.Categories {
		selections := store.ActiveCategory(category)
		require.Len(t, selections, len(catalog.Items(category)))
		for i, sel := range selections {
			assert.Equal(t, catalog.Items(category)[i].ID, sel.Item.ID)
			assert.Zero(t, sel.Quantity)
		}
	}
}

func TestSetQuantityRejectsNegative(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	err := store.SetQuantity(models.CategoryAvoidable, "rice", -1)
	require.ErrorIs(t, err, models.ErrInvalidQuantity)

	// store unchanged
	for _, sel := range store.ActiveCategory(models.CategoryAvoidable) {
		assert.Zero(t, sel.Quantity)
	}
}

func TestSetQuantityUnknownItem(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	err := store.SetQuantity(models.CategoryAvoidable, "pizza", 1)
	require.Error(t, err)
}

func TestSetQuantityIdempotent(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))
	before := TotalWeight(store, models.UnitPortion)
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))

	assert.Equal(t, before, TotalWeight(store, models.UnitPortion))
	assert.Equal(t, 2.0, findSelection(t, store, models.CategoryAvoidable, "rice").Quantity)
}

func TestSwitchingCategoryPreservesInput(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())

	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "egg_shells", 3))
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "milk", 1))

	// entering data in other categories never touches the first one
	assert.Equal(t, 2.0, findSelection(t, store, models.CategoryAvoidable, "rice").Quantity)
	assert.Equal(t, 3.0, findSelection(t, store, models.CategoryUnavoidable, "egg_shells").Quantity)
}

func TestActiveCategoryReturnsCopy(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))

	projection := store.ActiveCategory(models.CategoryAvoidable)
	projection[0].Quantity = 99

	assert.Equal(t, 2.0, findSelection(t, store, models.CategoryAvoidable, "rice").Quantity)
}

func findSelection(t *testing.T, store *SelectionStore, category models.Category, itemID string) Selection {
	t.Helper()
	for _, sel := range store.ActiveCategory(category) {
		if sel.Item.ID == itemID {
			return sel
		}
	}
	t.Fatalf("item %s not found in %s", itemID, category)
	return Selection{}
}
