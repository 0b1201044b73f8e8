package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebornlabs/wastelog/internal/models"
)

func testScalars() ScalarFields {
	return ScalarFields{
		Date:     1700000000000,
		Title:    "dinner",
		Category: models.CategoryAvoidable,
		Mode:     models.UnitPortion,
	}
}

func TestToLogRecordEmitsOnlyPositiveQuantities(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 2))
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "milk", 0))

	record := ToLogRecord(store, models.UnitPortion, testScalars(), "", "", "")

	require.Len(t, record.Items, 1)
	assert.Equal(t, "rice", record.Items[0].WasteItemID)
	assert.Equal(t, 2.0, record.Items[0].Quantity)
	assert.Equal(t, 300.0, record.Items[0].Weight)
	assert.Equal(t, 300.0, record.TotalWeight)
}

func TestToLogRecordFreezesWeightUnderActiveMode(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "egg_shells", 45))

	scalars := testScalars()
	scalars.Mode = models.UnitGrams
	record := ToLogRecord(store, models.UnitGrams, scalars, "", "", "")

	// 45 raw grams, not 45 portions of 5g
	require.Len(t, record.Items, 1)
	assert.Equal(t, 45.0, record.Items[0].Weight)
}

func TestToLogRecordPrimaryCategory(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryFoodRelated, "plastic_bag", 1))

	// one category used: it wins over the form's category
	record := ToLogRecord(store, models.UnitPortion, testScalars(), "", "", "")
	assert.Equal(t, models.CategoryFoodRelated, record.WasteType)
	assert.Equal(t, []models.Category{models.CategoryFoodRelated}, record.WasteTypes)

	// two categories used: fall back to the form's category
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "fish_skin", 1))
	record = ToLogRecord(store, models.UnitPortion, testScalars(), "", "", "")
	assert.Equal(t, models.CategoryAvoidable, record.WasteType)
	assert.Len(t, record.WasteTypes, 2)
}

func TestToLogRecordIdentity(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 1))

	fresh := ToLogRecord(store, models.UnitPortion, testScalars(), "", "", "")
	assert.NotEmpty(t, fresh.ID)

	edited := ToLogRecord(store, models.UnitPortion, testScalars(), "existing-id", "", "")
	assert.Equal(t, "existing-id", edited.ID)
}

func TestToLogRecordImageURLPrecedence(t *testing.T) {
	store := NewSelectionStore(models.DefaultCatalog())
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "rice", 1))

	kept := ToLogRecord(store, models.UnitPortion, testScalars(), "id", "https://old.example/a.jpg", "")
	assert.Equal(t, "https://old.example/a.jpg", kept.ImageURL)

	replaced := ToLogRecord(store, models.UnitPortion, testScalars(), "id", "https://old.example/a.jpg", "https://new.example/b.jpg")
	assert.Equal(t, "https://new.example/b.jpg", replaced.ImageURL)
}

func TestToSelectionStoreSkipsUnknownItems(t *testing.T) {
	record := &models.LogRecord{
		ID:       "r1",
		Date:     1700000000000,
		Title:    "old log",
		CalcType: models.UnitPortion,
		Items: []models.LoggedItem{
			{WasteItemID: "discontinued_item", Quantity: 3, Weight: 90, WasteType: models.CategoryAvoidable},
			{WasteItemID: "rice", Quantity: 2, Weight: 300, WasteType: models.CategoryAvoidable},
		},
	}

	store, _ := ToSelectionStore(record, models.DefaultCatalog())

	var nonZero int
	for _, category := range models.Categories {
		for _, sel := range store.ActiveCategory(category) {
			if sel.Quantity > 0 {
				nonZero++
				assert.Equal(t, "rice", sel.Item.ID)
			}
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestToSelectionStoreScalars(t *testing.T) {
	record := &models.LogRecord{
		ID:        "r1",
		Date:      1700000000000,
		Title:     "lunch",
		WasteType: models.CategoryUnavoidable,
		CalcType:  models.UnitGrams,
		Remarks:   "half a plate",
	}

	_, scalars := ToSelectionStore(record, models.DefaultCatalog())
	assert.Equal(t, int64(1700000000000), scalars.Date)
	assert.Equal(t, "lunch", scalars.Title)
	assert.Equal(t, models.CategoryUnavoidable, scalars.Category)
	assert.Equal(t, models.UnitGrams, scalars.Mode)
	assert.Equal(t, "half a plate", scalars.Remarks)
}

func TestRoundTripPreservesPositiveSelections(t *testing.T) {
	catalog := models.DefaultCatalog()
	store := NewSelectionStore(catalog)
	require.NoError(t, store.SetQuantity(models.CategoryUnavoidable, "chicken_bones", 2))
	require.NoError(t, store.SetQuantity(models.CategoryAvoidable, "noodles", 1.5))
	require.NoError(t, store.SetQuantity(models.CategoryFoodRelated, "paper_plates", 4))

	record := ToLogRecord(store, models.UnitPortion, testScalars(), "", "", "")
	reloaded, _ := ToSelectionStore(record, catalog)

	for _, category := range models.Categories {
		original := store.ActiveCategory(category)
		restored := reloaded.ActiveCategory(category)
		require.Len(t, restored, len(original))
		for i := range original {
			assert.Equal(t, original[i].Quantity, restored[i].Quantity,
				"quantity mismatch for %s", original[i].Item.ID)
		}
	}
	assert.Equal(t, TotalWeight(store, models.UnitPortion), TotalWeight(reloaded, models.UnitPortion))
}
