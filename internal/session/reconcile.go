package session

import (
	"github.com/lucsky/cuid"

	"github.com/rebornlabs/wastelog/internal/models"
)

// ScalarFields carries the non-item state of a session: everything the form
// edits besides quantities.
type ScalarFields struct {
	Date     int64 // unix milliseconds
	Title    string
	Category models.Category // the category tab last selected in the form
	Mode     models.UnitMode
	Remarks  string
}

// ToSelectionStore rebuilds editable session state from a persisted record.
// Every item starts at zero, then each logged item overwrites the matching
// catalog entry's quantity. Items whose id is no longer in the catalog are
// skipped without error, so records written against an older catalog still
// load.
func ToSelectionStore(record *models.LogRecord, catalog models.Catalog) (*SelectionStore, ScalarFields) {
	store := NewSelectionStore(catalog)
	for _, logged := range record.Items {
		if _, ok := catalog.Find(logged.WasteType, logged.WasteItemID); !ok {
			continue
		}
		// Quantities in a persisted record are non-negative by construction.
		_ = store.SetQuantity(logged.WasteType, logged.WasteItemID, logged.Quantity)
	}
	scalars := ScalarFields{
		Date:     record.Date,
		Title:    record.Title,
		Category: record.WasteType,
		Mode:     record.CalcType,
		Remarks:  record.Remarks,
	}
	return store, scalars
}

// ToLogRecord assembles the persisted record for the current session state.
// Only positive-quantity selections are emitted, each with its weight frozen
// under the active unit mode. existingID keeps the identity of an edited
// record; a new one gets a cuid. uploadedAssetURL wins over existingAssetURL
// so an unchanged photo is carried forward.
func ToLogRecord(store *SelectionStore, mode models.UnitMode, scalars ScalarFields, existingID, existingAssetURL, uploadedAssetURL string) *models.LogRecord {
	var items []models.LoggedItem
	for _, category := range models.Categories {
		for _, sel := range store.selections[category] {
			if sel.Quantity <= 0 {
				continue
			}
			items = append(items, models.LoggedItem{
				WasteItemID: sel.Item.ID,
				Quantity:    sel.Quantity,
				Weight:      itemWeight(sel, mode),
				WasteType:   category,
			})
		}
	}

	var total float64
	for _, item := range items {
		total += item.Weight
	}

	used := CategoriesUsed(store)
	primary := scalars.Category
	if len(used) == 1 {
		primary = used[0]
	}

	id := existingID
	if id == "" {
		id = cuid.New()
	}

	imageURL := existingAssetURL
	if uploadedAssetURL != "" {
		imageURL = uploadedAssetURL
	}

	return &models.LogRecord{
		ID:          id,
		Date:        scalars.Date,
		Title:       scalars.Title,
		WasteType:   primary,
		WasteTypes:  used,
		CalcType:    mode,
		TotalWeight: total,
		Remarks:     scalars.Remarks,
		ImageURL:    imageURL,
		Items:       items,
	}
}
