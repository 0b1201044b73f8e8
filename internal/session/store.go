package session

import (
	"fmt"

	"github.com/rebornlabs/wastelog/internal/models"
)

// Selection is the chosen quantity for one catalog item in the current
// session. Quantity is never negative.
type Selection struct {
	Item     models.CatalogItem
	Quantity float64
}

// SelectionStore holds the editable state of one logging session: for every
// category, one Selection per catalog item, in catalog order. It is always
// fully populated so the form never has to null-check, and it is owned by a
// single editing session (no internal locking).
type SelectionStore struct {
	catalog    models.Catalog
	selections map[models.Category][]Selection
}

// NewSelectionStore builds a store with every catalog item at quantity zero.
func NewSelectionStore(catalog models.Catalog) *SelectionStore {
	selections := make(map[models.Category][]Selection, len(models.Categories))
	for _, category := range models.Categories {
		items := catalog.Items(category)
		list := make([]Selection, len(items))
		for i, item := range items {
			list[i] = Selection{Item: item}
		}
		selections[category] = list
	}
	return &SelectionStore{catalog: catalog, selections: selections}
}

// SetQuantity replaces the quantity for one item in one category. Other
// categories are untouched, so switching tabs never loses entered input.
// Negative quantities are rejected with ErrInvalidQuantity.
func (s *SelectionStore) SetQuantity(category models.Category, itemID string, qty float64) error {
	if qty < 0 {
		return fmt.Errorf("%w: %v for %s", models.ErrInvalidQuantity, qty, itemID)
	}
	list := s.selections[category]
	for i := range list {
		if list[i].Item.ID == itemID {
			list[i].Quantity = qty
			return nil
		}
	}
	return fmt.Errorf("item %q is not in the %s catalog", itemID, category.DisplayName())
}

// ActiveCategory returns a copy of the selections for one category, the slice
// the form renders for the visible tab. Mutating the copy does not touch the
// store.
func (s *SelectionStore) ActiveCategory(category models.Category) []Selection {
	list := s.selections[category]
	out := make([]Selection, len(list))
	copy(out, list)
	return out
}

// Catalog returns the catalog this store was built from.
func (s *SelectionStore) Catalog() models.Catalog {
	return s.catalog
}
