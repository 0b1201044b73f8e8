package session

import "github.com/rebornlabs/wastelog/internal/models"

// itemWeight converts one selection to grams under the given unit mode.
func itemWeight(sel Selection, mode models.UnitMode) float64 {
	if mode == models.UnitGrams {
		return sel.Quantity
	}
	return sel.Quantity * sel.Item.UnitWeightGrams
}

// TotalWeight sums the weight of every selection across all categories, not
// just the visible one. Recomputed from scratch on every call; there is no
// cache to go stale between edits.
func TotalWeight(store *SelectionStore, mode models.UnitMode) float64 {
	var total float64
	for _, category := range models.Categories {
		for _, sel := range store.selections[category] {
			total += itemWeight(sel, mode)
		}
	}
	return total
}

// CategoriesUsed returns every category holding at least one selection with a
// positive quantity, in display order. An empty result is legal here; commit
// is where an empty session gets rejected.
func CategoriesUsed(store *SelectionStore) []models.Category {
	var used []models.Category
	for _, category := range models.Categories {
		for _, sel := range store.selections[category] {
			if sel.Quantity > 0 {
				used = append(used, category)
				break
			}
		}
	}
	return used
}
