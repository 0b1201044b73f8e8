package models

import (
	"fmt"
	"strings"
)

// Category classifies a waste item. The three values are fixed; persisted
// records reference them by name.
type Category string

const (
	CategoryUnavoidable Category = "UNAVOIDABLE"
	CategoryAvoidable   Category = "AVOIDABLE"
	CategoryFoodRelated Category = "FOOD_RELATED"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryUnavoidable, CategoryAvoidable, CategoryFoodRelated}

func (c Category) DisplayName() string {
	switch c {
	case CategoryUnavoidable:
		return "Unavoidable"
	case CategoryAvoidable:
		return "Avoidable"
	case CategoryFoodRelated:
		return "Food-related"
	}
	return string(c)
}

// ParseCategory accepts the wire name or the display name, case-insensitive.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) || strings.EqualFold(c.DisplayName(), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown waste category %q", s)
}

// UnitMode governs how a selection quantity converts to grams: Grams means
// the quantity already is grams, Portion multiplies by the item's unit weight.
type UnitMode string

const (
	UnitGrams   UnitMode = "GRAMS"
	UnitPortion UnitMode = "PORTION"
)

func ParseUnitMode(s string) (UnitMode, error) {
	switch s {
	case "GRAMS", "grams":
		return UnitGrams, nil
	case "PORTION", "portion":
		return UnitPortion, nil
	}
	return "", fmt.Errorf("unknown unit mode %q", s)
}

// CatalogItem is one selectable waste item. UnitWeightGrams is the weight of
// a single portion, used only in Portion mode.
type CatalogItem struct {
	ID              string  `json:"id"`
	DisplayName     string  `json:"display_name"`
	UnitWeightGrams float64 `json:"unit_weight_grams"`
}

// Catalog is the fixed set of selectable items grouped by category. It is
// built once at startup and injected; nothing mutates it afterwards.
type Catalog map[Category][]CatalogItem

// DefaultCatalog returns the built-in item list.
func DefaultCatalog() Catalog {
	return Catalog{
		CategoryUnavoidable: {
			{ID: "fruit_seeds", DisplayName: "Fruit Seeds", UnitWeightGrams: 10},
			{ID: "fruit_peels", DisplayName: "Fruit Peels", UnitWeightGrams: 30},
			{ID: "egg_shells", DisplayName: "Eggshells", UnitWeightGrams: 5},
			{ID: "chicken_bones", DisplayName: "Chicken Bones", UnitWeightGrams: 40},
			{ID: "fish_skin", DisplayName: "Fish Skin", UnitWeightGrams: 20},
			{ID: "prawn_scales", DisplayName: "Prawn Scales", UnitWeightGrams: 10},
		},
		CategoryAvoidable: {
			{ID: "rice", DisplayName: "Rice", UnitWeightGrams: 150},
			{ID: "noodles", DisplayName: "Noodles", UnitWeightGrams: 150},
			{ID: "cookies", DisplayName: "Cookies", UnitWeightGrams: 30},
			{ID: "asparagus", DisplayName: "Asparagus", UnitWeightGrams: 90},
			{ID: "chicken", DisplayName: "Chicken", UnitWeightGrams: 120},
			{ID: "beef", DisplayName: "Beef", UnitWeightGrams: 120},
			{ID: "eggs", DisplayName: "Eggs", UnitWeightGrams: 50},
			{ID: "milk", DisplayName: "Milk", UnitWeightGrams: 240},
			{ID: "apples", DisplayName: "Apples", UnitWeightGrams: 150},
			{ID: "pork", DisplayName: "Pork", UnitWeightGrams: 120},
		},
		CategoryFoodRelated: {
			{ID: "plastic_bag", DisplayName: "Plastic Bag", UnitWeightGrams: 5},
			{ID: "plastic_bottled_water", DisplayName: "Plastic Bottled Water", UnitWeightGrams: 12},
			{ID: "disposable_utensils", DisplayName: "Disposable Utensils", UnitWeightGrams: 5},
			{ID: "plastic_cups", DisplayName: "Plastic Cups", UnitWeightGrams: 7},
			{ID: "paper_plates", DisplayName: "Paper Plates", UnitWeightGrams: 10},
			{ID: "containers_plastic", DisplayName: "Containers (Plastic)", UnitWeightGrams: 20},
			{ID: "containers_paper", DisplayName: "Containers (Paper)", UnitWeightGrams: 15},
		},
	}
}

// Items returns the catalog entries for one category.
func (c Catalog) Items(category Category) []CatalogItem {
	return c[category]
}

// Find locates an item by id within one category. The second return is false
// when the id is not part of the catalog.
func (c Catalog) Find(category Category, itemID string) (CatalogItem, bool) {
	for _, item := range c[category] {
		if item.ID == itemID {
			return item, true
		}
	}
	return CatalogItem{}, false
}
