package models

import "time"

// LoggedItem is one persisted line item. Weight is frozen at save time under
// the unit mode active then and is never recomputed, so later catalog weight
// changes do not rewrite history.
type LoggedItem struct {
	WasteItemID string   `json:"waste_item_id"`
	Quantity    float64  `json:"quantity"`
	Weight      float64  `json:"weight"`
	WasteType   Category `json:"waste_type"`
}

// LogRecord is the persisted aggregate for one logging session. Field names
// are the wire contract with the document store. Immutable once built; edits
// produce a fresh record under the same id.
type LogRecord struct {
	ID          string       `json:"id"`
	Date        int64        `json:"date"` // unix milliseconds
	Title       string       `json:"title"`
	WasteType   Category     `json:"waste_type"`  // primary category, see WasteTypes
	WasteTypes  []Category   `json:"waste_types"` // every category with a logged item
	CalcType    UnitMode     `json:"calc_type"`
	TotalWeight float64      `json:"total_weight"` // grams, equals sum of item weights
	Remarks     string       `json:"remarks,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Items       []LoggedItem `json:"items"`
}

// Timestamp converts the record date to a time.Time.
func (r *LogRecord) Timestamp() time.Time {
	return time.UnixMilli(r.Date)
}

// UsesCategory reports whether the record logged at least one item in c.
func (r *LogRecord) UsesCategory(c Category) bool {
	for _, used := range r.WasteTypes {
		if used == c {
			return true
		}
	}
	return false
}

// LogSummary is the listing projection of a record, enough for history views.
type LogSummary struct {
	ID          string     `json:"id"`
	Date        int64      `json:"date"`
	Title       string     `json:"title"`
	WasteTypes  []Category `json:"waste_types"`
	TotalWeight float64    `json:"total_weight"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// UserProfile is the per-user document the profile store serves.
type UserProfile struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
