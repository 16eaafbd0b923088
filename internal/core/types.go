package core

import "time"

// RecordKind distinguishes the two shapes a recipe result can take.
type RecordKind string

const (
	// RecordBasic carries only the fields returned by the ingredient search.
	RecordBasic RecordKind = "basic"
	// RecordDetailed carries the enriched fields from the bulk information fetch.
	RecordDetailed RecordKind = "detailed"
)

// RecipeSummary is the shape returned by the ingredient-search endpoint.
type RecipeSummary struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Image             string `json:"image,omitempty"`
	UsedIngredients   int    `json:"used_ingredient_count"`
	MissedIngredients int    `json:"missed_ingredient_count"`
}

// IngredientAmount is one extended ingredient line of a detailed recipe.
type IngredientAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

// Nutrient is one nutrition line of a detailed recipe.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit,omitempty"`
}

// RecipeDetail is the enriched shape returned by the bulk information endpoint.
type RecipeDetail struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	Image          string             `json:"image,omitempty"`
	Summary        string             `json:"summary,omitempty"`
	SourceURL      string             `json:"source_url,omitempty"`
	Servings       int                `json:"servings,omitempty"`
	ReadyInMinutes int                `json:"ready_in_minutes,omitempty"`
	Ingredients    []IngredientAmount `json:"ingredients,omitempty"`
	Nutrients      []Nutrient         `json:"nutrients,omitempty"`
}

// RecipeRecord is the tagged variant consumers receive: either a basic
// summary (detail fetch skipped or failed) or a detailed recipe. Exactly one
// of Basic/Detail is set, per Kind.
type RecipeRecord struct {
	Kind   RecordKind     `json:"kind"`
	Basic  *RecipeSummary `json:"basic,omitempty"`
	Detail *RecipeDetail  `json:"detail,omitempty"`
}

// Title returns the display title regardless of shape, "unknown" when the
// remote payload carried none.
func (r RecipeRecord) Title() string {
	switch r.Kind {
	case RecordDetailed:
		if r.Detail != nil && r.Detail.Title != "" {
			return r.Detail.Title
		}
	case RecordBasic:
		if r.Basic != nil && r.Basic.Title != "" {
			return r.Basic.Title
		}
	}
	return "unknown"
}

// ID returns the recipe identifier regardless of shape, or 0.
func (r RecipeRecord) ID() int {
	switch r.Kind {
	case RecordDetailed:
		if r.Detail != nil {
			return r.Detail.ID
		}
	case RecordBasic:
		if r.Basic != nil {
			return r.Basic.ID
		}
	}
	return 0
}

// QuotaStatus is a point-in-time view of the daily request quota.
type QuotaStatus struct {
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	Day       string `json:"day"`
}

// Provenance captures metadata about how a search was resolved.
type Provenance struct {
	LookupID    string    `json:"lookup_id"`
	RequestedAt time.Time `json:"requested_at"`
	ResolvedAt  time.Time `json:"resolved_at"`
	FromCache   bool      `json:"from_cache"`
}

// SearchResult is what the lookup service returns to both surfaces. Message
// carries a user-facing note when the lookup degraded (search failed, detail
// fetch skipped) without aborting.
type SearchResult struct {
	Ingredients []string       `json:"ingredients"`
	Records     []RecipeRecord `json:"records"`
	Quota       QuotaStatus    `json:"quota"`
	Provenance  Provenance     `json:"provenance"`
	Message     string         `json:"message,omitempty"`
}
