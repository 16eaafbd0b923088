package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/internal/core"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func sampleResult() *core.SearchResult {
	return &core.SearchResult{
		Ingredients: []string{"chicken", "rice"},
		Records: []core.RecipeRecord{
			{
				Kind: core.RecordDetailed,
				Detail: &core.RecipeDetail{
					ID:             101,
					Title:          "Chicken Rice",
					Summary:        "<b>A classic</b> one-pot dish.",
					Servings:       4,
					ReadyInMinutes: 35,
					Ingredients: []core.IngredientAmount{
						{Name: "chicken", Amount: 500, Unit: "g"},
						{Name: "rice", Amount: 2, Unit: "cups"},
					},
					Nutrients: []core.Nutrient{
						{Name: "Calories", Amount: 420, Unit: "kcal"},
						{Name: "Sugar", Amount: 0, Unit: "g"},
					},
				},
			},
			{
				Kind: core.RecordBasic,
				Basic: &core.RecipeSummary{
					ID:                102,
					Title:             "Fried Rice",
					UsedIngredients:   1,
					MissedIngredients: 2,
				},
			},
		},
		Quota: core.QuotaStatus{Used: 2, Remaining: 98, Limit: 100},
	}
}

func TestTableFormatter(t *testing.T) {
	rendered, err := NewFormatter(FormatTable).FormatResult(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "RECIPE")
	require.Contains(t, rendered, "Chicken Rice")
	require.Contains(t, rendered, "35 min")
	require.Contains(t, rendered, "Fried Rice")
	require.Contains(t, rendered, "2 recipes")
}

func TestJSONFormatter(t *testing.T) {
	rendered, err := NewFormatter(FormatJSON).FormatResult(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "\"title\": \"Chicken Rice\"")
	require.Contains(t, rendered, "\"kind\": \"detailed\"")
	require.Contains(t, rendered, "\"kind\": \"basic\"")
	require.Contains(t, rendered, "\"remaining\": 98")
}

func TestTextFormatterShowsDetailSections(t *testing.T) {
	rendered, err := NewFormatter(FormatText).FormatResult(sampleResult())
	require.NoError(t, err)
	require.Contains(t, rendered, "Title: Chicken Rice")
	require.Contains(t, rendered, "A classic one-pot dish.")
	require.NotContains(t, rendered, "<b>")
	require.Contains(t, rendered, "- chicken: 500 g")
	require.Contains(t, rendered, "- Calories: 420 kcal")
	// Zero-amount nutrients are omitted.
	require.NotContains(t, rendered, "Sugar")
	require.Contains(t, rendered, "Uses 1 of your ingredients, missing 2")
	require.True(t, strings.Contains(rendered, "---"))
}

func TestTextFormatterEmptyResult(t *testing.T) {
	rendered, err := NewFormatter(FormatText).FormatResult(&core.SearchResult{})
	require.NoError(t, err)
	require.Equal(t, "No recipes found.", rendered)

	rendered, err = NewFormatter(FormatText).FormatResult(&core.SearchResult{Message: "no recipes found for these ingredients"})
	require.NoError(t, err)
	require.Equal(t, "no recipes found for these ingredients", rendered)
}

func TestQuotaBanner(t *testing.T) {
	banner := QuotaBanner(core.QuotaStatus{Remaining: 97, Limit: 100})
	require.Equal(t, "API requests remaining today: 97/100", banner)
}
