package spoonacular

import (
	"strings"

	"github.com/pantrychef/pantrychef/internal/core"
)

// searchItem is one entry of the findByIngredients response array.
type searchItem struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
}

func (s searchItem) toSummary() core.RecipeSummary {
	return core.RecipeSummary{
		ID:                s.ID,
		Title:             strings.TrimSpace(s.Title),
		Image:             strings.TrimSpace(s.Image),
		UsedIngredients:   s.UsedIngredientCount,
		MissedIngredients: s.MissedIngredientCount,
	}
}

// bulkItem is one entry of the informationBulk response array. Fields the
// remote API omits decode to their zero values; rendering supplies the
// placeholder text.
type bulkItem struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	Image               string           `json:"image"`
	Summary             string           `json:"summary"`
	SourceURL           string           `json:"sourceUrl"`
	Servings            int              `json:"servings"`
	ReadyInMinutes      int              `json:"readyInMinutes"`
	ExtendedIngredients []bulkIngredient `json:"extendedIngredients"`
	Nutrition           *bulkNutrition   `json:"nutrition"`
}

type bulkIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type bulkNutrition struct {
	Nutrients []bulkNutrient `json:"nutrients"`
}

type bulkNutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (b bulkItem) toDetail() core.RecipeDetail {
	detail := core.RecipeDetail{
		ID:             b.ID,
		Title:          strings.TrimSpace(b.Title),
		Image:          strings.TrimSpace(b.Image),
		Summary:        strings.TrimSpace(b.Summary),
		SourceURL:      strings.TrimSpace(b.SourceURL),
		Servings:       b.Servings,
		ReadyInMinutes: b.ReadyInMinutes,
	}

	for _, ing := range b.ExtendedIngredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		detail.Ingredients = append(detail.Ingredients, core.IngredientAmount{
			Name:   name,
			Amount: ing.Amount,
			Unit:   strings.TrimSpace(ing.Unit),
		})
	}

	if b.Nutrition != nil {
		for _, n := range b.Nutrition.Nutrients {
			name := strings.TrimSpace(n.Name)
			if name == "" {
				continue
			}
			detail.Nutrients = append(detail.Nutrients, core.Nutrient{
				Name:   name,
				Amount: n.Amount,
				Unit:   strings.TrimSpace(n.Unit),
			})
		}
	}

	return detail
}
