package output

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pantrychef/pantrychef/internal/core"
)

// TextFormatter renders the full recipe details as plain text, one recipe
// per section.
type TextFormatter struct{}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// FormatResult renders a search result as plain text.
func (f *TextFormatter) FormatResult(result *core.SearchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	if len(result.Records) == 0 {
		if result.Message != "" {
			return result.Message, nil
		}
		return "No recipes found.", nil
	}

	sections := make([]string, 0, len(result.Records))
	for _, record := range result.Records {
		sections = append(sections, formatRecord(record))
	}

	rendered := strings.Join(sections, "\n\n---\n\n")
	if result.Message != "" {
		rendered += "\n\n" + result.Message
	}
	return rendered, nil
}

func formatRecord(record core.RecipeRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Title: %s\n", record.Title())

	switch record.Kind {
	case core.RecordDetailed:
		formatDetail(&sb, record.Detail)
	case core.RecordBasic:
		formatBasic(&sb, record.Basic)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatDetail(sb *strings.Builder, detail *core.RecipeDetail) {
	if detail == nil {
		return
	}

	if summary := strings.TrimSpace(markupPattern.ReplaceAllString(detail.Summary, "")); summary != "" {
		fmt.Fprintf(sb, "\nSummary: %s\n", summary)
	}
	if detail.Servings > 0 {
		fmt.Fprintf(sb, "Servings: %d\n", detail.Servings)
	}
	if detail.ReadyInMinutes > 0 {
		fmt.Fprintf(sb, "Ready in: %d minutes\n", detail.ReadyInMinutes)
	}
	if detail.SourceURL != "" {
		fmt.Fprintf(sb, "Source: %s\n", detail.SourceURL)
	}

	if len(detail.Ingredients) > 0 {
		sb.WriteString("Ingredients:\n")
		for _, ing := range detail.Ingredients {
			fmt.Fprintf(sb, "- %s: %s %s\n", ing.Name, amountLabel(ing.Amount), ing.Unit)
		}
	}

	if len(detail.Nutrients) > 0 {
		sb.WriteString("\nNutritional Information:\n")
		for _, nutrient := range detail.Nutrients {
			// Zero amounts add noise, skip them.
			if nutrient.Amount == 0 {
				continue
			}
			fmt.Fprintf(sb, "- %s: %g %s\n", nutrient.Name, nutrient.Amount, nutrient.Unit)
		}
	} else {
		sb.WriteString("\nNo nutritional information available\n")
	}
}

func formatBasic(sb *strings.Builder, basic *core.RecipeSummary) {
	if basic == nil {
		return
	}

	fmt.Fprintf(sb, "Uses %d of your ingredients, missing %d\n", basic.UsedIngredients, basic.MissedIngredients)
}

func amountLabel(amount float64) string {
	if amount == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%g", amount)
}
