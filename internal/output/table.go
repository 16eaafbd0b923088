package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pantrychef/pantrychef/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatResult renders a search result as a table.
func (f *TableFormatter) FormatResult(result *core.SearchResult) (string, error) {
	if result == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Recipe", "Servings", "Ready In", "Used", "Missing"})

	for _, record := range result.Records {
		t.AppendRow(tableRow(record))
	}

	if len(result.Records) > 0 {
		t.AppendFooter(table.Row{
			"",
			fmt.Sprintf("%d recipes", len(result.Records)),
			"", "", "", "",
		})
	}

	rendered := t.Render()
	if result.Message != "" {
		rendered += "\n" + result.Message
	}
	return rendered, nil
}

func tableRow(record core.RecipeRecord) table.Row {
	switch record.Kind {
	case core.RecordDetailed:
		detail := record.Detail
		if detail == nil {
			break
		}
		return table.Row{
			detail.ID,
			record.Title(),
			intOrPlaceholder(detail.Servings),
			readyLabel(detail.ReadyInMinutes),
			"-",
			"-",
		}
	case core.RecordBasic:
		basic := record.Basic
		if basic == nil {
			break
		}
		return table.Row{
			basic.ID,
			record.Title(),
			"-",
			"-",
			basic.UsedIngredients,
			basic.MissedIngredients,
		}
	}
	return table.Row{0, record.Title(), "-", "-", "-", "-"}
}

func intOrPlaceholder(value int) string {
	if value <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d", value)
}

func readyLabel(minutes int) string {
	if minutes <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d min", minutes)
}
