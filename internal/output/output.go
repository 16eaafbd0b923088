// Package output renders search results for the CLI.
package output

import (
	"fmt"
	"strings"

	"github.com/pantrychef/pantrychef/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatText  Format = "text"
)

// Formatter renders a search result.
type Formatter interface {
	FormatResult(result *core.SearchResult) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatText):
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatText:
		return &TextFormatter{}
	default:
		return &TableFormatter{}
	}
}

// QuotaBanner renders the one-line quota summary shown after CLI output.
func QuotaBanner(status core.QuotaStatus) string {
	return fmt.Sprintf("API requests remaining today: %d/%d", status.Remaining, status.Limit)
}
