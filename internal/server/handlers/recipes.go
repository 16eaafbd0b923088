package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pantrychef/pantrychef/internal/core"
	"github.com/pantrychef/pantrychef/internal/core/planner"
	apperrors "github.com/pantrychef/pantrychef/internal/errors"
	"github.com/pantrychef/pantrychef/internal/metrics"
)

// RecipeSearcher resolves an ingredient list to recipe records.
type RecipeSearcher interface {
	Search(ctx context.Context, ingredients []string, opts planner.Options) (*core.SearchResult, error)
	QuotaStatus() core.QuotaStatus
}

// RecipeHandler serves the ingredient search form and its results.
type RecipeHandler struct {
	Searcher   RecipeSearcher
	MaxRecipes int
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

const summaryDisplayLimit = 200

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>PantryChef</title>
    <style>
        body {
            background: #f5f5dc;
            min-height: 100vh;
            margin: 0;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .center-box {
            background: white;
            padding: 2rem 2.5rem;
            border-radius: 12px;
            box-shadow: 0 2px 12px rgba(0,0,0,0.07);
            display: flex;
            flex-direction: column;
            align-items: center;
        }
        input[type="text"] {
            width: 300px;
            padding: 0.5rem;
            font-size: 1rem;
            border-radius: 6px;
            border: 1px solid #ccc;
            margin-bottom: 1rem;
        }
        button {
            background: #f5f5dc;
            border: none;
            padding: 0.5rem 1.5rem;
            border-radius: 6px;
            font-size: 1rem;
            cursor: pointer;
        }
        .results {
            margin-top: 2rem;
            text-align: left;
        }
        .recipe img { max-width: 200px; }
        .error { color: #a33; }
        .quota { margin-top: 1rem; font-size: 0.85rem; color: #777; }
    </style>
</head>
<body>
    <form method="POST" action="/">
        <div class="center-box">
            <h2>Enter your ingredients</h2>
            <input type="text" name="ingredients" placeholder="e.g. tomato, cheese, bread" required>
            <button type="submit">Find Recipes</button>
            {{if .Error}}
            <div class="results"><div class="error">{{.Error}}</div></div>
            {{else if .Searched}}
            <div class="results">
                {{if .Recipes}}
                <h2>Found {{len .Recipes}} recipes:</h2>
                {{range .Recipes}}
                <div class="recipe">
                    <h3>{{.Title}}</h3>
                    {{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
                    {{if .Summary}}<p>{{.Summary}}</p>{{end}}
                </div>
                {{end}}
                {{else}}
                <div class="error">No recipes found with those ingredients.</div>
                {{end}}
                {{if .Note}}<div class="quota">{{.Note}}</div>{{end}}
            </div>
            {{end}}
            <div class="quota">API requests remaining today: {{.Remaining}}/{{.Limit}}</div>
        </div>
    </form>
</body>
</html>
`))

type recipeView struct {
	Title   string
	Image   string
	Summary string
}

type pageData struct {
	Searched  bool
	Recipes   []recipeView
	Error     string
	Note      string
	Remaining int
	Limit     int
}

// ServeForm renders the empty search form with the current quota banner.
func (h *RecipeHandler) ServeForm(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Searcher == nil {
		respondWithError(w, r, apperrors.NewInternalError("recipe search is not configured"))
		return
	}

	h.render(w, r, pageData{})
}

// ServeSearch handles the form submission and renders the results inline.
func (h *RecipeHandler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Searcher == nil {
		respondWithError(w, r, apperrors.NewInternalError("recipe search is not configured"))
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "malformed form submission"))
		return
	}

	ingredients := splitIngredients(r.PostFormValue("ingredients"))
	if len(ingredients) == 0 {
		h.render(w, r, pageData{Searched: true, Error: "Please enter some ingredients!"})
		return
	}

	start := time.Now()
	result, err := h.Searcher.Search(r.Context(), ingredients, planner.Options{MaxRecipes: h.MaxRecipes})
	if err != nil {
		if errors.Is(err, planner.ErrQuotaExhausted) {
			metrics.RecordQuotaDenial("web")
			h.render(w, r, pageData{Searched: true, Error: "Daily API quota exceeded! Try again tomorrow."})
			return
		}
		metrics.RecordSearch("web", false, time.Since(start))
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "recipe search failed"))
		return
	}
	metrics.RecordSearch("web", true, time.Since(start))

	data := pageData{Searched: true, Note: result.Message}
	for _, record := range result.Records {
		data.Recipes = append(data.Recipes, toView(record))
	}
	h.render(w, r, data)
}

func (h *RecipeHandler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	quota := h.Searcher.QuotaStatus()
	data.Remaining = quota.Remaining
	data.Limit = quota.Limit

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "template rendering failed"))
	}
}

func toView(record core.RecipeRecord) recipeView {
	view := recipeView{Title: record.Title()}

	switch record.Kind {
	case core.RecordDetailed:
		if record.Detail != nil {
			view.Image = record.Detail.Image
			view.Summary = cleanSummary(record.Detail.Summary)
		}
	case core.RecordBasic:
		if record.Basic != nil {
			view.Image = record.Basic.Image
		}
	}

	return view
}

// cleanSummary strips markup from the remote summary and truncates it for
// display.
func cleanSummary(summary string) string {
	text := strings.TrimSpace(htmlTagPattern.ReplaceAllString(summary, ""))
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) > summaryDisplayLimit {
		return string(runes[:summaryDisplayLimit]) + "..."
	}
	return text
}

func splitIngredients(input string) []string {
	parts := strings.Split(input, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			ingredients = append(ingredients, item)
		}
	}
	return ingredients
}
