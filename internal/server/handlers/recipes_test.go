package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"

	"github.com/pantrychef/pantrychef/internal/core"
	"github.com/pantrychef/pantrychef/internal/core/planner"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/observability"
)

type stubSearcher struct {
	result *core.SearchResult
	err    error
	quota  core.QuotaStatus

	gotIngredients []string
}

func (s *stubSearcher) Search(ctx context.Context, ingredients []string, opts planner.Options) (*core.SearchResult, error) {
	s.gotIngredients = ingredients
	return s.result, s.err
}

func (s *stubSearcher) QuotaStatus() core.QuotaStatus {
	return s.quota
}

func postForm(t *testing.T, h *RecipeHandler, ingredients string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"ingredients": {ingredients}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.ServeSearch(rec, req)
	return rec
}

func TestServeFormRendersQuotaBanner(t *testing.T) {
	h := &RecipeHandler{Searcher: &stubSearcher{quota: core.QuotaStatus{Remaining: 42, Limit: 100}}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.ServeForm(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Enter your ingredients") {
		t.Fatal("expected search form in response")
	}
	if !strings.Contains(body, "42/100") {
		t.Fatalf("expected quota banner 42/100 in response, got:\n%s", body)
	}
}

func TestServeSearchRendersRecipes(t *testing.T) {
	searcher := &stubSearcher{
		result: &core.SearchResult{
			Records: []core.RecipeRecord{
				{Kind: core.RecordDetailed, Detail: &core.RecipeDetail{
					ID:      101,
					Title:   "Tomato Soup",
					Image:   "https://img.example/101.jpg",
					Summary: "<b>A classic</b> soup.",
				}},
			},
		},
		quota: core.QuotaStatus{Remaining: 98, Limit: 100},
	}
	h := &RecipeHandler{Searcher: searcher}

	rec := postForm(t, h, "tomato, bread ")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Tomato Soup") {
		t.Fatal("expected recipe title in response")
	}
	if !strings.Contains(body, "A classic soup.") {
		t.Fatal("expected summary with markup stripped")
	}
	if strings.Contains(body, "<b>") {
		t.Fatal("expected remote markup to be removed")
	}

	if len(searcher.gotIngredients) != 2 || searcher.gotIngredients[0] != "tomato" || searcher.gotIngredients[1] != "bread" {
		t.Fatalf("expected parsed ingredients [tomato bread], got %v", searcher.gotIngredients)
	}
}

func TestServeSearchEmptyInputShowsError(t *testing.T) {
	searcher := &stubSearcher{quota: core.QuotaStatus{Remaining: 100, Limit: 100}}
	h := &RecipeHandler{Searcher: searcher}

	rec := postForm(t, h, "  , ,")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please enter some ingredients!") {
		t.Fatal("expected empty-input error message")
	}
	if searcher.gotIngredients != nil {
		t.Fatal("expected no search for empty input")
	}
}

func TestServeSearchQuotaExhaustedShowsMessage(t *testing.T) {
	searcher := &stubSearcher{err: planner.ErrQuotaExhausted}
	h := &RecipeHandler{Searcher: searcher}

	rec := postForm(t, h, "tomato")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Daily API quota exceeded") {
		t.Fatal("expected quota exhaustion message")
	}
}

func TestServeSearchNoResultsShowsMessage(t *testing.T) {
	searcher := &stubSearcher{result: &core.SearchResult{}}
	h := &RecipeHandler{Searcher: searcher}

	rec := postForm(t, h, "unicorn")

	if !strings.Contains(rec.Body.String(), "No recipes found with those ingredients.") {
		t.Fatal("expected no-results message")
	}
}

func setupTelemetry(t *testing.T) *telemetrytesting.FakeCollector {
	t.Helper()

	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{
		Enabled: true,
		Emitter: collector,
	})
	if err != nil {
		t.Fatalf("failed to create telemetry system: %v", err)
	}

	originalTelemetry := observability.TelemetrySystem
	observability.TelemetrySystem = sys
	t.Cleanup(func() {
		observability.TelemetrySystem = originalTelemetry
	})

	return collector
}

func TestServeSearchEmitsSearchMetrics(t *testing.T) {
	collector := setupTelemetry(t)

	searcher := &stubSearcher{result: &core.SearchResult{}}
	h := &RecipeHandler{Searcher: searcher}

	postForm(t, h, "tomato")

	if got := collector.CountMetricsByName(metrics.SearchesTotal); got != 1 {
		t.Fatalf("expected one search counter, got %d", got)
	}
	if got := collector.CountMetricsByName(metrics.SearchDuration); got != 1 {
		t.Fatalf("expected one search duration sample, got %d", got)
	}
}

func TestServeSearchQuotaDenialEmitsMetric(t *testing.T) {
	collector := setupTelemetry(t)

	searcher := &stubSearcher{err: planner.ErrQuotaExhausted}
	h := &RecipeHandler{Searcher: searcher}

	postForm(t, h, "tomato")

	if got := collector.CountMetricsByName(metrics.QuotaDenialsTotal); got != 1 {
		t.Fatalf("expected one quota denial counter, got %d", got)
	}
	if got := collector.CountMetricsByName(metrics.SearchesTotal); got != 0 {
		t.Fatalf("expected no search counter on denial, got %d", got)
	}
}

func TestCleanSummaryTruncatesLongText(t *testing.T) {
	long := strings.Repeat("word ", 100)

	cleaned := cleanSummary(long)
	if len([]rune(cleaned)) != summaryDisplayLimit+3 {
		t.Fatalf("expected truncated summary with ellipsis, got %d runes", len([]rune(cleaned)))
	}
	if !strings.HasSuffix(cleaned, "...") {
		t.Fatal("expected ellipsis suffix")
	}
}
