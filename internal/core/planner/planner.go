// Package planner sequences a recipe lookup: quota admission, cache, the
// ingredient search, the ledger write, and the bulk detail enrichment. The
// detail fetch is best effort; when it is denied or fails the basic search
// results still come back.
package planner

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/pantrychef/pantrychef/internal/core"
	"github.com/pantrychef/pantrychef/internal/core/cache"
	"github.com/pantrychef/pantrychef/internal/core/spoonacular"
	"github.com/pantrychef/pantrychef/internal/metrics"
)

// ErrQuotaExhausted is returned when the daily quota admits no further calls.
// No network traffic happens on this path.
var ErrQuotaExhausted = errors.New("daily request quota exhausted")

// DefaultMaxRecipes is the result-count limit when none is requested.
const DefaultMaxRecipes = 3

// RecipeAPI is the remote recipe source.
type RecipeAPI interface {
	FindByIngredients(ctx context.Context, ingredients []string, number int, diet []string) (*spoonacular.SearchResponse, error)
	InformationBulk(ctx context.Context, ids []int) (*spoonacular.BulkResponse, error)
}

// Quota admits and records outbound API calls.
type Quota interface {
	CanMakeRequest() bool
	LogRequest(ctx context.Context, endpoint string) error
	Status() core.QuotaStatus
}

// ResultCache memoizes finished lookups keyed by normalized search input.
type ResultCache interface {
	Get(key string) (any, bool)
	Put(key string, value any, negative bool)
}

// Options tune a single lookup.
type Options struct {
	MaxRecipes int
	Diet       []string
	NoCache    bool
}

// Service is the recipe lookup coordinator.
type Service struct {
	API    RecipeAPI
	Quota  Quota
	Cache  ResultCache
	Logger *logging.Logger
	Clock  func() time.Time
}

// cachedLookup is the unit stored in the result cache. Failed lookups are
// cached too so a retry storm cannot drain the quota.
type cachedLookup struct {
	records []core.RecipeRecord
	message string
}

// Search resolves an ingredient list to recipe records. Empty input returns
// an empty result without touching quota, cache, or network. Quota exhaustion
// before the search call returns ErrQuotaExhausted.
func (s *Service) Search(ctx context.Context, ingredients []string, opts Options) (*core.SearchResult, error) {
	if s == nil || s.API == nil || s.Quota == nil {
		return nil, errors.New("lookup service is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestedAt := s.now()
	normalized := normalizeIngredients(ingredients)

	maxRecipes := opts.MaxRecipes
	if maxRecipes <= 0 {
		maxRecipes = DefaultMaxRecipes
	}

	result := &core.SearchResult{
		Ingredients: normalized,
		Provenance: core.Provenance{
			LookupID:    uuid.New().String(),
			RequestedAt: requestedAt,
		},
	}

	// Empty input resolves without touching quota, cache, or network.
	if len(normalized) == 0 {
		result.Provenance.ResolvedAt = s.now()
		return result, nil
	}

	key := cache.SearchKey(normalized, maxRecipes, opts.Diet)

	if s.Cache != nil && !opts.NoCache {
		if value, ok := s.Cache.Get(key); ok {
			if hit, ok := value.(*cachedLookup); ok {
				s.debug("cache hit", zap.String("key", key), zap.Int("records", len(hit.records)))
				metrics.RecordCacheLookup(true)
				result.Records = hit.records
				result.Message = hit.message
				s.snapshotQuota(result)
				result.Provenance.ResolvedAt = s.now()
				result.Provenance.FromCache = true
				return result, nil
			}
		}
		metrics.RecordCacheLookup(false)
	}

	if !s.Quota.CanMakeRequest() {
		s.snapshotQuota(result)
		result.Provenance.ResolvedAt = s.now()
		return result, ErrQuotaExhausted
	}

	// Bill before the wire call so a crash mid-request never under-counts.
	if err := s.Quota.LogRequest(ctx, "findByIngredients"); err != nil {
		s.warn("request ledger append failed", zap.Error(err))
	}

	search, err := s.API.FindByIngredients(ctx, normalized, maxRecipes, opts.Diet)
	if err != nil {
		return nil, err
	}
	metrics.RecordAPICall("findByIngredients", search.OK)

	if !search.OK {
		s.warn("ingredient search failed",
			zap.Int("status", search.StatusCode),
			zap.String("message", search.Message))
		result.Message = "recipe search failed, please try again later"
		s.store(key, opts, &cachedLookup{message: result.Message}, true)
		s.snapshotQuota(result)
		result.Provenance.ResolvedAt = s.now()
		return result, nil
	}

	if len(search.Summaries) == 0 {
		result.Message = "no recipes found for these ingredients"
		s.store(key, opts, &cachedLookup{message: result.Message}, true)
		s.snapshotQuota(result)
		result.Provenance.ResolvedAt = s.now()
		return result, nil
	}

	records, message := s.enrich(ctx, search.Summaries)
	result.Records = records
	result.Message = message

	s.store(key, opts, &cachedLookup{records: records, message: message}, false)

	s.snapshotQuota(result)
	result.Provenance.ResolvedAt = s.now()
	return result, nil
}

// snapshotQuota fills the result's quota view and publishes the headroom
// gauge.
func (s *Service) snapshotQuota(result *core.SearchResult) {
	result.Quota = s.Quota.Status()
	metrics.SetQuotaRemaining(result.Quota.Remaining)
}

// QuotaStatus exposes the current quota window for status displays.
func (s *Service) QuotaStatus() core.QuotaStatus {
	if s == nil || s.Quota == nil {
		return core.QuotaStatus{}
	}
	return s.Quota.Status()
}

// enrich upgrades summaries to detailed records via one bulk call. Any
// obstacle (quota, network, missing IDs in the response) degrades to basic
// records for the affected recipes.
func (s *Service) enrich(ctx context.Context, summaries []core.RecipeSummary) ([]core.RecipeRecord, string) {
	ids := make([]int, 0, len(summaries))
	for _, summary := range summaries {
		if summary.ID != 0 {
			ids = append(ids, summary.ID)
		}
	}

	if len(ids) == 0 {
		return basicRecords(summaries), ""
	}

	if !s.Quota.CanMakeRequest() {
		s.debug("detail fetch skipped", zap.String("reason", "quota exhausted"))
		return basicRecords(summaries), "detail fetch skipped to preserve quota, showing summaries"
	}

	if err := s.Quota.LogRequest(ctx, "informationBulk"); err != nil {
		s.warn("request ledger append failed", zap.Error(err))
	}

	bulk, err := s.API.InformationBulk(ctx, ids)
	metrics.RecordAPICall("informationBulk", err == nil && bulk.OK)
	if err != nil || !bulk.OK {
		if err != nil {
			s.warn("detail fetch failed", zap.Error(err))
		} else {
			s.warn("detail fetch failed",
				zap.Int("status", bulk.StatusCode),
				zap.String("message", bulk.Message))
		}
		return basicRecords(summaries), "recipe details unavailable, showing summaries"
	}

	details := make(map[int]*core.RecipeDetail, len(bulk.Details))
	for i := range bulk.Details {
		details[bulk.Details[i].ID] = &bulk.Details[i]
	}

	records := make([]core.RecipeRecord, 0, len(summaries))
	degraded := false
	for i := range summaries {
		summary := summaries[i]
		if detail, ok := details[summary.ID]; ok {
			records = append(records, core.RecipeRecord{Kind: core.RecordDetailed, Detail: detail})
			continue
		}
		degraded = true
		records = append(records, core.RecipeRecord{Kind: core.RecordBasic, Basic: &summary})
	}

	if degraded {
		return records, "some recipe details were unavailable"
	}
	return records, ""
}

func (s *Service) store(key string, opts Options, value *cachedLookup, negative bool) {
	if s.Cache == nil || opts.NoCache {
		return
	}
	s.Cache.Put(key, value, negative)
}

func (s *Service) debug(msg string, fields ...zap.Field) {
	if s != nil && s.Logger != nil {
		s.Logger.Debug(msg, fields...)
	}
}

func (s *Service) warn(msg string, fields ...zap.Field) {
	if s != nil && s.Logger != nil {
		s.Logger.Warn(msg, fields...)
	}
}

func (s *Service) now() time.Time {
	if s != nil && s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

func basicRecords(summaries []core.RecipeSummary) []core.RecipeRecord {
	records := make([]core.RecipeRecord, 0, len(summaries))
	for i := range summaries {
		records = append(records, core.RecipeRecord{Kind: core.RecordBasic, Basic: &summaries[i]})
	}
	return records
}

// normalizeIngredients trims, lowercases, deduplicates and sorts the input.
func normalizeIngredients(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		item := strings.ToLower(strings.TrimSpace(value))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	sort.Strings(result)
	return result
}
