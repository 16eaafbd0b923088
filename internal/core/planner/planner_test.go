package planner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/internal/core"
	"github.com/pantrychef/pantrychef/internal/core/cache"
	"github.com/pantrychef/pantrychef/internal/core/spoonacular"
)

type fakeAPI struct {
	searchCalls int
	bulkCalls   int

	searchResp *spoonacular.SearchResponse
	bulkResp   *spoonacular.BulkResponse
}

func (f *fakeAPI) FindByIngredients(ctx context.Context, ingredients []string, number int, diet []string) (*spoonacular.SearchResponse, error) {
	f.searchCalls++
	return f.searchResp, nil
}

func (f *fakeAPI) InformationBulk(ctx context.Context, ids []int) (*spoonacular.BulkResponse, error) {
	f.bulkCalls++
	return f.bulkResp, nil
}

type fakeQuota struct {
	limit       int
	logged      []string
	canCalls    int
	statusCalls int
}

func (q *fakeQuota) CanMakeRequest() bool {
	q.canCalls++
	return len(q.logged) < q.limit
}

func (q *fakeQuota) LogRequest(ctx context.Context, endpoint string) error {
	q.logged = append(q.logged, endpoint)
	return nil
}

func (q *fakeQuota) Status() core.QuotaStatus {
	q.statusCalls++
	remaining := q.limit - len(q.logged)
	if remaining < 0 {
		remaining = 0
	}
	return core.QuotaStatus{Used: len(q.logged), Remaining: remaining, Limit: q.limit}
}

type trackingCache struct {
	gets int
	puts int
}

func (c *trackingCache) Get(key string) (any, bool) {
	c.gets++
	return nil, false
}

func (c *trackingCache) Put(key string, value any, negative bool) {
	c.puts++
}

func summaries() []core.RecipeSummary {
	return []core.RecipeSummary{
		{ID: 101, Title: "Chicken Rice", UsedIngredients: 2, MissedIngredients: 1},
		{ID: 102, Title: "Fried Rice", UsedIngredients: 1, MissedIngredients: 2},
	}
}

func details() []core.RecipeDetail {
	return []core.RecipeDetail{
		{ID: 101, Title: "Chicken Rice", Servings: 4},
		{ID: 102, Title: "Fried Rice", Servings: 2},
	}
}

func newService(api *fakeAPI, q *fakeQuota) *Service {
	return &Service{
		API:   api,
		Quota: q,
		Cache: cache.NewLRU(8, 30*time.Second),
	}
}

func TestSearchReturnsDetailedRecords(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Details: details()},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	result, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	require.Equal(t, core.RecordDetailed, result.Records[0].Kind)
	require.Equal(t, "Chicken Rice", result.Records[0].Title())
	require.Empty(t, result.Message)
	require.False(t, result.Provenance.FromCache)

	// One search call plus one bulk call, each billed once.
	require.Equal(t, 1, api.searchCalls)
	require.Equal(t, 1, api.bulkCalls)
	require.Equal(t, []string{"findByIngredients", "informationBulk"}, q.logged)
}

func TestRepeatedSearchServedFromCache(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Details: details()},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	first, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)

	// Different spelling of the same ingredient set shares the cache entry.
	second, err := svc.Search(context.Background(), []string{" Rice", "CHICKEN", "rice"}, Options{})
	require.NoError(t, err)

	require.True(t, second.Provenance.FromCache)
	require.Equal(t, first.Records, second.Records)
	require.Equal(t, 1, api.searchCalls)
	require.Equal(t, 1, api.bulkCalls)
	require.Len(t, q.logged, 2)
}

func TestNoCacheOptionBypassesCache(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Details: details()},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	_, err := svc.Search(context.Background(), []string{"chicken"}, Options{NoCache: true})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), []string{"chicken"}, Options{NoCache: true})
	require.NoError(t, err)

	require.Equal(t, 2, api.searchCalls)
}

func TestDetailFailureFallsBackToBasicRecords(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{StatusCode: 500, Message: "boom"}},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	result, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	for _, record := range result.Records {
		require.Equal(t, core.RecordBasic, record.Kind)
	}
	require.NotEmpty(t, result.Message)
	// The failed bulk attempt is still billed.
	require.Equal(t, []string{"findByIngredients", "informationBulk"}, q.logged)
}

func TestDetailSkippedWhenQuotaExhausted(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
	}
	q := &fakeQuota{limit: 1}
	svc := newService(api, q)

	result, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	for _, record := range result.Records {
		require.Equal(t, core.RecordBasic, record.Kind)
	}
	require.Zero(t, api.bulkCalls)
	require.Equal(t, []string{"findByIngredients"}, q.logged)
}

func TestQuotaExhaustedMakesNoNetworkCalls(t *testing.T) {
	api := &fakeAPI{}
	q := &fakeQuota{limit: 0}
	svc := newService(api, q)

	_, err := svc.Search(context.Background(), []string{"chicken"}, Options{})
	require.ErrorIs(t, err, ErrQuotaExhausted)
	require.Zero(t, api.searchCalls)
	require.Zero(t, api.bulkCalls)
	require.Empty(t, q.logged)
}

func TestEmptyInputShortCircuits(t *testing.T) {
	api := &fakeAPI{}
	q := &fakeQuota{limit: 0}
	c := &trackingCache{}
	svc := &Service{API: api, Quota: q, Cache: c}

	result, err := svc.Search(context.Background(), []string{" ", ""}, Options{})
	require.NoError(t, err)
	require.Empty(t, result.Records)
	require.Zero(t, api.searchCalls)
	require.Empty(t, q.logged)

	// Empty input never touches the quota manager or the cache.
	require.Zero(t, q.canCalls)
	require.Zero(t, q.statusCalls)
	require.Zero(t, c.gets)
	require.Zero(t, c.puts)
}

func TestSearchFailureIsCachedNegatively(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{StatusCode: 402, Message: "remote quota exhausted"}},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	first, err := svc.Search(context.Background(), []string{"chicken"}, Options{})
	require.NoError(t, err)
	require.Empty(t, first.Records)
	require.NotEmpty(t, first.Message)

	second, err := svc.Search(context.Background(), []string{"chicken"}, Options{})
	require.NoError(t, err)
	require.True(t, second.Provenance.FromCache)
	require.Equal(t, first.Message, second.Message)
	require.Equal(t, 1, api.searchCalls)
}

func TestEmptyResultsCarryMessage(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	result, err := svc.Search(context.Background(), []string{"unicorn"}, Options{})
	require.NoError(t, err)
	require.Empty(t, result.Records)
	require.Equal(t, "no recipes found for these ingredients", result.Message)
}

func TestTwoCallBudgetSpentOnSingleSearch(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Details: details()},
	}
	q := &fakeQuota{limit: 2}
	svc := newService(api, q)

	first, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.Equal(t, core.RecordDetailed, first.Records[0].Kind)
	require.Zero(t, first.Quota.Remaining)

	// Fresh ingredients, quota spent: denied before any network traffic.
	_, err = svc.Search(context.Background(), []string{"beef"}, Options{})
	require.ErrorIs(t, err, ErrQuotaExhausted)
	require.Equal(t, 1, api.searchCalls)

	// The cached first search still resolves without quota.
	cached, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.True(t, cached.Provenance.FromCache)
}

func TestPartialDetailCoverageMixesKinds(t *testing.T) {
	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp: &spoonacular.BulkResponse{
			Outcome: spoonacular.Outcome{OK: true, StatusCode: 200},
			Details: []core.RecipeDetail{{ID: 101, Title: "Chicken Rice"}},
		},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	result, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	require.Equal(t, core.RecordDetailed, result.Records[0].Kind)
	require.Equal(t, core.RecordBasic, result.Records[1].Kind)
	require.Equal(t, "some recipe details were unavailable", result.Message)
}
