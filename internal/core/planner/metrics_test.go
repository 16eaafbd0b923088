package planner

import (
	"context"
	"testing"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/pantrychef/internal/core/spoonacular"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/observability"
)

func setupTelemetry(t *testing.T) *telemetrytesting.FakeCollector {
	t.Helper()

	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{
		Enabled: true,
		Emitter: collector,
	})
	require.NoError(t, err)

	originalTelemetry := observability.TelemetrySystem
	observability.TelemetrySystem = sys

	t.Cleanup(func() {
		observability.TelemetrySystem = originalTelemetry
	})

	return collector
}

func TestSearchEmitsLookupMetrics(t *testing.T) {
	collector := setupTelemetry(t)

	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Details: details()},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	_, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)

	// A fresh lookup records a cache miss, both outbound calls, and the
	// quota headroom gauge.
	require.Equal(t, 1, collector.CountMetricsByName(metrics.CacheLookupsTotal))
	require.Equal(t, 2, collector.CountMetricsByName(metrics.APICallsTotal))
	require.Greater(t, collector.CountMetricsByName(metrics.QuotaRemainingGauge), 0)

	_, err = svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)

	// The repeat is a cache hit: one more lookup counter, no new API calls.
	require.Equal(t, 2, collector.CountMetricsByName(metrics.CacheLookupsTotal))
	require.Equal(t, 2, collector.CountMetricsByName(metrics.APICallsTotal))
}

func TestFailedBulkCallIsRecorded(t *testing.T) {
	collector := setupTelemetry(t)

	api := &fakeAPI{
		searchResp: &spoonacular.SearchResponse{Outcome: spoonacular.Outcome{OK: true, StatusCode: 200}, Summaries: summaries()},
		bulkResp:   &spoonacular.BulkResponse{Outcome: spoonacular.Outcome{StatusCode: 500, Message: "boom"}},
	}
	q := &fakeQuota{limit: 10}
	svc := newService(api, q)

	_, err := svc.Search(context.Background(), []string{"chicken", "rice"}, Options{})
	require.NoError(t, err)

	require.Equal(t, 2, collector.CountMetricsByName(metrics.APICallsTotal))
}

func TestEmptyInputEmitsNoMetrics(t *testing.T) {
	collector := setupTelemetry(t)

	svc := newService(&fakeAPI{}, &fakeQuota{limit: 10})

	_, err := svc.Search(context.Background(), []string{" "}, Options{})
	require.NoError(t, err)

	require.Zero(t, collector.CountMetricsByName(metrics.CacheLookupsTotal))
	require.Zero(t, collector.CountMetricsByName(metrics.APICallsTotal))
	require.Zero(t, collector.CountMetricsByName(metrics.QuotaRemainingGauge))
}
