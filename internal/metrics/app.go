// Package metrics emits application counters through the global telemetry
// system. All emitters are no-ops until observability.InitMetrics runs.
package metrics

import (
	"time"

	"github.com/pantrychef/pantrychef/internal/observability"
)

// Application-level metric names following Prometheus conventions
var (
	// Lookup flow metrics
	SearchesTotal       = "app_searches_total"
	CacheLookupsTotal   = "app_cache_lookups_total"
	QuotaDenialsTotal   = "app_quota_denials_total"
	APICallsTotal       = "app_api_calls_total"
	SearchDuration      = "app_search_duration_ms"
	QuotaRemainingGauge = "app_quota_remaining"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
	ServerUptime    = "app_server_uptime_seconds"
)

// RecordSearch records a completed ingredient search with its outcome.
func RecordSearch(surface string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			SearchesTotal,
			1,
			map[string]string{
				"surface": surface,
				"status":  status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			SearchDuration,
			duration,
			map[string]string{
				"surface": surface,
			},
		)
	}
}

// RecordCacheLookup records a result-cache probe.
func RecordCacheLookup(hit bool) {
	outcome := "hit"
	if !hit {
		outcome = "miss"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CacheLookupsTotal,
			1,
			map[string]string{"outcome": outcome},
		)
	}
}

// RecordQuotaDenial records an admission refused by the daily quota.
func RecordQuotaDenial(surface string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			QuotaDenialsTotal,
			1,
			map[string]string{"surface": surface},
		)
	}
}

// RecordAPICall records one outbound Spoonacular call.
func RecordAPICall(endpoint string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			APICallsTotal,
			1,
			map[string]string{
				"endpoint": endpoint,
				"status":   status,
			},
		)
	}
}

// SetQuotaRemaining publishes the current quota headroom.
func SetQuotaRemaining(remaining int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			QuotaRemainingGauge,
			float64(remaining),
			nil,
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}

// SetServerUptime records the server uptime in seconds
func SetServerUptime(seconds int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerUptime,
			float64(seconds),
			nil,
		)
	}
}
