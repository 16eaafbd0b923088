package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "libsql", cfg.Store.Driver)
	require.NotEmpty(t, cfg.Store.Path)
	require.Equal(t, "https://api.spoonacular.com", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.SearchTimeout)
	require.Equal(t, 15*time.Second, cfg.API.BulkTimeout)
	require.Equal(t, 100, cfg.Quota.MaxDailyRequests)
	require.Equal(t, 50, cfg.Cache.Capacity)
	require.Equal(t, 30*time.Second, cfg.Cache.NegativeTTL)
	require.Empty(t, cfg.API.Key, "API key must never have a default")
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("api.key", "test-key")
	v.Set("quota.max_daily_requests", 2)
	v.Set("api.search_timeout", "3s")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.Equal(t, "test-key", cfg.API.Key)
	require.Equal(t, 2, cfg.Quota.MaxDailyRequests)
	require.Equal(t, 3*time.Second, cfg.API.SearchTimeout)
}

func TestFromViperEmptyStoreFallsBackToDefaultPath(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("store.path", "")
	v.Set("store.url", "")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Store.Path)
}
