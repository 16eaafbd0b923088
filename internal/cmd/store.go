package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pantrychef/pantrychef/internal/config"
	"github.com/pantrychef/pantrychef/internal/core/cache"
	"github.com/pantrychef/pantrychef/internal/core/planner"
	"github.com/pantrychef/pantrychef/internal/core/quota"
	"github.com/pantrychef/pantrychef/internal/core/spoonacular"
	"github.com/pantrychef/pantrychef/internal/core/store"
)

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// buildLookupService assembles the lookup pipeline from the effective config:
// the ledger-backed quota manager, the result cache, and the API client.
func buildLookupService(cfg *config.Config, ledger quota.Ledger) (*planner.Service, *quota.Manager, error) {
	if cfg.API.Key == "" {
		return nil, nil, fmt.Errorf("api key is not configured; set api.key in the config file or %s_API_KEY", config.EnvPrefix)
	}

	manager := quota.New(ledger, cfg.Quota.MaxDailyRequests)

	client := &spoonacular.Client{
		HTTPClient:    &http.Client{},
		BaseURL:       cfg.API.BaseURL,
		APIKey:        cfg.API.Key,
		SearchTimeout: cfg.API.SearchTimeout,
		BulkTimeout:   cfg.API.BulkTimeout,
	}

	svc := &planner.Service{
		API:   client,
		Quota: manager,
		Cache: cache.NewLRU(cfg.Cache.Capacity, cfg.Cache.NegativeTTL),
	}

	return svc, manager, nil
}
