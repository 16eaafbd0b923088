package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pantrychef/pantrychef/internal/core/planner"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/observability"
	"github.com/pantrychef/pantrychef/internal/output"
)

var (
	searchDiet    []string
	searchMax     int
	searchOutput  string
	searchNoCache bool
)

var searchCmd = &cobra.Command{
	Use:   "search [ingredients...]",
	Short: "Search recipes by the ingredients you have",
	Long: `Search recipes that make the most of the given ingredients.

Ingredients can be passed as arguments (comma or space separated); without
arguments the command prompts for ingredients and dietary filters.

Each search costs up to two API calls against the daily quota: one for the
ingredient search and one bulk call for recipe details. Repeated searches for
the same ingredients are served from the cache at no quota cost.`,
	Example: `  pantrychef search chicken rice
  pantrychef search "tomato, cheese, bread" --diet vegetarian --max 5
  pantrychef search --output json chicken`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(searchOutput)
		if err != nil {
			return err
		}

		interactive := len(args) == 0
		ingredients, err := resolveIngredients(args, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		diet := searchDiet
		if interactive && len(diet) == 0 {
			diet, err = promptDietFilters(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to load configuration", err)
		}

		db, err := openStore(cmd.Context(), cfg)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitFailure, "Failed to open request ledger", err)
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		svc, manager, err := buildLookupService(cfg, db)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Lookup service unavailable", err)
		}
		svc.Logger = observability.CLILogger

		start := time.Now()
		result, err := svc.Search(cmd.Context(), ingredients, planner.Options{
			MaxRecipes: searchMax,
			Diet:       diet,
			NoCache:    searchNoCache,
		})
		if err != nil {
			if errors.Is(err, planner.ErrQuotaExhausted) {
				metrics.RecordQuotaDenial("cli")
				fmt.Fprintln(cmd.OutOrStdout(), "Daily API quota exceeded! Try again tomorrow.")
				fmt.Fprintln(cmd.OutOrStdout(), output.QuotaBanner(manager.Status()))
				os.Exit(int(foundry.ExitFailure))
			}
			metrics.RecordSearch("cli", false, time.Since(start))
			observability.CLILogger.Error("Search failed", zap.Error(err))
			return err
		}
		metrics.RecordSearch("cli", true, time.Since(start))

		rendered, err := output.NewFormatter(format).FormatResult(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)

		if format != output.FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout(), output.QuotaBanner(result.Quota))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchDiet, "diet", nil, "dietary filters (e.g. vegan, gluten-free)")
	searchCmd.Flags().IntVar(&searchMax, "max", planner.DefaultMaxRecipes, "maximum number of recipes to return")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "table", "output format: table, json, or text")
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "bypass the result cache")
}
