package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/pantrychef/pantrychef/internal/core/quota"
	"github.com/pantrychef/pantrychef/internal/observability"
	"github.com/pantrychef/pantrychef/internal/output"
)

var quotaJSON bool

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's API quota usage",
	Long:  "Show how many API calls were made today and how many remain, counted from the durable request ledger.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to load configuration", err)
		}

		db, err := openStore(cmd.Context(), cfg)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitFailure, "Failed to open request ledger", err)
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		status := quota.New(db, cfg.Quota.MaxDailyRequests).Status()

		if quotaJSON {
			data, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Quota window: %s\n", status.Day)
		fmt.Fprintf(cmd.OutOrStdout(), "Used today:   %d\n", status.Used)
		fmt.Fprintln(cmd.OutOrStdout(), output.QuotaBanner(status))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quotaCmd)
	quotaCmd.Flags().BoolVar(&quotaJSON, "json", false, "output as JSON")
}
