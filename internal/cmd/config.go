package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pantrychef/pantrychef/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pantrychef configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a starter config file with the default settings to the XDG config
directory. The API key is left empty; fill it in or set ` + config.EnvPrefix + `_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if path == "" {
			return fmt.Errorf("could not resolve config directory")
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		starter := map[string]any{
			"api": map[string]any{
				"key":      "",
				"base_url": "https://api.spoonacular.com",
			},
			"quota": map[string]any{
				"max_daily_requests": 100,
			},
			"cache": map[string]any{
				"capacity":     50,
				"negative_ttl": "30s",
			},
			"store": map[string]any{
				"driver": "libsql",
				"path":   config.DefaultStorePath(),
			},
			"server": map[string]any{
				"host": "localhost",
				"port": 8080,
			},
			"logging": map[string]any{
				"level": "info",
			},
		}

		data, err := yaml.Marshal(starter)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Never echo the API key.
		display := *cfg
		if display.API.Key != "" {
			display.API.Key = "(set)"
		}

		data, err := yaml.Marshal(display)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}
