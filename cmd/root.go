package cmd

import (
	"os"

	"github.com/avikothari/bling/internal/config"
	"github.com/avikothari/bling/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "bling",
	Short: "Personal finance from the terminal",
	Long:  "Track expenses and income, plan savings, and export monthly reports.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default XDG config dir)")
}

// loadConfig resolves the app config, honoring --config. A broken file
// degrades to defaults; commands that care about the error load directly.
func loadConfig() config.Config {
	if flagConfig != "" {
		config.SetPath(flagConfig)
	}
	cfg, _ := config.Load()
	return cfg
}

// dataDir resolves the record-store location: the --data-dir flag wins,
// then the configured data_dir, then the platform default.
func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	return ledger.DefaultDir()
}

// openLedger is the shared store-opening path used by all commands.
func openLedger() (*ledger.Ledger, config.Config, error) {
	cfg := loadConfig()
	led, err := ledger.New(dataDir(cfg))
	if err != nil {
		return nil, cfg, err
	}
	return led, cfg, nil
}
