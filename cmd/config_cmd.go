// Package cmd implements the bling CLI commands.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avikothari/bling/internal/cli"
	"github.com/avikothari/bling/internal/config"
	"github.com/avikothari/bling/internal/tui/theme"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change app configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration key",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	orDefault := func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	}

	fmt.Printf("    theme         %s\n", cfg.Theme)
	fmt.Printf("    data_dir      %s\n", orDefault(cfg.DataDir, "(platform default)"))
	fmt.Printf("    reports_dir   %s\n", orDefault(cfg.ReportsDir, "(reports under the data dir)"))
	fmt.Printf("    font_path     %s\n", orDefault(cfg.FontPath, "(probe system fonts)"))
	fmt.Printf("    chart_width   %d\n", cfg.ChartWidth)
	fmt.Printf("    chart_height  %d\n", cfg.ChartHeight)
	fmt.Println()
	fmt.Println("  Change one with `bling config set <key> <value>`.")

	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if flagConfig != "" {
		config.SetPath(flagConfig)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "theme":
		names := make([]string, 0, len(theme.All))
		known := false
		for _, t := range theme.All {
			names = append(names, t.Name)
			known = known || t.Name == value
		}
		if !known {
			return fmt.Errorf("theme %q is not one of %s", value, strings.Join(names, ", "))
		}
		cfg.Theme = value
	case "data_dir":
		cfg.DataDir = value
	case "reports_dir":
		cfg.ReportsDir = value
	case "font_path":
		cfg.FontPath = value
	case "chart_width", "chart_height":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s %q must be a positive number", key, value)
		}
		if key == "chart_width" {
			cfg.ChartWidth = n
		} else {
			cfg.ChartHeight = n
		}
	default:
		return fmt.Errorf("unknown key %q (theme, data_dir, reports_dir, font_path, chart_width, chart_height)", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  %s\n", cli.Good(fmt.Sprintf("Saved %s to %s", key, config.ConfigPath())))
	return nil
}
