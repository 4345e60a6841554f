package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/stationboard/internal/config"
	"github.com/javiermolinar/stationboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  stationboard config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "file", config.DefaultConfigPath(), "Config file to edit")

	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := errors.Is(fileErr, os.ErrNotExist)

	if isNew {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.API.StationsURL = promptValue(reader, out, "Stations URL", cfg.API.StationsURL)
	cfg.API.Timeout = promptValue(reader, out, "Request timeout", cfg.API.Timeout)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)
	cfg.UI.DebounceMS = promptInt(reader, out, "Search debounce (ms)", cfg.UI.DebounceMS)
	cfg.UI.MaxSuggestions = promptInt(reader, out, "Max suggestions", cfg.UI.MaxSuggestions)
	cfg.MockAPI.Addr = promptValue(reader, out, "Mock API address", cfg.MockAPI.Addr)
	cfg.MockAPI.DBPath = promptValue(reader, out, "Mock API database path", cfg.MockAPI.DBPath)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[api]")
	fmt.Fprintf(out, "  stations_url    = %s\n", cfg.API.StationsURL)
	fmt.Fprintf(out, "  timeout         = %s\n", cfg.API.Timeout)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme           = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  debounce_ms     = %d\n", cfg.UI.DebounceMS)
	fmt.Fprintf(out, "  max_suggestions = %d\n", cfg.UI.MaxSuggestions)
	fmt.Fprintln(out, "\n[mockapi]")
	fmt.Fprintf(out, "  addr            = %s\n", cfg.MockAPI.Addr)
	fmt.Fprintf(out, "  db_path         = %s\n", cfg.MockAPI.DBPath)
	fmt.Fprintf(out, "  seed            = %t\n", cfg.MockAPI.Seed)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level           = %s\n", cfg.Log.Level)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
		if _, err := reader.Peek(1); err != nil {
			return current
		}
	}
}
