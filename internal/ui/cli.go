package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/stationboard/internal/config"
	"github.com/javiermolinar/stationboard/internal/stations"
	"github.com/javiermolinar/stationboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool   // Enable debug logging
	apiURL  string // Overrides config api.stations_url
	noColor bool
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "stationboard",
		Short: "A terminal dashboard for station bookings",
		Long: `Stationboard shows the bookings of a pickup station on a month calendar.

Search for a station, browse months, open booking details and drag a
booking's start or end to another day to reschedule it.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			return tui.Run(src, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Stations endpoint (overrides config)")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.stationsCmd())
	a.root.AddCommand(a.monthCmd())
	a.root.AddCommand(a.mockapiCmd())

	return a
}

// source builds the stations client from the flags and config.
func (a *App) source() (*stations.Client, error) {
	url := a.config.API.StationsURL
	if strings.TrimSpace(a.apiURL) != "" {
		url = a.apiURL
	}
	client, err := stations.New(url, stations.WithTimeout(a.config.Timeout()))
	if err != nil {
		return nil, fmt.Errorf("creating stations client: %w", err)
	}
	return client, nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stationboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// SetArgs replaces the command-line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
