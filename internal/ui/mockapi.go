package ui

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/stationboard/internal/mockapi"
	"github.com/javiermolinar/stationboard/internal/store"
)

func (a *App) mockapiCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
		seed   bool
	)

	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Run a local stations API",
		Long: `Serve the stations API from a SQLite database.

The dashboard can be pointed at it with
  stationboard --api-url=http://<addr>/stations`,
		Example: `  stationboard mockapi
  stationboard mockapi --addr=:9090 --db=:memory:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath != ":memory:" {
				if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
					return fmt.Errorf("creating database directory: %w", err)
				}
			}

			st, err := store.New(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			logger := mockapi.NewLogger(os.Stderr, isTerminal(os.Stderr)).Level(a.config.LogLevel())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if seed {
				seeded, err := st.Seed(ctx)
				if err != nil {
					return fmt.Errorf("seeding database: %w", err)
				}
				if seeded {
					logger.Info().Str("db", dbPath).Msg("seeded sample stations")
				}
			}

			return mockapi.New(st, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", a.config.MockAPI.Addr, "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", a.config.MockAPI.DBPath, "SQLite database path (:memory: for a throwaway store)")
	cmd.Flags().BoolVar(&seed, "seed", a.config.MockAPI.Seed, "Insert sample stations into an empty database")

	return cmd
}
