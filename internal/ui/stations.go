package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) stationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List stations and their bookings",
		Long: `Fetch the stations once and print each one with its booking count
and next booking.`,
		Example: `  stationboard stations
  stationboard stations --api-url=http://127.0.0.1:8080/stations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}

			list, err := src.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching stations: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", formatMuted(src.URL()))
			PrintStations(out, list, termWidth(), time.Now())
			return nil
		},
	}
}
