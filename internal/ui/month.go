package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/stationboard/internal/booking"
	"github.com/javiermolinar/stationboard/internal/calendar"
	"github.com/javiermolinar/stationboard/internal/dateutil"
)

func (a *App) monthCmd() *cobra.Command {
	var (
		stationName string
		monthStr    string
	)

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Print a month calendar of bookings",
		Long: `Print a month grid with every booking shown on its start (▶) and
end (◀) days.

Without --station the bookings of all stations are shown.
Without --month the current month is shown.`,
		Example: `  stationboard month
  stationboard month --station=hamburg --month=2025-08`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			m := calendar.MonthOf(now)
			if monthStr != "" {
				year, month, err := dateutil.ParseMonth(monthStr)
				if err != nil {
					return err
				}
				m = calendar.NewMonth(year, month)
			}

			src, err := a.source()
			if err != nil {
				return err
			}
			list, err := src.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching stations: %w", err)
			}

			title := "All stations"
			var bookings []booking.Booking
			if stationName != "" {
				st, err := SelectStation(list, stationName)
				if err != nil {
					return err
				}
				title = st.Name
				bookings = st.Bookings
			} else {
				for _, st := range list {
					bookings = append(bookings, st.Bookings...)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s\n", formatHeader(m.Label()), formatStation(title))
			fmt.Fprintln(out, RenderMonth(m, bookings, termWidth(), now))
			return nil
		},
	}

	cmd.Flags().StringVarP(&stationName, "station", "s", "", "Station name or id")
	cmd.Flags().StringVarP(&monthStr, "month", "m", "", "Month to show (YYYY-MM)")

	return cmd
}
