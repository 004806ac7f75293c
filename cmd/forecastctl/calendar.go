package main

import (
	"text/tabwriter"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/castlemilk/pfinance-forecast/internal/forecast"
	"github.com/spf13/cobra"
)

func newCalendarCmd(a *app) *cobra.Command {
	var next bool
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the active event calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cal, err := calendar.FromSource(cmd.Context(), a.cfg.CalendarFile)
			if err != nil {
				return err
			}

			events := cal.Events()
			if next {
				now, err := a.clock()
				if err != nil {
					return err
				}
				events = cal.Between(forecast.NextPeriod(now))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = tw.Write([]byte("DATE\tKIND\tLABEL\n"))
			for _, e := range events {
				_, _ = tw.Write([]byte(e.Date.Format(dateLayout) + "\t" + string(e.Kind) + "\t" + e.Label + "\n"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&next, "next", false, "Only list events in the month after --now")
	return cmd
}
