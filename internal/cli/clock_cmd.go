package cli

import (
	"fmt"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/spf13/cobra"
)

func newClockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Start, stop and inspect the work timer",
	}

	cmd.AddCommand(
		newClockTransitionCmd(app, domain.StatusStart, "Start the work timer"),
		newClockTransitionCmd(app, domain.StatusStop, "Stop the work timer"),
		newClockStatusCmd(app),
		newClockDaysCmd(app),
		newClockWatchCmd(app),
	)

	return cmd
}

func newClockTransitionCmd(app *App, status domain.EventStatus, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(status),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			event, err := app.Clock.RecordTransition(ctx, user, status)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			at := event.OccurredAt.In(app.Location).Format("15:04")
			if status == domain.StatusStart {
				fmt.Fprintf(out, "%s at %s %s\n", formatter.StatusIndicator(&event.Status), at, formatter.TruncID(event.ID))
				return nil
			}

			snap, err := app.Clock.TodayStatus(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s at %s, %s worked today\n",
				formatter.StatusIndicator(&event.Status), at, formatter.Bold(formatter.FormatMinutes(snap.TotalMinutesToday)))
			return nil
		},
	}
}

func newClockStatusCmd(app *App) *cobra.Command {
	var employee string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's worked time and timer state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			target, err := app.Reports.ResolveTarget(ctx, user, employee)
			if err != nil {
				return err
			}
			snap, err := app.Clock.TodayStatus(ctx, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSnapshot(snap, app.Now(), app.Location))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee to inspect (HR only)")
	return cmd
}

func newClockDaysCmd(app *App) *cobra.Command {
	var employee string
	var r dateRange

	cmd := &cobra.Command{
		Use:   "days",
		Short: "Aggregate worked minutes per day from the raw event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			start, end, err := r.resolve(app.today())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			target, err := app.Reports.ResolveTarget(ctx, user, employee)
			if err != nil {
				return err
			}
			days, err := app.Clock.DaySummaries(ctx, target, start, &end)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDays(days))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee to inspect (HR only)")
	cmd.Flags().StringVar(&r.From, "from", "", "first day, YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&r.To, "to", "", "last day, YYYY-MM-DD (default: today)")
	return cmd
}
