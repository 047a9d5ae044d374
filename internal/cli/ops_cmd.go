package cli

import (
	"fmt"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/spf13/cobra"
)

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Stop every session that is still running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Sweeper.Sweep(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sweep: %s ended, %s failed, %s skipped\n",
				formatter.StyleGreen.Render(fmt.Sprint(res.Ended)),
				formatter.StyleRed.Render(fmt.Sprint(res.Failed)),
				formatter.Dim(fmt.Sprint(res.Skipped)))
			if res.Failed > 0 {
				return NewCLIError(ExitGeneral, fmt.Sprintf("%d sessions could not be stopped", res.Failed))
			}
			return nil
		},
	}
}

func newSyncCmd(app *App) *cobra.Command {
	var employee, date string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Recompute one employee's daily summary from the event log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day := app.today()
			if date != "" {
				d, err := domain.ParseDate(date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", domain.ErrInvalidInput)
				}
				day = d
			}
			summary, err := app.Sync.SyncDay(cmd.Context(), employee, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %s: %s\n",
				summary.WorkDate.Format(domain.DateLayout), formatter.Bold(formatter.FormatMinutes(summary.TotalMinutes)))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee id")
	cmd.Flags().StringVar(&date, "date", "", "day to recompute, YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
