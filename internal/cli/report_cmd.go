package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Read, chart, export and annotate daily summaries",
	}

	cmd.AddCommand(
		newReportListCmd(app),
		newReportChartCmd(app),
		newReportExportCmd(app),
		newReportNotesCmd(app),
	)

	return cmd
}

func newReportListCmd(app *App) *cobra.Command {
	var employee string
	var r dateRange
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List daily summaries in a date range",
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
			result, err := app.Reports.QueryReports(cmd.Context(), service.ReportQuery{
				ActorID: user,
				UserID:  employee,
				Start:   start,
				End:     end,
				Page:    page,
				PerPage: perPage,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReports(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee to report on (HR only)")
	cmd.Flags().StringVar(&r.From, "from", "", "first day, YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&r.To, "to", "", "last day, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "rows per page (default from config)")
	return cmd
}

func newReportChartCmd(app *App) *cobra.Command {
	var employee string
	var r dateRange
	var width int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Bar chart of hours worked per day",
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
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderDayChart(days, width))
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee to chart (HR only)")
	cmd.Flags().StringVar(&r.From, "from", "", "first day, YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&r.To, "to", "", "last day, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&width, "width", 72, "chart width in columns")
	return cmd
}

func newReportExportCmd(app *App) *cobra.Command {
	var employee, outPath string
	var r dateRange

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export daily summaries as CSV",
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
			summaries, err := allReports(cmd.Context(), app.Reports, service.ReportQuery{
				ActorID: user,
				UserID:  employee,
				Start:   start,
				End:     end,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}
			if err := writeReportsCSV(out, summaries); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d summaries to %s\n", len(summaries), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee to export (HR only)")
	cmd.Flags().StringVar(&r.From, "from", "", "first day, YYYY-MM-DD (default: start of month)")
	cmd.Flags().StringVar(&r.To, "to", "", "last day, YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}

// allReports walks every page of a query.
func allReports(ctx context.Context, reports service.ReportService, q service.ReportQuery) ([]*domain.DailySummary, error) {
	var all []*domain.DailySummary
	q.PerPage = 100
	for q.Page = 1; ; q.Page++ {
		page, err := reports.QueryReports(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasNext() {
			return all, nil
		}
	}
}

var reportCSVHeader = []string{"id", "user_id", "work_date", "time_worked_minutes", "notes", "updated_at"}

func writeReportsCSV(w io.Writer, summaries []*domain.DailySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportCSVHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		record := []string{
			s.ID,
			s.UserID,
			s.WorkDate.Format(domain.DateLayout),
			strconv.Itoa(s.TotalMinutes),
			s.Notes,
			s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newReportNotesCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "notes <summary-id>",
		Short: "Set the notes on a daily summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("notes") {
				if !app.IsInteractive() {
					return NewCLIError(ExitGeneral, "--notes is required when not running in a terminal")
				}
				if err := notesForm(&notes).Run(); err != nil {
					return err
				}
			}
			summary, err := app.Reports.UpdateNotes(cmd.Context(), user, args[0], notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated notes for %s (%s)\n",
				summary.WorkDate.Format(domain.DateLayout), formatter.TruncID(summary.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "notes text; omit to open an editor in a terminal")
	return cmd
}
