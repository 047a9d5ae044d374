package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
)

// FormatSnapshot renders today's status box. Times are shown in loc.
func FormatSnapshot(snap *domain.StatusSnapshot, now time.Time, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StatusIndicator(snap.LastStatus), Bold(FormatMinutes(snap.TotalMinutesToday))+Dim(" today"))
	if snap.Running && snap.RunningSince != nil {
		fmt.Fprintf(&b, "%s %s %s\n",
			Dim("running since"),
			StyleFg.Render(HumanTimestampFrom(snap.RunningSince.In(loc), now.In(loc))),
			Dim("("+FormatElapsed(now.Sub(*snap.RunningSince))+")"))
	} else if snap.LastStatusAt != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("last change"), StyleFg.Render(HumanTimestampFrom(snap.LastStatusAt.In(loc), now.In(loc))))
	} else {
		b.WriteString(Dim("no work recorded yet") + "\n")
	}
	return RenderBox("Work log", strings.TrimRight(b.String(), "\n"))
}

// FormatDays renders on-demand day aggregates with a total row.
func FormatDays(days []domain.DayReport) string {
	if len(days) == 0 {
		return Dim("No work recorded in this range.") + "\n"
	}
	headers := []string{"DATE", "WORKED", "LAST STATUS", "AT"}
	rows := make([][]string, 0, len(days)+1)
	total := 0
	for _, d := range days {
		total += d.TotalMinutes
		at := Dim("--")
		if d.LastStatusAt != nil {
			at = d.LastStatusAt.Format("15:04")
		}
		rows = append(rows, []string{
			d.Date.Format(domain.DateLayout),
			FormatMinutes(d.TotalMinutes),
			StatusIndicator(d.LastStatus),
			at,
		})
	}
	rows = append(rows, []string{Bold("Total"), Bold(FormatMinutes(total)), "", ""})
	return RenderTable(headers, rows)
}

// FormatReports renders one page of persisted daily summaries.
func FormatReports(page *domain.Page[*domain.DailySummary]) string {
	if len(page.Items) == 0 {
		return Dim("No reports in this range.") + "\n"
	}
	headers := []string{"ID", "DATE", "WORKED", "NOTES"}
	rows := make([][]string, 0, len(page.Items))
	for _, s := range page.Items {
		rows = append(rows, []string{
			TruncID(s.ID),
			s.WorkDate.Format(domain.DateLayout),
			FormatMinutes(s.TotalMinutes),
			truncate(s.Notes, 40),
		})
	}
	return RenderTable(headers, rows) + "\n" + PageFooter(page.Page, page.TotalPages, page.Total)
}

func FormatEmployees(page *domain.Page[*domain.Employee]) string {
	if len(page.Items) == 0 {
		return Dim("No employees found.") + "\n"
	}
	headers := []string{"ID", "NAME", "EMAIL", "ROLE", "DEPARTMENT", "STATUS"}
	rows := make([][]string, 0, len(page.Items))
	for _, e := range page.Items {
		dept := e.Department
		if dept == "" {
			dept = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.Name),
			e.Email,
			RoleBadge(e.Role),
			dept,
			EmployeeStatusPill(e.Status),
		})
	}
	return RenderTable(headers, rows) + "\n" + PageFooter(page.Page, page.TotalPages, page.Total)
}

// PageFooter renders "page X of Y (N total)".
func PageFooter(page, pages, total int) string {
	if pages == 0 {
		pages = 1
	}
	return Dim(fmt.Sprintf("page %d of %d (%d total)", page, pages, total)) + "\n"
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
