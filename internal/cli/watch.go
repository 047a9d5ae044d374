package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newClockWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live timer; s starts or stops, q quits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.requireUser()
			if err != nil {
				return err
			}
			m := newWatchModel(cmd.Context(), app.Clock, user, app.Now, app.Location)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}
}

type watchKeyMap struct {
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Refresh, k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWatchKeys() watchKeyMap {
	return watchKeyMap{
		Toggle:  key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "start/stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type (
	tickMsg     time.Time
	snapshotMsg struct {
		snap *domain.StatusSnapshot
		err  error
	}
	toggledMsg struct {
		event *domain.WorkEvent
		err   error
	}
)

// watchModel redraws the live snapshot every second.
type watchModel struct {
	ctx    context.Context
	clock  service.ClockService
	userID string
	now    func() time.Time
	loc    *time.Location

	snap    *domain.StatusSnapshot
	err     error
	busy    bool
	keys    watchKeyMap
	help    help.Model
	spinner spinner.Model
}

func newWatchModel(ctx context.Context, clock service.ClockService, userID string, now func() time.Time, loc *time.Location) watchModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = formatter.StyleGreen
	return watchModel{
		ctx:     ctx,
		clock:   clock,
		userID:  userID,
		now:     now,
		loc:     loc,
		keys:    defaultWatchKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick(), m.spinner.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.clock.TodayStatus(m.ctx, m.userID)
		return snapshotMsg{snap: snap, err: err}
	}
}

// toggle records the opposite of the current timer state.
func (m watchModel) toggle() tea.Cmd {
	next := domain.StatusStart
	if m.snap != nil && m.snap.Running {
		next = domain.StatusStop
	}
	return func() tea.Msg {
		event, err := m.clock.RecordTransition(m.ctx, m.userID, next)
		return toggledMsg{event: event, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.toggle()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.fetch()
		}
	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())
	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.snap = msg.snap
		m.err = nil
	case toggledMsg:
		m.busy = false
		m.err = msg.err
		return m, m.fetch()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("staffclock") + "\n\n")

	if m.snap == nil {
		b.WriteString(formatter.Dim("loading...") + "\n")
	} else {
		prefix := "  "
		if m.snap.Running {
			prefix = m.spinner.View() + " "
		}
		fmt.Fprintf(&b, "%s%s\n", prefix, formatter.StatusIndicator(m.snap.LastStatus))

		elapsed := "--:--:--"
		if m.snap.Running && m.snap.RunningSince != nil {
			elapsed = formatter.FormatElapsed(m.now().Sub(*m.snap.RunningSince))
		}
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim("session"), formatter.Bold(elapsed))
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim("today  "), formatter.Bold(formatter.FormatMinutes(m.snap.TotalMinutesToday)))
		if m.snap.LastStatusAt != nil {
			fmt.Fprintf(&b, "  %s %s\n", formatter.Dim("changed"),
				formatter.HumanTimestampFrom(m.snap.LastStatusAt.In(m.loc), m.now().In(m.loc)))
		}
	}

	if m.err != nil {
		b.WriteString("\n" + formatter.StyleRed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}
