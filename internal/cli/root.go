// Package cli provides the staffclock command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/staffclock/internal/cli/formatter"
	"github.com/alexanderramin/staffclock/internal/config"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"
)

// UserEnv names the environment variable used when --user is not given.
const UserEnv = "STAFFCLOCK_USER"

// App holds the configuration and services used by commands.
type App struct {
	Config    *config.Config
	Clock     service.ClockService
	Sync      service.SyncService
	Sweeper   service.SweepService
	Reports   service.ReportService
	Employees service.EmployeeService

	Location *time.Location
	Now      func() time.Time

	// User is the acting employee for clock and report commands.
	User string

	IsInteractive func() bool
	Close         func() error
}

// AppFactory opens storage and wires services for the given config file.
type AppFactory func(configPath string) (*App, error)

type globalFlags struct {
	ConfigPath string
	User       string
	NoColor    bool
}

// NewRootCmd creates the top-level "staffclock" command. The factory runs
// once, before any subcommand that needs services.
func NewRootCmd(factory AppFactory) *cobra.Command {
	flags := &globalFlags{}
	app := &App{}

	root := &cobra.Command{
		Use:   "staffclock",
		Short: "Employee time clock with daily work reports",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupInternalLogger()
			loaded, err := factory(flags.ConfigPath)
			if err != nil {
				return err
			}
			*app = *loaded
			if app.Now == nil {
				app.Now = time.Now
			}
			if app.Location == nil {
				app.Location = time.Local
			}
			if app.IsInteractive == nil {
				app.IsInteractive = func() bool { return false }
			}
			app.User = flags.User
			if flags.NoColor || os.Getenv("NO_COLOR") != "" {
				app.Config.Display.Colors = config.ColorNever
			}
			formatter.SetColors(app.Config.ShouldUseColors())
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Close != nil {
				return app.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "path to config file")
	root.PersistentFlags().StringVarP(&flags.User, "user", "u", os.Getenv(UserEnv), "acting employee id (defaults to $"+UserEnv+")")
	root.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newClockCmd(app),
		newReportCmd(app),
		newEmployeeCmd(app),
		newSweepCmd(app),
		newSyncCmd(app),
		newServeCmd(app),
		newConfigCmd(flags),
	)

	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(factory AppFactory, args []string, stderr io.Writer) int {
	root := NewRootCmd(factory)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCodeFor(err)
	}
	return ExitSuccess
}

func setupInternalLogger() {
	// Command output goes to stdout; keep the logger off it.
	_ = os.Setenv("APP_LOG_SKIP_STDOUT_LOGGER", "true")
	log.Init("staffclock", "cli")
}

// requireUser returns the acting employee id or a usage error.
func (a *App) requireUser() (string, error) {
	if a.User == "" {
		return "", NewCLIError(ExitGeneral, "no acting employee: pass --user or set "+UserEnv)
	}
	return a.User, nil
}

// today is the current calendar date in the clock timezone.
func (a *App) today() time.Time {
	y, m, d := a.Now().In(a.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
