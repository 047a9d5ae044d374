package main

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/staffclock/internal/cli"
	"github.com/alexanderramin/staffclock/internal/config"
	"github.com/alexanderramin/staffclock/internal/db"
	"github.com/alexanderramin/staffclock/internal/repository"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	os.Exit(cli.Execute(newApp, os.Args[1:], os.Stderr))
}

// newApp loads configuration, opens the database and wires services.
func newApp(configPath string) (*cli.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cli.ErrConfig("loading config", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, cli.ErrConfig("resolving clock.timezone", err)
	}

	database, err := db.OpenDB(cfg.DatabasePath(), db.WithBusyTimeout(cfg.Storage.BusyTimeoutMs))
	if err != nil {
		return nil, cli.ErrDatabase("opening database", err)
	}

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	summaryRepo := repository.NewSQLiteSummaryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database, db.WithMaxRetries(cfg.Storage.MaxRetries))

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Logging.UseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}
	// One lock table for every service so transitions, repairs and sweeps
	// for the same user serialize.
	opts := []service.Option{
		service.WithLocation(loc),
		service.WithUserLocks(service.NewUserLocks()),
		service.WithObserver(observer),
		service.WithPagination(cfg.Pager()),
	}

	clockSvc := service.NewClockService(employeeRepo, eventRepo, uow, opts...)

	return &cli.App{
		Config:    cfg,
		Clock:     clockSvc,
		Sync:      service.NewSyncService(uow, opts...),
		Sweeper:   service.NewSweepService(eventRepo, clockSvc, opts...),
		Reports:   service.NewReportService(employeeRepo, summaryRepo, opts...),
		Employees: service.NewEmployeeService(employeeRepo, uow, opts...),
		Location:  loc,
		Now:       time.Now,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		Close: database.Close,
	}, nil
}
