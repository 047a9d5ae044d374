package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/staffclock/internal/httpapi"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/alexanderramin/staffclock/internal/sweeper"
	"github.com/safedep/dry/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily auto-end sweeper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCfg := app.Config.Server
			if addr != "" {
				serverCfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(serverCfg, httpapi.Deps{
				Clock:     app.Clock,
				Reports:   app.Reports,
				Employees: app.Employees,
				Location:  app.Location,
				Now:       app.Now,
			})

			if app.Config.Sweeper.Enabled {
				hour, minute, err := app.Config.SweepTime()
				if err != nil {
					return ErrConfig("invalid sweeper.at", err)
				}
				sched := sweeper.New(app.Sweeper, hour, minute, app.Location,
					sweeper.OnResult(func(res service.SweepResult, err error) {
						if err == nil && res.Failed > 0 {
							log.Warnf("sweeper: %d sessions left running", res.Failed)
						}
					}))
				go func() {
					_ = sched.Run(ctx)
				}()
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
