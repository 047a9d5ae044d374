// Package httpapi exposes the work log and employee registry over JSON/HTTP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/staffclock/internal/config"
	"github.com/alexanderramin/staffclock/internal/service"
	"github.com/safedep/dry/log"
)

// IdentityHeader carries the authenticated employee id, set by the auth proxy
// in front of this server.
const IdentityHeader = "X-Employee-ID"

// Deps are the services the handlers call.
type Deps struct {
	Clock     service.ClockService
	Reports   service.ReportService
	Employees service.EmployeeService
	Location  *time.Location
	Now       func() time.Time
}

type Server struct {
	deps       Deps
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("POST /api/work-log", s.withIdentity(s.handleRecordTransition))
	mux.Handle("GET /api/work-log/today-status", s.withIdentity(s.handleTodayStatus))
	mux.Handle("GET /api/work-log/days", s.withIdentity(s.handleDaySummaries))
	mux.Handle("GET /api/work-log/reports", s.withIdentity(s.handleReports))
	mux.Handle("PATCH /api/work-log/reports/{id}/notes", s.withIdentity(s.handleUpdateNotes))

	mux.Handle("GET /api/employees", s.withIdentity(s.handleListEmployees))
	mux.Handle("POST /api/employees", s.withIdentity(s.handleCreateEmployee))
	mux.Handle("GET /api/employees/{id}", s.withIdentity(s.handleGetEmployee))
	mux.Handle("PUT /api/employees/{id}", s.withIdentity(s.handleUpdateEmployee))
	mux.Handle("DELETE /api/employees/{id}/deactivate", s.withIdentity(s.handleDeactivateEmployee))
	mux.Handle("POST /api/employees/{id}/reactivate", s.withIdentity(s.handleReactivateEmployee))

	return loggingMiddleware(mux)
}

// Start blocks serving until Shutdown is called.
func (s *Server) Start() error {
	log.Infof("Starting staffclock API on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Infof("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
}
