package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
)

// requireHR loads the actor and fails with ErrForbidden unless they are an
// active HR employee. An unknown actor is also forbidden.
func (s *Server) requireHR(ctx context.Context, actorID string) error {
	actor, err := s.deps.Employees.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return fmt.Errorf("unknown actor %s: %w", actorID, domain.ErrForbidden)
		}
		return err
	}
	if !actor.IsHR() || !actor.IsActive() {
		return fmt.Errorf("user %s is not HR: %w", actorID, domain.ErrForbidden)
	}
	return nil
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.requireHR(r.Context(), actorID); err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	page, err := parseIntParam(q.Get("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	perPage, err := parseIntParam(q.Get("per_page"))
	if err != nil {
		writeError(w, err)
		return
	}
	includeInactive, _ := strconv.ParseBool(q.Get("include_inactive"))
	onlyInactive, _ := strconv.ParseBool(q.Get("only_inactive"))

	result, err := s.deps.Employees.List(r.Context(), service.EmployeeQuery{
		Search:          q.Get("search"),
		IncludeInactive: includeInactive,
		OnlyInactive:    onlyInactive,
		Page:            page,
		PerPage:         perPage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]employeeResponse, 0, len(result.Items))
	for _, e := range result.Items {
		items = append(items, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, Meta: newPageMeta(result)})
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.requireHR(r.Context(), actorID); err != nil {
		writeError(w, err)
		return
	}
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "request body must be a JSON employee")
		return
	}
	e := &domain.Employee{
		Name:       req.Name,
		Email:      req.Email,
		Role:       domain.Role(req.Role),
		Department: req.Department,
	}
	if err := s.deps.Employees.Create(r.Context(), e); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "employee created",
		Data:    toEmployeeResponse(e),
	})
}

// handleGetEmployee lets employees read their own record; anyone else needs HR.
func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request, actorID string) {
	id := r.PathValue("id")
	if id != actorID {
		if err := s.requireHR(r.Context(), actorID); err != nil {
			writeError(w, err)
			return
		}
	}
	e, err := s.deps.Employees.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, toEmployeeResponse(e))
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request, actorID string) {
	if err := s.requireHR(r.Context(), actorID); err != nil {
		writeError(w, err)
		return
	}
	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "request body must be a JSON employee")
		return
	}
	e, err := s.deps.Employees.Update(r.Context(), r.PathValue("id"), req.toUpdate())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "employee updated", Data: toEmployeeResponse(e)})
}

func (s *Server) handleDeactivateEmployee(w http.ResponseWriter, r *http.Request, actorID string) {
	s.changeStatus(w, r, actorID, s.deps.Employees.Deactivate, "employee deactivated")
}

func (s *Server) handleReactivateEmployee(w http.ResponseWriter, r *http.Request, actorID string) {
	s.changeStatus(w, r, actorID, s.deps.Employees.Reactivate, "employee reactivated")
}

func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request, actorID string,
	apply func(context.Context, string) error, message string) {
	if err := s.requireHR(r.Context(), actorID); err != nil {
		writeError(w, err)
		return
	}
	id := r.PathValue("id")
	if err := apply(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	e, err := s.deps.Employees.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: toEmployeeResponse(e)})
}
