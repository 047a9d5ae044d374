package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/repository"
)

type reportService struct {
	employees repository.EmployeeRepo
	summaries repository.SummaryRepo
	settings
}

func NewReportService(employees repository.EmployeeRepo, summaries repository.SummaryRepo, opts ...Option) ReportService {
	return &reportService{employees: employees, summaries: summaries, settings: newSettings(opts)}
}

func (s *reportService) ResolveTarget(ctx context.Context, actorID, userID string) (string, error) {
	actor, err := s.employees.GetByID(ctx, actorID)
	if err != nil {
		return "", unknownUser(actorID, err)
	}
	if userID == "" || userID == actor.ID {
		return actor.ID, nil
	}
	if !actor.IsHR() {
		return "", fmt.Errorf("user %s may not read reports of %s: %w", actorID, userID, domain.ErrForbidden)
	}
	if _, err := s.employees.GetByID(ctx, userID); err != nil {
		return "", unknownUser(userID, err)
	}
	return userID, nil
}

func (s *reportService) QueryReports(ctx context.Context, q ReportQuery) (page *domain.Page[*domain.DailySummary], err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"actor_id": q.ActorID,
		"start":    q.Start.Format(domain.DateLayout),
		"end":      q.End.Format(domain.DateLayout),
	}
	defer observe(ctx, s.observer, "query_reports", startedAt, fields, &err)

	if q.End.Before(q.Start) {
		return nil, fmt.Errorf("%s is before %s: %w",
			q.End.Format(domain.DateLayout), q.Start.Format(domain.DateLayout), domain.ErrInvalidRange)
	}
	target, err := s.ResolveTarget(ctx, q.ActorID, q.UserID)
	if err != nil {
		return nil, err
	}
	fields["user_id"] = target

	perPage := s.pagination.PerPage(q.PerPage)
	pageNum := domain.PageNumber(q.Page)
	items, total, err := s.summaries.FindByUserAndRange(ctx, target, q.Start, q.End, perPage, domain.Offset(pageNum, perPage))
	if err != nil {
		return nil, storeError(err)
	}
	p := domain.NewPage(items, pageNum, perPage, total)
	fields["total"] = total
	return &p, nil
}

func (s *reportService) UpdateNotes(ctx context.Context, actorID, summaryID, notes string) (summary *domain.DailySummary, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "update_notes", startedAt,
		map[string]any{"actor_id": actorID, "summary_id": summaryID}, &err)

	if n := utf8.RuneCountInString(notes); n > domain.MaxNotesLength {
		return nil, fmt.Errorf("notes are %d characters, limit is %d: %w", n, domain.MaxNotesLength, domain.ErrInvalidInput)
	}

	actor, err := s.employees.GetByID(ctx, actorID)
	if err != nil {
		return nil, unknownUser(actorID, err)
	}
	existing, err := s.summaries.GetByID(ctx, summaryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("summary %s: %w", summaryID, repository.ErrNotFound)
		}
		return nil, storeError(err)
	}
	if !actor.CanAccess(existing.UserID) {
		return nil, fmt.Errorf("user %s may not edit summary %s: %w", actorID, summaryID, domain.ErrForbidden)
	}

	summary, err = s.summaries.UpdateNotes(ctx, summaryID, notes, s.now().UTC())
	if err != nil {
		return nil, storeError(err)
	}
	return summary, nil
}
