package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
)

func (s *Server) handleRecordTransition(w http.ResponseWriter, r *http.Request, actorID string) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "request body must be JSON with a status field")
		return
	}
	status, err := domain.ParseEventStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	event, err := s.deps.Clock.RecordTransition(r.Context(), actorID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "work log saved",
		Data:    toEventResponse(event),
	})
}

func (s *Server) handleTodayStatus(w http.ResponseWriter, r *http.Request, actorID string) {
	target, err := s.deps.Reports.ResolveTarget(r.Context(), actorID, r.URL.Query().Get("user_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := s.deps.Clock.TodayStatus(r.Context(), target)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, toStatusResponse(snap))
}

// handleDaySummaries aggregates raw events per day. start defaults to today
// and end may be omitted.
func (s *Server) handleDaySummaries(w http.ResponseWriter, r *http.Request, actorID string) {
	q := r.URL.Query()
	start := domain.DateOf(s.deps.Now(), s.deps.Location)
	if raw := q.Get("start"); raw != "" {
		d, err := parseDateParam("start", raw)
		if err != nil {
			writeError(w, err)
			return
		}
		start = d
	}
	var end *time.Time
	if raw := q.Get("end"); raw != "" {
		d, err := parseDateParam("end", raw)
		if err != nil {
			writeError(w, err)
			return
		}
		end = &d
	}

	target, err := s.deps.Reports.ResolveTarget(r.Context(), actorID, q.Get("user_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	days, err := s.deps.Clock.DaySummaries(r.Context(), target, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, toDayResponses(days))
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request, actorID string) {
	q := r.URL.Query()
	start, err := parseDateParam("start_date", q.Get("start_date"))
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDateParam("end_date", q.Get("end_date"))
	if err != nil {
		writeError(w, err)
		return
	}
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

	result, err := s.deps.Reports.QueryReports(r.Context(), service.ReportQuery{
		ActorID: actorID,
		UserID:  q.Get("user_id"),
		Start:   start,
		End:     end,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]summaryResponse, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, toSummaryResponse(it))
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: items, Meta: newPageMeta(result)})
}

func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request, actorID string) {
	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Notes == nil {
		writeMessage(w, http.StatusBadRequest, "request body must be JSON with a notes field")
		return
	}
	summary, err := s.deps.Reports.UpdateNotes(r.Context(), actorID, r.PathValue("id"), *req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "notes updated",
		Data:    toSummaryResponse(summary),
	})
}

func parseDateParam(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required: %w", name, domain.ErrInvalidInput)
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD, got %q: %w", name, raw, domain.ErrInvalidInput)
	}
	return d, nil
}

// parseIntParam returns 0 for an empty value so service defaults apply.
func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", raw, domain.ErrInvalidInput)
	}
	return n, nil
}
