package httpapi

import (
	"time"

	"github.com/alexanderramin/staffclock/internal/domain"
	"github.com/alexanderramin/staffclock/internal/service"
)

type transitionRequest struct {
	Status string `json:"status"`
}

type notesRequest struct {
	Notes *string `json:"notes"`
}

type createEmployeeRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// updateEmployeeRequest fields are optional; absent ones are kept.
type updateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

func (r updateEmployeeRequest) toUpdate() service.EmployeeUpdate {
	u := service.EmployeeUpdate{Name: r.Name, Email: r.Email, Department: r.Department}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		u.Role = &role
	}
	if r.Status != nil {
		status := domain.EmployeeStatus(*r.Status)
		u.Status = &status
	}
	return u
}

type eventResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toEventResponse(e *domain.WorkEvent) eventResponse {
	return eventResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Status:     string(e.Status),
		OccurredAt: e.OccurredAt.UTC(),
	}
}

type statusResponse struct {
	TotalMinutesToday int        `json:"total_minutes_today"`
	LastStatus        *string    `json:"last_status"`
	LastStatusAt      *time.Time `json:"last_status_at"`
	Running           bool       `json:"running"`
	RunningSince      *time.Time `json:"running_since,omitempty"`
}

func toStatusResponse(s *domain.StatusSnapshot) statusResponse {
	out := statusResponse{
		TotalMinutesToday: s.TotalMinutesToday,
		LastStatusAt:      utcPtr(s.LastStatusAt),
		Running:           s.Running,
		RunningSince:      utcPtr(s.RunningSince),
	}
	if s.LastStatus != nil {
		st := string(*s.LastStatus)
		out.LastStatus = &st
	}
	return out
}

type dayResponse struct {
	Date         string     `json:"date"`
	TotalMinutes int        `json:"total_minutes"`
	Hours        int        `json:"hours"`
	Minutes      int        `json:"minutes"`
	LastStatus   *string    `json:"last_status"`
	LastStatusAt *time.Time `json:"last_status_at"`
}

func toDayResponses(reports []domain.DayReport) []dayResponse {
	out := make([]dayResponse, 0, len(reports))
	for _, r := range reports {
		d := dayResponse{
			Date:         r.Date.Format(domain.DateLayout),
			TotalMinutes: r.TotalMinutes,
			Hours:        r.Hours(),
			Minutes:      r.Minutes(),
			LastStatusAt: utcPtr(r.LastStatusAt),
		}
		if r.LastStatus != nil {
			st := string(*r.LastStatus)
			d.LastStatus = &st
		}
		out = append(out, d)
	}
	return out
}

type summaryResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	WorkDate          string    `json:"work_date"`
	TimeWorkedMinutes int       `json:"time_worked_minutes"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toSummaryResponse(s *domain.DailySummary) summaryResponse {
	return summaryResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		WorkDate:          s.WorkDate.Format(domain.DateLayout),
		TimeWorkedMinutes: s.TotalMinutes,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt.UTC(),
		UpdatedAt:         s.UpdatedAt.UTC(),
	}
}

type employeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       string(e.Role),
		Department: e.Department,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.UTC(),
		UpdatedAt:  e.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
