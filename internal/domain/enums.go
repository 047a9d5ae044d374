package domain

import (
	"fmt"
	"strings"
)

// EventStatus is the closed set of work-log transitions. Only StatusStart and
// StatusStop are valid; values arriving from outside go through
// ParseEventStatus.
type EventStatus string

const (
	StatusStart EventStatus = "start"
	StatusStop  EventStatus = "stop"
)

// ParseEventStatus accepts the canonical names and the legacy
// running/stopped spelling.
func ParseEventStatus(s string) (EventStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start", "running":
		return StatusStart, nil
	case "stop", "stopped":
		return StatusStop, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrInvalidStatus)
	}
}

func (s EventStatus) Valid() bool {
	return s == StatusStart || s == StatusStop
}

// Opposite returns the status that must follow s.
func (s EventStatus) Opposite() EventStatus {
	if s == StatusStart {
		return StatusStop
	}
	return StatusStart
}

// Label is the user-facing name used by the running timer.
func (s EventStatus) Label() string {
	switch s {
	case StatusStart:
		return "Running"
	case StatusStop:
		return "Stopped"
	default:
		return "Idle"
	}
}

type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleHR || r == RoleEmployee
}

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)
