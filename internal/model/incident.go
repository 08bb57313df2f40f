package model

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentOpen               IncidentStatus = "OPEN"
	IncidentUnderInvestigation IncidentStatus = "UNDER_INVESTIGATION"
	IncidentClosed             IncidentStatus = "CLOSED"
)

type IncidentSeverity string

const (
	SeverityMinor    IncidentSeverity = "MINOR"
	SeverityModerate IncidentSeverity = "MODERATE"
	SeveritySerious  IncidentSeverity = "SERIOUS"
	SeverityCritical IncidentSeverity = "CRITICAL"
)

// MedicalIncident is an independent record with no cross-entity invariants
// beyond its forward-only status transitions.
type MedicalIncident struct {
	ID               uuid.UUID        `json:"id"`
	OccurredAt       time.Time        `json:"occurred_at"`
	PersonName       string           `json:"person_name" validate:"required"`
	EmployeeNo       string           `json:"employee_no"`
	Department       string           `json:"department"`
	IncidentType     string           `json:"incident_type" validate:"required"`
	Severity         IncidentSeverity `json:"severity" validate:"required,oneof=MINOR MODERATE SERIOUS CRITICAL"`
	Location         string           `json:"location"`
	Description      string           `json:"description"`
	Treatment        string           `json:"treatment"`
	FollowUpRequired bool             `json:"follow_up_required"`
	FollowUpDate     *time.Time       `json:"follow_up_date,omitempty"`
	Status           IncidentStatus   `json:"status"`

	Audit
}

// incidentRank orders statuses so transitions can only move forward.
var incidentRank = map[IncidentStatus]int{
	IncidentOpen:               0,
	IncidentUnderInvestigation: 1,
	IncidentClosed:             2,
}

// CanTransition reports whether an incident may move from one status to
// another. Regressions (notably from CLOSED) are never allowed.
func CanTransition(from, to IncidentStatus) bool {
	fromRank, ok := incidentRank[from]
	if !ok {
		return false
	}
	toRank, ok := incidentRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
