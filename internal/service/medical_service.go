package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
	"go-stores-admin/pkg/validator"
)

// IncidentFilter narrows incident listings. Zero values match everything.
type IncidentFilter struct {
	Status   model.IncidentStatus
	Severity model.IncidentSeverity
}

// IncidentSummary feeds the dashboard.
type IncidentSummary struct {
	Total      int                            `json:"total"`
	ByStatus   map[model.IncidentStatus]int   `json:"by_status"`
	BySeverity map[model.IncidentSeverity]int `json:"by_severity"`
	FollowUps  int                            `json:"follow_ups_pending"`
}

type MedicalService interface {
	ReportIncident(req *model.MedicalIncident, actor string) (*model.MedicalIncident, error)
	GetIncident(id uuid.UUID) (*model.MedicalIncident, error)
	ListIncidents(filter IncidentFilter) []model.MedicalIncident
	UpdateStatus(id uuid.UUID, to model.IncidentStatus, actor string) (*model.MedicalIncident, error)
	RecordTreatment(id uuid.UUID, treatment string, followUp *time.Time, actor string) (*model.MedicalIncident, error)
	Summary() IncidentSummary
}

type medicalService struct {
	store *store.Store
	sink  source.Sink
	clock func() time.Time
}

func NewMedicalService(st *store.Store, sink source.Sink, clock func() time.Time) MedicalService {
	if clock == nil {
		clock = time.Now
	}
	return &medicalService{store: st, sink: sink, clock: clock}
}

func (s *medicalService) ReportIncident(req *model.MedicalIncident, actor string) (*model.MedicalIncident, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidOperation("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	now := s.clock()
	req.ID = uuid.New()
	req.Status = model.IncidentOpen
	if req.OccurredAt.IsZero() {
		req.OccurredAt = now
	}
	req.CreatedAt = now
	req.UpdatedAt = now
	req.CreatedBy = actor
	req.UpdatedBy = actor

	err := s.store.Update(func(tx *store.Tx) error {
		tx.UpsertIncident(*req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persist(*req)
	return req, nil
}

func (s *medicalService) GetIncident(id uuid.UUID) (*model.MedicalIncident, error) {
	in, err := s.store.Incident(id)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *medicalService) ListIncidents(filter IncidentFilter) []model.MedicalIncident {
	return s.store.Incidents(func(in model.MedicalIncident) bool {
		if filter.Status != "" && in.Status != filter.Status {
			return false
		}
		if filter.Severity != "" && in.Severity != filter.Severity {
			return false
		}
		return true
	})
}

// UpdateStatus enforces the forward-only lifecycle: Open may move to
// UnderInvestigation or straight to Closed; nothing ever leaves Closed.
func (s *medicalService) UpdateStatus(id uuid.UUID, to model.IncidentStatus, actor string) (*model.MedicalIncident, error) {
	now := s.clock()
	var updated model.MedicalIncident
	err := s.store.Update(func(tx *store.Tx) error {
		in, err := tx.Incident(id)
		if err != nil {
			return err
		}
		if !model.CanTransition(in.Status, to) {
			return apperr.InvalidOperation("incident %s cannot move from %s to %s", id, in.Status, to)
		}
		in.Status = to
		in.UpdatedAt = now
		in.UpdatedBy = actor
		tx.UpsertIncident(in)
		updated = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persist(updated)
	return &updated, nil
}

func (s *medicalService) RecordTreatment(id uuid.UUID, treatment string, followUp *time.Time, actor string) (*model.MedicalIncident, error) {
	now := s.clock()
	var updated model.MedicalIncident
	err := s.store.Update(func(tx *store.Tx) error {
		in, err := tx.Incident(id)
		if err != nil {
			return err
		}
		if in.Status == model.IncidentClosed {
			return apperr.InvalidOperation("incident %s is closed", id)
		}
		if treatment != "" {
			in.Treatment = treatment
		}
		if followUp != nil {
			in.FollowUpRequired = true
			in.FollowUpDate = followUp
		}
		in.UpdatedAt = now
		in.UpdatedBy = actor
		tx.UpsertIncident(in)
		updated = in
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persist(updated)
	return &updated, nil
}

func (s *medicalService) Summary() IncidentSummary {
	sum := IncidentSummary{
		ByStatus:   map[model.IncidentStatus]int{},
		BySeverity: map[model.IncidentSeverity]int{},
	}
	for _, in := range s.store.Incidents(nil) {
		sum.Total++
		sum.ByStatus[in.Status]++
		sum.BySeverity[in.Severity]++
		if in.FollowUpRequired && in.Status != model.IncidentClosed {
			sum.FollowUps++
		}
	}
	return sum
}

func (s *medicalService) persist(in model.MedicalIncident) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveIncident(in); err != nil {
		log.Printf("Warning: failed to persist incident %s: %v", in.ID, err)
	}
}
