package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/calc"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
	"go-stores-admin/pkg/validator"
)

// SignOutView is a transaction plus its derived status relative to the
// caller-supplied now.
type SignOutView struct {
	model.SignOutTransaction
	Status          model.SignOutStatus `json:"status"`
	DaysOutstanding int                 `json:"days_outstanding"`
}

// CheckOutRequest carries everything needed to sign a unit out. The holder is
// resolved against the employee directory.
type CheckOutRequest struct {
	EquipmentCode  string    `json:"equipment_code" validate:"required"`
	EmployeeNo     string    `json:"employee_no" validate:"required"`
	ExpectedReturn time.Time `json:"expected_return" validate:"required"`
	WorkOrderRef   string    `json:"work_order_ref"`
	Purpose        string    `json:"purpose"`
}

type SignOutService interface {
	ListEquipment() []model.Equipment
	CheckOut(req *CheckOutRequest, actor string) (*model.SignOutTransaction, error)
	CheckIn(equipmentCode, actor string) (*model.SignOutTransaction, error)
	ForceCheckIn(equipmentCode, reason, actor string) (*model.SignOutTransaction, error)
	MarkMaintenance(equipmentCode, actor string) (*model.Equipment, error)
	MarkAvailable(equipmentCode, actor string) (*model.Equipment, error)
	Outstanding(now time.Time) []SignOutView
	ByHolder(employeeNo string, now time.Time) []SignOutView
	EquipmentHistory(equipmentCode string, now time.Time) ([]SignOutView, error)
}

type signOutService struct {
	store *store.Store
	sink  source.Sink
	hub   Broadcaster
	clock func() time.Time
}

func NewSignOutService(st *store.Store, sink source.Sink, hub Broadcaster, clock func() time.Time) SignOutService {
	if clock == nil {
		clock = time.Now
	}
	return &signOutService{store: st, sink: sink, hub: hub, clock: clock}
}

func (s *signOutService) ListEquipment() []model.Equipment {
	return s.store.AllEquipment(nil)
}

// CheckOut flips Available equipment to CheckedOut and opens the one
// transaction allowed per unit. Any other starting status is a Conflict.
func (s *signOutService) CheckOut(req *CheckOutRequest, actor string) (*model.SignOutTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidOperation("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	emp, err := s.store.Employee(req.EmployeeNo)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	var txn model.SignOutTransaction
	var eq model.Equipment
	err = s.store.Update(func(tx *store.Tx) error {
		e, err := tx.Equipment(req.EquipmentCode)
		if err != nil {
			return err
		}
		if e.Status != model.EquipmentAvailable {
			return apperr.Conflict("equipment %q is not available (status %s)", e.Code, e.Status)
		}
		if _, open := tx.OpenSignOutFor(e.Code); open {
			// Status said Available but an open transaction exists: state corruption.
			return apperr.Conflict("equipment %q already has an open sign-out", e.Code)
		}

		txn = tx.AppendSignOut(model.SignOutTransaction{
			ID:            uuid.New(),
			EquipmentCode: e.Code,
			Holder: model.Holder{
				EmployeeNo: emp.EmployeeNo,
				Name:       emp.Name,
				Department: emp.Department,
				Contact:    emp.Contact,
			},
			WorkOrderRef:   req.WorkOrderRef,
			Purpose:        req.Purpose,
			CheckedOutAt:   now,
			ExpectedReturn: req.ExpectedReturn,
			CreatedBy:      actor,
		})

		e.Status = model.EquipmentCheckedOut
		e.UpdatedAt = now
		e.UpdatedBy = actor
		tx.UpsertEquipment(e)
		eq = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persistEquipment(eq)
	s.persistSignOut(txn)
	publish(s.hub, "equipment_checked_out", map[string]interface{}{
		"equipment_code": eq.Code,
		"holder":         txn.Holder.Name,
		"employee_no":    txn.Holder.EmployeeNo,
		"expected":       txn.ExpectedReturn,
		"actor":          actor,
		"message":        fmt.Sprintf("%s signed out to %s", eq.Name, txn.Holder.Name),
	})
	return &txn, nil
}

// CheckIn closes the open transaction and returns the unit to Available.
func (s *signOutService) CheckIn(equipmentCode, actor string) (*model.SignOutTransaction, error) {
	return s.closeSignOut(equipmentCode, "", actor)
}

// ForceCheckIn is the audited escape hatch from CheckedOut when the unit is
// lost or came back damaged. LOST parks the unit in Lost status, anything
// else goes to Maintenance.
func (s *signOutService) ForceCheckIn(equipmentCode, reason, actor string) (*model.SignOutTransaction, error) {
	reason = strings.ToUpper(strings.TrimSpace(reason))
	if reason == "" {
		return nil, apperr.InvalidOperation("force check-in requires a reason")
	}
	return s.closeSignOut(equipmentCode, reason, actor)
}

func (s *signOutService) closeSignOut(equipmentCode, closeReason, actor string) (*model.SignOutTransaction, error) {
	now := s.clock()
	var txn model.SignOutTransaction
	var eq model.Equipment
	err := s.store.Update(func(tx *store.Tx) error {
		e, err := tx.Equipment(equipmentCode)
		if err != nil {
			return err
		}
		open, ok := tx.OpenSignOutFor(equipmentCode)
		if !ok {
			return apperr.NotFound("no open sign-out for equipment %q", equipmentCode)
		}

		txn, err = tx.UpdateSignOut(open.ID, func(t *model.SignOutTransaction) error {
			t.CheckedInAt = &now
			t.CheckInActor = actor
			t.CloseReason = closeReason
			return nil
		})
		if err != nil {
			return err
		}

		switch closeReason {
		case "":
			e.Status = model.EquipmentAvailable
		case "LOST":
			e.Status = model.EquipmentLost
		default:
			e.Status = model.EquipmentMaintenance
		}
		e.UpdatedAt = now
		e.UpdatedBy = actor
		tx.UpsertEquipment(e)
		eq = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persistEquipment(eq)
	s.persistSignOut(txn)
	publish(s.hub, "equipment_checked_in", map[string]interface{}{
		"equipment_code": eq.Code,
		"status":         string(eq.Status),
		"close_reason":   closeReason,
		"actor":          actor,
	})
	return &txn, nil
}

func (s *signOutService) MarkMaintenance(equipmentCode, actor string) (*model.Equipment, error) {
	return s.transition(equipmentCode, actor, model.EquipmentMaintenance, model.EquipmentAvailable)
}

// MarkAvailable returns a unit to service from Maintenance, or from Lost when
// it turns up again.
func (s *signOutService) MarkAvailable(equipmentCode, actor string) (*model.Equipment, error) {
	return s.transition(equipmentCode, actor, model.EquipmentAvailable,
		model.EquipmentMaintenance, model.EquipmentLost)
}

func (s *signOutService) transition(code, actor string, to model.EquipmentStatus, from ...model.EquipmentStatus) (*model.Equipment, error) {
	now := s.clock()
	var eq model.Equipment
	err := s.store.Update(func(tx *store.Tx) error {
		e, err := tx.Equipment(code)
		if err != nil {
			return err
		}
		allowed := false
		for _, f := range from {
			if e.Status == f {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperr.Conflict("equipment %q cannot move from %s to %s", code, e.Status, to)
		}
		e.Status = to
		e.UpdatedAt = now
		e.UpdatedBy = actor
		tx.UpsertEquipment(e)
		eq = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.persistEquipment(eq)
	return &eq, nil
}

func (s *signOutService) signOutViews(txns []model.SignOutTransaction, now time.Time) []SignOutView {
	out := make([]SignOutView, 0, len(txns))
	for _, t := range txns {
		out = append(out, SignOutView{
			SignOutTransaction: t,
			Status:             calc.SignOutStatus(t, now),
			DaysOutstanding:    calc.DaysOutstanding(t, now),
		})
	}
	return out
}

// Outstanding lists transactions not yet returned. Overdue is computed
// against the now the caller supplies, not the system clock.
func (s *signOutService) Outstanding(now time.Time) []SignOutView {
	open := s.store.SignOuts(func(t model.SignOutTransaction) bool { return t.Open() })
	return s.signOutViews(open, now)
}

func (s *signOutService) ByHolder(employeeNo string, now time.Time) []SignOutView {
	txns := s.store.SignOuts(func(t model.SignOutTransaction) bool {
		return t.Holder.EmployeeNo == employeeNo
	})
	return s.signOutViews(txns, now)
}

func (s *signOutService) EquipmentHistory(equipmentCode string, now time.Time) ([]SignOutView, error) {
	if _, err := s.store.Equipment(equipmentCode); err != nil {
		return nil, err
	}
	txns := s.store.SignOuts(func(t model.SignOutTransaction) bool {
		return t.EquipmentCode == equipmentCode
	})
	return s.signOutViews(txns, now), nil
}

func (s *signOutService) persistEquipment(e model.Equipment) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveEquipment(e); err != nil {
		log.Printf("Warning: failed to persist equipment %s: %v", e.Code, err)
	}
}

func (s *signOutService) persistSignOut(t model.SignOutTransaction) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveSignOut(t); err != nil {
		log.Printf("Warning: failed to persist sign-out %s: %v", t.ID, err)
	}
}
