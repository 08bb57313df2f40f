package model

import (
	"time"

	"github.com/google/uuid"
)

// SignOutStatus is derived per read from the check-in timestamp and the
// caller-supplied clock, never stored.
type SignOutStatus string

const (
	SignOutCheckedOut SignOutStatus = "CHECKED_OUT"
	SignOutOverdue    SignOutStatus = "OVERDUE"
	SignOutReturned   SignOutStatus = "RETURNED"
)

// Holder identifies who signed the equipment out.
type Holder struct {
	EmployeeNo string `json:"employee_no" validate:"required"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
}

// SignOutTransaction is the audit record of one check-out. It is created at
// check-out, mutated exactly once at check-in, and never deleted. Seq is the
// admission order assigned by the Record Store.
type SignOutTransaction struct {
	ID             uuid.UUID  `json:"id"`
	Seq            uint64     `json:"seq"`
	EquipmentCode  string     `json:"equipment_code"`
	Holder         Holder     `json:"holder"`
	WorkOrderRef   string     `json:"work_order_ref"`
	Purpose        string     `json:"purpose"`
	CheckedOutAt   time.Time  `json:"checked_out_at"`
	ExpectedReturn time.Time  `json:"expected_return"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CheckInActor   string     `json:"check_in_actor,omitempty"`
	CloseReason    string     `json:"close_reason,omitempty"` // empty for a normal return; "LOST"/"DAMAGED" for forced check-ins
	CreatedBy      string     `json:"created_by"`
}

// Open reports whether the transaction has no recorded check-in yet.
func (t *SignOutTransaction) Open() bool {
	return t.CheckedInAt == nil
}
