package model

type EquipmentStatus string

const (
	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentCheckedOut  EquipmentStatus = "CHECKED_OUT"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentLost        EquipmentStatus = "LOST"
)

// Equipment is a trackable, sign-outable asset. Status is CHECKED_OUT exactly
// when one open SignOutTransaction references the unit.
type Equipment struct {
	Code     string          `json:"code" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Location string          `json:"location"`
	Status   EquipmentStatus `json:"status"`

	Audit
}
