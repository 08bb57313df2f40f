package model

import "time"

// Supplier is one row of the suppliers & contractors directory.
type Supplier struct {
	Name             string     `json:"name" validate:"required"`
	CategorySupplied string     `json:"category_supplied"`
	ContactPerson    string     `json:"contact_person"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	ContractExpiry   *time.Time `json:"contract_expiry,omitempty"`
	Preferred        bool       `json:"preferred"`
}
