package model

// Employee is a directory entry used to resolve sign-out holders.
type Employee struct {
	EmployeeNo string `json:"employee_no" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department"`
	Contact    string `json:"contact"`
}
