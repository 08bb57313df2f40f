package service

import (
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/store"
)

// DirectoryService exposes the supplier and employee reference tables. Both
// are maintained in the source database and refreshed by reload.
type DirectoryService interface {
	ListSuppliers() []model.Supplier
	GetSupplier(name string) (*model.Supplier, error)
	ListEmployees() []model.Employee
	GetEmployee(employeeNo string) (*model.Employee, error)
}

type directoryService struct {
	store *store.Store
}

func NewDirectoryService(st *store.Store) DirectoryService {
	return &directoryService{store: st}
}

func (s *directoryService) ListSuppliers() []model.Supplier {
	return s.store.Suppliers(nil)
}

func (s *directoryService) GetSupplier(name string) (*model.Supplier, error) {
	sp, err := s.store.Supplier(name)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *directoryService) ListEmployees() []model.Employee {
	return s.store.Employees()
}

func (s *directoryService) GetEmployee(employeeNo string) (*model.Employee, error) {
	e, err := s.store.Employee(employeeNo)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
