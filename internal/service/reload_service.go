package service

import (
	"fmt"
	"reflect"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
	"go-stores-admin/pkg/validator"
)

// TableDiff counts what a reload changed in one table.
type TableDiff struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}

// ReloadReport is returned by every reload. A table that failed validation
// keeps its previous snapshot and contributes an entry to Errors instead of
// a diff.
type ReloadReport struct {
	Tables map[string]TableDiff `json:"tables"`
	Errors []string             `json:"errors"`
}

// Changed reports whether any table actually changed.
func (r *ReloadReport) Changed() bool {
	for _, d := range r.Tables {
		if d.Added != 0 || d.Updated != 0 || d.Removed != 0 {
			return true
		}
	}
	return false
}

type ReloadService interface {
	// Bootstrap seeds the audit journals from the source once, then performs
	// the first table load. Only called at startup.
	Bootstrap() (*ReloadReport, error)
	// Reload refreshes the reloadable tables. Journals are never touched.
	Reload() (*ReloadReport, error)
}

type reloadService struct {
	store   *store.Store
	loader  source.Loader
	jloader source.JournalLoader
	hub     Broadcaster
}

func NewReloadService(st *store.Store, loader source.Loader, jloader source.JournalLoader, hub Broadcaster) ReloadService {
	return &reloadService{store: st, loader: loader, jloader: jloader, hub: hub}
}

func (s *reloadService) Bootstrap() (*ReloadReport, error) {
	if s.jloader != nil {
		journals, err := s.jloader.LoadJournals()
		if err != nil {
			return nil, fmt.Errorf("loading journals: %w", err)
		}
		err = s.store.Update(func(tx *store.Tx) error {
			for _, m := range journals.Movements {
				tx.AppendMovement(m)
			}
			for _, t := range journals.SignOuts {
				tx.AppendSignOut(t)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Reload()
}

func (s *reloadService) Reload() (*ReloadReport, error) {
	batches, err := s.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	report := &ReloadReport{Tables: map[string]TableDiff{}}

	// Validate every table before anything is swapped. A bad batch aborts
	// only its own table; independent tables still reload.
	catErr := validateCategories(batches.Categories)
	supErr := validateSuppliers(batches.Suppliers)
	empErr := validateEmployees(batches.Employees)
	incErr := validateIncidents(batches.Incidents)

	itemErr := validateItems(batches.Items, batches.Categories, catErr == nil)
	eqErr := validateEquipment(batches.Equipment, batches.Categories, catErr == nil)

	collect := func(err error) bool {
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			return false
		}
		return true
	}
	catOK := collect(catErr)
	supOK := collect(supErr)
	empOK := collect(empErr)
	incOK := collect(incErr)
	itemOK := collect(itemErr)
	eqOK := collect(eqErr)

	// Diffs are computed against the live snapshots before the swap. The
	// equipment diff is the exception: it is derived inside the swap, after
	// journal normalisation.
	if catOK {
		report.Tables["categories"] = diffTable(s.store.Categories(), batches.Categories,
			func(c model.Category) string { return c.Name })
	}
	if itemOK {
		report.Tables["items"] = diffTable(s.store.Items(nil), batches.Items,
			func(i model.InventoryItem) string { return i.Code })
	}
	if supOK {
		report.Tables["suppliers"] = diffTable(s.store.Suppliers(nil), batches.Suppliers,
			func(sp model.Supplier) string { return sp.Name })
	}
	if empOK {
		report.Tables["employees"] = diffTable(s.store.Employees(), batches.Employees,
			func(e model.Employee) string { return e.EmployeeNo })
	}
	if incOK {
		report.Tables["incidents"] = diffTable(s.store.Incidents(nil), batches.Incidents,
			func(in model.MedicalIncident) string { return in.ID.String() })
	}

	// The writer lock covers the swaps and the equipment normalisation.
	err = s.store.Update(func(tx *store.Tx) error {
		if catOK {
			tx.ReplaceCategories(batches.Categories)
		}
		if itemOK {
			tx.ReplaceItems(batches.Items)
		}
		if eqOK {
			// Equipment status for checked-out units follows the open sign-out
			// journal, not the source: once running, the journal is the truth.
			// The normalisation runs under the writer lock so a check-out that
			// committed after the batch was read is still honoured.
			equipment := make([]model.Equipment, len(batches.Equipment))
			copy(equipment, batches.Equipment)
			for i := range equipment {
				_, open := tx.OpenSignOutFor(equipment[i].Code)
				if open {
					equipment[i].Status = model.EquipmentCheckedOut
				} else if equipment[i].Status == model.EquipmentCheckedOut {
					equipment[i].Status = model.EquipmentAvailable
				}
			}
			report.Tables["equipment"] = diffTable(tx.AllEquipment(nil), equipment,
				func(e model.Equipment) string { return e.Code })
			tx.ReplaceEquipment(equipment)
		}
		if supOK {
			tx.ReplaceSuppliers(batches.Suppliers)
		}
		if empOK {
			tx.ReplaceEmployees(batches.Employees)
		}
		if incOK {
			tx.ReplaceIncidents(batches.Incidents)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Changed() {
		publish(s.hub, "data_reloaded", map[string]interface{}{
			"tables": report.Tables,
			"errors": report.Errors,
		})
	}
	return report, nil
}

func diffTable[T any](current, next []T, key func(T) string) TableDiff {
	old := make(map[string]T, len(current))
	for _, v := range current {
		old[key(v)] = v
	}
	var d TableDiff
	seen := map[string]bool{}
	for _, v := range next {
		k := key(v)
		seen[k] = true
		prev, ok := old[k]
		switch {
		case !ok:
			d.Added++
		case !reflect.DeepEqual(prev, v):
			d.Updated++
		}
	}
	for k := range old {
		if !seen[k] {
			d.Removed++
		}
	}
	return d
}

func shapeErrors[T any](rows []T, id func(T) string) []string {
	var bad []string
	for _, r := range rows {
		if errs := validator.ValidateStruct(r); len(errs) > 0 {
			bad = append(bad, id(r))
		}
	}
	return bad
}

func validateCategories(rows []model.Category) error {
	bad := shapeErrors(rows, func(c model.Category) string { return c.Name })
	seen := map[string]bool{}
	for _, c := range rows {
		if seen[c.Name] {
			bad = append(bad, c.Name)
		}
		seen[c.Name] = true
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("categories batch rejected", bad)
	}
	return nil
}

func validateItems(rows []model.InventoryItem, categories []model.Category, categoriesValid bool) error {
	if !categoriesValid {
		return apperr.ReloadValidation("items batch rejected: categories batch invalid", nil)
	}
	known := map[string]bool{}
	for _, c := range categories {
		known[c.Name] = true
	}
	bad := shapeErrors(rows, func(i model.InventoryItem) string { return i.Code })
	seen := map[string]bool{}
	for _, it := range rows {
		switch {
		case seen[it.Code]:
			bad = append(bad, it.Code)
		case it.QuantityOnHand < 0:
			bad = append(bad, it.Code)
		case !known[it.Category]:
			bad = append(bad, it.Code)
		}
		seen[it.Code] = true
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("items batch rejected", bad)
	}
	return nil
}

func validateEquipment(rows []model.Equipment, categories []model.Category, categoriesValid bool) error {
	if !categoriesValid {
		return apperr.ReloadValidation("equipment batch rejected: categories batch invalid", nil)
	}
	known := map[string]bool{}
	for _, c := range categories {
		known[c.Name] = true
	}
	valid := map[model.EquipmentStatus]bool{
		model.EquipmentAvailable:   true,
		model.EquipmentCheckedOut:  true,
		model.EquipmentMaintenance: true,
		model.EquipmentLost:        true,
	}
	bad := shapeErrors(rows, func(e model.Equipment) string { return e.Code })
	seen := map[string]bool{}
	for _, e := range rows {
		switch {
		case seen[e.Code]:
			bad = append(bad, e.Code)
		case !known[e.Category]:
			bad = append(bad, e.Code)
		case !valid[e.Status]:
			bad = append(bad, e.Code)
		}
		seen[e.Code] = true
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("equipment batch rejected", bad)
	}
	return nil
}

func validateSuppliers(rows []model.Supplier) error {
	bad := shapeErrors(rows, func(s model.Supplier) string { return s.Name })
	seen := map[string]bool{}
	for _, sp := range rows {
		if seen[sp.Name] {
			bad = append(bad, sp.Name)
		}
		seen[sp.Name] = true
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("suppliers batch rejected", bad)
	}
	return nil
}

func validateEmployees(rows []model.Employee) error {
	bad := shapeErrors(rows, func(e model.Employee) string { return e.EmployeeNo })
	seen := map[string]bool{}
	for _, e := range rows {
		if seen[e.EmployeeNo] {
			bad = append(bad, e.EmployeeNo)
		}
		seen[e.EmployeeNo] = true
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("employees batch rejected", bad)
	}
	return nil
}

func validateIncidents(rows []model.MedicalIncident) error {
	statuses := map[model.IncidentStatus]bool{
		model.IncidentOpen:               true,
		model.IncidentUnderInvestigation: true,
		model.IncidentClosed:             true,
	}
	bad := shapeErrors(rows, func(in model.MedicalIncident) string { return in.ID.String() })
	for _, in := range rows {
		if !statuses[in.Status] {
			bad = append(bad, in.ID.String())
		}
	}
	if len(bad) > 0 {
		return apperr.ReloadValidation("incidents batch rejected", bad)
	}
	return nil
}
