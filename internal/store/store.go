// Package store implements the Record Store: the single owner of all loaded
// entity snapshots. Every mutation runs behind one writer lock via Update;
// readers take the read lock briefly and copy values out, so they never
// observe a partially-applied change. Reload builds replacement tables off to
// the side and swaps them inside one Update call.
package store

import (
	"sync"

	"github.com/google/uuid"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
)

type state struct {
	categories *table[model.Category]
	items      *table[model.InventoryItem]
	equipment  *table[model.Equipment]
	suppliers  *table[model.Supplier]
	employees  *table[model.Employee]
	incidents  *table[model.MedicalIncident]

	movements *journal[model.StockMovement]
	signouts  *journal[model.SignOutTransaction]
}

func newState() *state {
	return &state{
		categories: newTable(func(c model.Category) string { return c.Name }),
		items:      newTable(func(i model.InventoryItem) string { return i.Code }),
		equipment:  newTable(func(e model.Equipment) string { return e.Code }),
		suppliers:  newTable(func(s model.Supplier) string { return s.Name }),
		employees:  newTable(func(e model.Employee) string { return e.EmployeeNo }),
		incidents:  newTable(func(i model.MedicalIncident) string { return i.ID.String() }),
		movements:  &journal[model.StockMovement]{},
		signouts:   &journal[model.SignOutTransaction]{},
	}
}

type Store struct {
	mu sync.RWMutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

// Update runs fn with exclusive access to the store. Callers follow
// validate-then-commit: all checks happen before the first mutation, there is
// no rollback.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{st: s.st})
}

// ---- reads ----

func (s *Store) Category(name string) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.st.categories.get(name)
	if !ok {
		return model.Category{}, apperr.NotFound("category %q not found", name)
	}
	return c, nil
}

func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.categories.all(nil)
}

func (s *Store) Item(code string) (model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.st.items.get(code)
	if !ok {
		return model.InventoryItem{}, apperr.NotFound("item %q not found", code)
	}
	return it, nil
}

func (s *Store) Items(filter func(model.InventoryItem) bool) []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.items.all(filter)
}

func (s *Store) Equipment(code string) (model.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.st.equipment.get(code)
	if !ok {
		return model.Equipment{}, apperr.NotFound("equipment %q not found", code)
	}
	return e, nil
}

func (s *Store) AllEquipment(filter func(model.Equipment) bool) []model.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.equipment.all(filter)
}

func (s *Store) Supplier(name string) (model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.st.suppliers.get(name)
	if !ok {
		return model.Supplier{}, apperr.NotFound("supplier %q not found", name)
	}
	return sp, nil
}

func (s *Store) Suppliers(filter func(model.Supplier) bool) []model.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.suppliers.all(filter)
}

func (s *Store) Employee(no string) (model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.st.employees.get(no)
	if !ok {
		return model.Employee{}, apperr.NotFound("employee %q not found", no)
	}
	return e, nil
}

func (s *Store) Employees() []model.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.employees.all(nil)
}

func (s *Store) Incident(id uuid.UUID) (model.MedicalIncident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.st.incidents.get(id.String())
	if !ok {
		return model.MedicalIncident{}, apperr.NotFound("incident %q not found", id)
	}
	return in, nil
}

func (s *Store) Incidents(filter func(model.MedicalIncident) bool) []model.MedicalIncident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.incidents.all(filter)
}

// Movements returns log entries in admission order.
func (s *Store) Movements(filter func(model.StockMovement) bool) []model.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.movements.all(filter)
}

func (s *Store) MovementsForItem(code string) []model.StockMovement {
	return s.Movements(func(m model.StockMovement) bool { return m.ItemCode == code })
}

func (s *Store) SignOuts(filter func(model.SignOutTransaction) bool) []model.SignOutTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.signouts.all(filter)
}

// OpenSignOutFor returns the single open transaction for an equipment unit,
// if one exists.
func (s *Store) OpenSignOutFor(equipmentCode string) (model.SignOutTransaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.st.signouts.entries {
		if t.EquipmentCode == equipmentCode && t.Open() {
			return t, true
		}
	}
	return model.SignOutTransaction{}, false
}

// ---- Tx: mutation surface, only reachable through Update ----

type Tx struct {
	st *state
}

func (tx *Tx) Item(code string) (model.InventoryItem, error) {
	it, ok := tx.st.items.get(code)
	if !ok {
		return model.InventoryItem{}, apperr.NotFound("item %q not found", code)
	}
	return it, nil
}

func (tx *Tx) Equipment(code string) (model.Equipment, error) {
	e, ok := tx.st.equipment.get(code)
	if !ok {
		return model.Equipment{}, apperr.NotFound("equipment %q not found", code)
	}
	return e, nil
}

func (tx *Tx) Incident(id uuid.UUID) (model.MedicalIncident, error) {
	in, ok := tx.st.incidents.get(id.String())
	if !ok {
		return model.MedicalIncident{}, apperr.NotFound("incident %q not found", id)
	}
	return in, nil
}

func (tx *Tx) AllEquipment(filter func(model.Equipment) bool) []model.Equipment {
	return tx.st.equipment.all(filter)
}

func (tx *Tx) HasCategory(name string) bool  { return tx.st.categories.has(name) }
func (tx *Tx) HasItem(code string) bool      { return tx.st.items.has(code) }
func (tx *Tx) HasEquipment(code string) bool { return tx.st.equipment.has(code) }

func (tx *Tx) UpsertCategory(c model.Category)        { tx.st.categories.upsert(c) }
func (tx *Tx) UpsertItem(i model.InventoryItem)       { tx.st.items.upsert(i) }
func (tx *Tx) UpsertEquipment(e model.Equipment)      { tx.st.equipment.upsert(e) }
func (tx *Tx) UpsertSupplier(s model.Supplier)        { tx.st.suppliers.upsert(s) }
func (tx *Tx) UpsertEmployee(e model.Employee)        { tx.st.employees.upsert(e) }
func (tx *Tx) UpsertIncident(i model.MedicalIncident) { tx.st.incidents.upsert(i) }

// AppendMovement admits a movement to the log, assigning its sequence number.
func (tx *Tx) AppendMovement(m model.StockMovement) model.StockMovement {
	return tx.st.movements.append(m, func(v *model.StockMovement, seq uint64) { v.Seq = seq })
}

// AppendSignOut admits a sign-out transaction to the log.
func (tx *Tx) AppendSignOut(t model.SignOutTransaction) model.SignOutTransaction {
	return tx.st.signouts.append(t, func(v *model.SignOutTransaction, seq uint64) { v.Seq = seq })
}

// UpdateSignOut applies fn to the transaction with the given id. Sign-out
// records are mutated exactly once, at check-in; anything else is a caller bug.
func (tx *Tx) UpdateSignOut(id uuid.UUID, fn func(*model.SignOutTransaction) error) (model.SignOutTransaction, error) {
	for i := range tx.st.signouts.entries {
		if tx.st.signouts.entries[i].ID == id {
			if err := fn(&tx.st.signouts.entries[i]); err != nil {
				return model.SignOutTransaction{}, err
			}
			return tx.st.signouts.entries[i], nil
		}
	}
	return model.SignOutTransaction{}, apperr.NotFound("sign-out transaction %q not found", id)
}

func (tx *Tx) OpenSignOutFor(equipmentCode string) (model.SignOutTransaction, bool) {
	for _, t := range tx.st.signouts.entries {
		if t.EquipmentCode == equipmentCode && t.Open() {
			return t, true
		}
	}
	return model.SignOutTransaction{}, false
}

// Replace* swap an entire table atomically. Movement and sign-out journals
// have no replace path on purpose: they are the audit trail.

func (tx *Tx) ReplaceCategories(rows []model.Category) { tx.st.categories = tx.st.categories.replaceWith(rows) }
func (tx *Tx) ReplaceItems(rows []model.InventoryItem) { tx.st.items = tx.st.items.replaceWith(rows) }
func (tx *Tx) ReplaceEquipment(rows []model.Equipment) { tx.st.equipment = tx.st.equipment.replaceWith(rows) }
func (tx *Tx) ReplaceSuppliers(rows []model.Supplier)  { tx.st.suppliers = tx.st.suppliers.replaceWith(rows) }
func (tx *Tx) ReplaceEmployees(rows []model.Employee)  { tx.st.employees = tx.st.employees.replaceWith(rows) }
func (tx *Tx) ReplaceIncidents(rows []model.MedicalIncident) {
	tx.st.incidents = tx.st.incidents.replaceWith(rows)
}
