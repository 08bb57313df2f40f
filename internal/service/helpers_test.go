package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/store"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// recorder captures published events so tests can assert on them.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Publish(event string, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) has(event string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == event {
			return true
		}
	}
	return false
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	err := st.Update(func(tx *store.Tx) error {
		tx.UpsertCategory(model.Category{Name: "Electric", SortOrder: 1})
		tx.UpsertCategory(model.Category{Name: "Plumbing", SortOrder: 2})
		tx.UpsertItem(model.InventoryItem{
			Code: "E001", Description: "LED tube 18W", Category: "Electric",
			QuantityOnHand: 45, MinStock: 20, UnitCost: 10.0, Supplier: "BrightSpark", Active: true,
		})
		tx.UpsertItem(model.InventoryItem{
			Code: "P001", Description: "Ball valve 15mm", Category: "Plumbing",
			QuantityOnHand: 5, MinStock: 10, UnitCost: 25.5, Supplier: "FlowFit", Active: true,
		})
		tx.UpsertEquipment(model.Equipment{
			Code: "DRILL01", Name: "Cordless drill", Category: "Electric", Status: model.EquipmentAvailable,
		})
		tx.UpsertEquipment(model.Equipment{
			Code: "LADDER01", Name: "Extension ladder", Category: "Electric", Status: model.EquipmentAvailable,
		})
		tx.UpsertEmployee(model.Employee{EmployeeNo: "FAC001", Name: "Sifiso Shezi", Department: "Facilities"})
		tx.UpsertEmployee(model.Employee{EmployeeNo: "FAC002", Name: "Lindiwe Dube", Department: "Maintenance"})
		tx.UpsertSupplier(model.Supplier{Name: "BrightSpark", CategorySupplied: "Electric"})
		return nil
	})
	require.NoError(t, err)
	return st
}
