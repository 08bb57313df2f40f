package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	st := New()
	err := st.Update(func(tx *Tx) error {
		tx.UpsertCategory(model.Category{Name: "Electric"})
		tx.UpsertCategory(model.Category{Name: "Plumbing"})
		tx.UpsertItem(model.InventoryItem{Code: "E001", Description: "LED tube", Category: "Electric", QuantityOnHand: 45, MinStock: 20, Active: true})
		tx.UpsertItem(model.InventoryItem{Code: "P001", Description: "Ball valve", Category: "Plumbing", QuantityOnHand: 5, MinStock: 10, Active: true})
		tx.UpsertEquipment(model.Equipment{Code: "DRILL01", Name: "Cordless drill", Category: "Electric", Status: model.EquipmentAvailable})
		tx.UpsertEmployee(model.Employee{EmployeeNo: "FAC001", Name: "Sifiso Shezi"})
		return nil
	})
	require.NoError(t, err)
	return st
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	st := New()

	_, err := st.Item("NOPE")
	assert.True(t, apperr.IsNotFound(err))

	_, err = st.Category("NOPE")
	assert.True(t, apperr.IsNotFound(err))

	_, err = st.Equipment("NOPE")
	assert.True(t, apperr.IsNotFound(err))

	_, err = st.Incident(uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpsertPreservesInsertionOrder(t *testing.T) {
	st := seeded(t)

	items := st.Items(nil)
	require.Len(t, items, 2)
	assert.Equal(t, "E001", items[0].Code)
	assert.Equal(t, "P001", items[1].Code)

	// Replacing an existing row keeps its position.
	err := st.Update(func(tx *Tx) error {
		it, err := tx.Item("E001")
		if err != nil {
			return err
		}
		it.QuantityOnHand = 99
		tx.UpsertItem(it)
		return nil
	})
	require.NoError(t, err)

	items = st.Items(nil)
	require.Len(t, items, 2)
	assert.Equal(t, "E001", items[0].Code)
	assert.Equal(t, 99, items[0].QuantityOnHand)
}

func TestItemsFilter(t *testing.T) {
	st := seeded(t)

	electric := st.Items(func(it model.InventoryItem) bool { return it.Category == "Electric" })
	require.Len(t, electric, 1)
	assert.Equal(t, "E001", electric[0].Code)
}

func TestUpdateErrorLeavesNoPartialState(t *testing.T) {
	st := seeded(t)

	err := st.Update(func(tx *Tx) error {
		if !tx.HasItem("E001") {
			t.Fatal("expected seeded item")
		}
		if tx.HasItem("X999") {
			return apperr.Conflict("item exists")
		}
		// Validate-then-commit: fail before any mutation.
		return apperr.InvalidOperation("rejected")
	})
	assert.True(t, apperr.IsInvalidOperation(err))

	items := st.Items(nil)
	assert.Len(t, items, 2)
}

func TestAppendMovementAssignsMonotonicSeq(t *testing.T) {
	st := seeded(t)

	var first, second model.StockMovement
	err := st.Update(func(tx *Tx) error {
		first = tx.AppendMovement(model.StockMovement{ID: uuid.New(), ItemCode: "E001", Delta: 10})
		second = tx.AppendMovement(model.StockMovement{ID: uuid.New(), ItemCode: "E001", Delta: -5})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint64(2), second.Seq)

	movements := st.MovementsForItem("E001")
	require.Len(t, movements, 2)
	assert.Equal(t, first.ID, movements[0].ID)
	assert.Equal(t, second.ID, movements[1].ID)
}

func TestOpenSignOutFor(t *testing.T) {
	st := seeded(t)

	var txn model.SignOutTransaction
	err := st.Update(func(tx *Tx) error {
		txn = tx.AppendSignOut(model.SignOutTransaction{
			ID:            uuid.New(),
			EquipmentCode: "DRILL01",
			Holder:        model.Holder{EmployeeNo: "FAC001"},
		})
		return nil
	})
	require.NoError(t, err)

	open, ok := st.OpenSignOutFor("DRILL01")
	require.True(t, ok)
	assert.Equal(t, txn.ID, open.ID)

	_, ok = st.OpenSignOutFor("LADDER01")
	assert.False(t, ok)

	// Closing the transaction removes it from the open set.
	err = st.Update(func(tx *Tx) error {
		_, err := tx.UpdateSignOut(txn.ID, func(s *model.SignOutTransaction) error {
			now := s.CheckedOutAt
			s.CheckedInAt = &now
			return nil
		})
		return err
	})
	require.NoError(t, err)

	_, ok = st.OpenSignOutFor("DRILL01")
	assert.False(t, ok)
}

func TestUpdateSignOutMissingID(t *testing.T) {
	st := seeded(t)
	err := st.Update(func(tx *Tx) error {
		_, err := tx.UpdateSignOut(uuid.New(), func(s *model.SignOutTransaction) error { return nil })
		return err
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestReplaceSwapsWholeTable(t *testing.T) {
	st := seeded(t)

	err := st.Update(func(tx *Tx) error {
		tx.ReplaceItems([]model.InventoryItem{
			{Code: "N001", Description: "New item", Category: "Electric", Active: true},
		})
		return nil
	})
	require.NoError(t, err)

	items := st.Items(nil)
	require.Len(t, items, 1)
	assert.Equal(t, "N001", items[0].Code)

	_, err = st.Item("E001")
	assert.True(t, apperr.IsNotFound(err))
}

func TestReplaceLeavesJournalsAlone(t *testing.T) {
	st := seeded(t)

	err := st.Update(func(tx *Tx) error {
		tx.AppendMovement(model.StockMovement{ID: uuid.New(), ItemCode: "E001", Delta: 10})
		tx.ReplaceItems(nil)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, st.Movements(nil), 1)
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	st := seeded(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = st.Items(nil)
				_, _ = st.Item("E001")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			_ = st.Update(func(tx *Tx) error {
				it, err := tx.Item("E001")
				if err != nil {
					return err
				}
				it.QuantityOnHand++
				tx.UpsertItem(it)
				return nil
			})
		}
	}()
	wg.Wait()

	it, err := st.Item("E001")
	require.NoError(t, err)
	assert.Equal(t, 145, it.QuantityOnHand)
}
