package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
)

type fakeLoader struct {
	batches  *source.Batches
	journals *source.Journals
	err      error
}

func (f *fakeLoader) Load() (*source.Batches, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batches, nil
}

func (f *fakeLoader) LoadJournals() (*source.Journals, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.journals == nil {
		return &source.Journals{}, nil
	}
	return f.journals, nil
}

func goodBatches() *source.Batches {
	return &source.Batches{
		Categories: []model.Category{
			{Name: "Electric", SortOrder: 1},
			{Name: "Plumbing", SortOrder: 2},
		},
		Items: []model.InventoryItem{
			{Code: "E001", Description: "LED tube 18W", Category: "Electric", QuantityOnHand: 45, MinStock: 20, Active: true},
			{Code: "P001", Description: "Ball valve 15mm", Category: "Plumbing", QuantityOnHand: 5, MinStock: 10, Active: true},
		},
		Equipment: []model.Equipment{
			{Code: "DRILL01", Name: "Cordless drill", Category: "Electric", Status: model.EquipmentAvailable},
		},
		Suppliers: []model.Supplier{{Name: "BrightSpark", CategorySupplied: "Electric"}},
		Employees: []model.Employee{{EmployeeNo: "FAC001", Name: "Sifiso Shezi"}},
	}
}

func TestBootstrapLoadsTablesAndJournals(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{
		batches: goodBatches(),
		journals: &source.Journals{
			Movements: []model.StockMovement{
				{ID: uuid.New(), ItemCode: "E001", Type: model.MovementIn, Delta: 45, ResultingLevel: 45},
			},
		},
	}
	svc := NewReloadService(st, loader, loader, nil)

	report, err := svc.Bootstrap()
	require.NoError(t, err)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 2, report.Tables["items"].Added)
	assert.Equal(t, 2, report.Tables["categories"].Added)

	assert.Len(t, st.Movements(nil), 1)

	it, err := st.Item("E001")
	require.NoError(t, err)
	assert.Equal(t, 45, it.QuantityOnHand)
}

func TestReloadIdempotent(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)

	_, err := svc.Bootstrap()
	require.NoError(t, err)

	report, err := svc.Reload()
	require.NoError(t, err)
	assert.Empty(t, report.Errors)
	assert.False(t, report.Changed(), "unchanged source must be a no-op diff")
}

func TestReloadBadTableKeepsPreviousSnapshot(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	// Second load: a corrupt item row (negative quantity) plus a legitimate
	// equipment addition.
	next := goodBatches()
	next.Items[1].QuantityOnHand = -3
	next.Equipment = append(next.Equipment, model.Equipment{
		Code: "LADDER01", Name: "Extension ladder", Category: "Electric", Status: model.EquipmentAvailable,
	})
	loader.batches = next

	report, err := svc.Reload()
	require.NoError(t, err)

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "P001")
	_, itemsSwapped := report.Tables["items"]
	assert.False(t, itemsSwapped, "failed table contributes no diff")

	// Items kept the previous snapshot.
	it, err := st.Item("P001")
	require.NoError(t, err)
	assert.Equal(t, 5, it.QuantityOnHand)

	// Independent tables still swapped.
	assert.Equal(t, 1, report.Tables["equipment"].Added)
	_, err = st.Equipment("LADDER01")
	assert.NoError(t, err)
}

func TestReloadBadCategoriesAbortsDependents(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	next := goodBatches()
	next.Categories = append(next.Categories, model.Category{Name: "Electric"}) // duplicate key
	loader.batches = next

	report, err := svc.Reload()
	require.NoError(t, err)

	// Categories, items and equipment all abort; the rest still reloads.
	assert.Len(t, report.Errors, 3)
	_, ok := report.Tables["categories"]
	assert.False(t, ok)
	_, ok = report.Tables["items"]
	assert.False(t, ok)
	_, ok = report.Tables["equipment"]
	assert.False(t, ok)
	_, ok = report.Tables["suppliers"]
	assert.True(t, ok)
}

func TestReloadRejectsUnknownCategoryReference(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	next := goodBatches()
	next.Items[0].Category = "Ghost"
	loader.batches = next

	report, err := svc.Reload()
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "E001")
}

func TestReloadNeverTouchesJournals(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	// Live traffic appends to the journals.
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		tx.AppendMovement(model.StockMovement{ID: uuid.New(), ItemCode: "E001", Delta: -5})
		tx.AppendSignOut(model.SignOutTransaction{ID: uuid.New(), EquipmentCode: "DRILL01"})
		return nil
	}))

	_, err = svc.Reload()
	require.NoError(t, err)

	assert.Len(t, st.Movements(nil), 1)
	assert.Len(t, st.SignOuts(nil), 1)
}

func TestReloadForcesCheckedOutFromOpenSignOuts(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, loader, loader, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	// An open sign-out exists; the source still says AVAILABLE.
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		tx.AppendSignOut(model.SignOutTransaction{ID: uuid.New(), EquipmentCode: "DRILL01"})
		e, err := tx.Equipment("DRILL01")
		if err != nil {
			return err
		}
		e.Status = model.EquipmentCheckedOut
		tx.UpsertEquipment(e)
		return nil
	}))

	_, err = svc.Reload()
	require.NoError(t, err)

	eq, err := st.Equipment("DRILL01")
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentCheckedOut, eq.Status, "journal wins over source status")

	// Conversely, a source claiming CHECKED_OUT with no open sign-out is
	// normalised back to AVAILABLE.
	next := goodBatches()
	next.Equipment = append(next.Equipment, model.Equipment{
		Code: "LADDER01", Name: "Extension ladder", Category: "Electric", Status: model.EquipmentCheckedOut,
	})
	loader.batches = next

	_, err = svc.Reload()
	require.NoError(t, err)

	eq, err = st.Equipment("LADDER01")
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentAvailable, eq.Status)
}

// mutatingLoader commits store mutations while a reload is in flight, after
// the batch has been read but before the swap.
type mutatingLoader struct {
	fakeLoader
	onLoad func()
}

func (m *mutatingLoader) Load() (*source.Batches, error) {
	b, err := m.fakeLoader.Load()
	if m.onLoad != nil {
		m.onLoad()
	}
	return b, err
}

func TestReloadKeepsCheckOutCommittedDuringReload(t *testing.T) {
	st := store.New()
	base := &fakeLoader{batches: goodBatches()}
	svc := NewReloadService(st, base, base, nil)
	_, err := svc.Bootstrap()
	require.NoError(t, err)

	// A check-out commits while the reload has already read the source, which
	// still says AVAILABLE. The swap must honour the open transaction, not the
	// stale batch.
	loader := &mutatingLoader{fakeLoader: fakeLoader{batches: goodBatches()}, onLoad: func() {
		require.NoError(t, st.Update(func(tx *store.Tx) error {
			tx.AppendSignOut(model.SignOutTransaction{ID: uuid.New(), EquipmentCode: "DRILL01"})
			e, err := tx.Equipment("DRILL01")
			if err != nil {
				return err
			}
			e.Status = model.EquipmentCheckedOut
			tx.UpsertEquipment(e)
			return nil
		}))
	}}
	svc = NewReloadService(st, loader, loader, nil)

	_, err = svc.Reload()
	require.NoError(t, err)

	eq, err := st.Equipment("DRILL01")
	require.NoError(t, err)
	assert.Equal(t, model.EquipmentCheckedOut, eq.Status)
}

func TestReloadConcurrentWithCheckOutCycles(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	reload := NewReloadService(st, loader, loader, nil)
	_, err := reload.Bootstrap()
	require.NoError(t, err)

	signout := NewSignOutService(st, nil, nil, fixedClock(testNow))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if _, err := reload.Reload(); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	var cycleErr error
	for i := 0; i < 200; i++ {
		if _, err := signout.CheckOut(&CheckOutRequest{
			EquipmentCode: "DRILL01", EmployeeNo: "FAC001", ExpectedReturn: testNow.AddDate(0, 0, 1),
		}, "tester"); err != nil {
			cycleErr = err
			break
		}
		if _, err := signout.CheckIn("DRILL01", "tester"); err != nil {
			cycleErr = err
			break
		}
	}
	<-done
	require.NoError(t, cycleErr, "a committed check-out must survive a concurrent reload")

	// At quiescence the unit is CHECKED_OUT exactly when an open sign-out exists.
	_, open := st.OpenSignOutFor("DRILL01")
	eq, err := st.Equipment("DRILL01")
	require.NoError(t, err)
	assert.Equal(t, open, eq.Status == model.EquipmentCheckedOut)
}

func TestReloadLoaderFailure(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{err: errors.New("connection refused")}
	svc := NewReloadService(st, loader, loader, nil)

	_, err := svc.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestReloadPublishesOnlyOnChange(t *testing.T) {
	st := store.New()
	loader := &fakeLoader{batches: goodBatches()}
	rec := &recorder{}
	svc := NewReloadService(st, loader, loader, rec)

	_, err := svc.Bootstrap()
	require.NoError(t, err)
	assert.True(t, rec.has("data_reloaded"))

	rec2 := &recorder{}
	svc2 := NewReloadService(st, loader, loader, rec2)
	_, err = svc2.Reload()
	require.NoError(t, err)
	assert.False(t, rec2.has("data_reloaded"), "no-op reload stays silent")
}
