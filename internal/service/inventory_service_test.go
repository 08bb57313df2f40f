package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/model"
)

func newInventoryService(t *testing.T) (InventoryService, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewInventoryService(testStore(t), nil, rec, fixedClock(testNow)), rec
}

func TestAdjustStockHappyPath(t *testing.T) {
	svc, rec := newInventoryService(t)

	mv, err := svc.AdjustStock("E001", -40, "issued to workshop", "WO-1001", "tester")
	require.NoError(t, err)

	assert.Equal(t, model.MovementOut, mv.Type)
	assert.Equal(t, -40, mv.Delta)
	assert.Equal(t, 5, mv.ResultingLevel)
	assert.Equal(t, "WO-1001", mv.Reference)
	assert.Equal(t, uint64(1), mv.Seq)

	item, err := svc.GetItem("E001")
	require.NoError(t, err)
	assert.Equal(t, 5, item.QuantityOnHand)
	assert.Equal(t, model.StockLow, item.StockStatus)

	movements, err := svc.ItemMovements("E001")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, mv.ID, movements[0].ID)

	assert.True(t, rec.has("stock_adjusted"))
}

func TestAdjustStockInsufficientLeavesStateUntouched(t *testing.T) {
	svc, rec := newInventoryService(t)

	_, err := svc.AdjustStock("E001", -50, "typo", "", "tester")
	require.Error(t, err)
	assert.True(t, apperr.IsInvalidOperation(err))
	assert.Contains(t, err.Error(), "have 45, requested 50")

	item, err := svc.GetItem("E001")
	require.NoError(t, err)
	assert.Equal(t, 45, item.QuantityOnHand)

	movements, err := svc.ItemMovements("E001")
	require.NoError(t, err)
	assert.Empty(t, movements)

	assert.False(t, rec.has("stock_adjusted"))
}

func TestAdjustStockRules(t *testing.T) {
	svc, _ := newInventoryService(t)

	_, err := svc.AdjustStock("E001", 0, "noop", "", "tester")
	assert.True(t, apperr.IsInvalidOperation(err))

	_, err = svc.AdjustStock("NOPE", 5, "missing", "", "tester")
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, svc.DeactivateItem("E001", "tester"))
	_, err = svc.AdjustStock("E001", 5, "inactive", "", "tester")
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestAdjustStockPositiveSetsLastRestock(t *testing.T) {
	svc, _ := newInventoryService(t)

	mv, err := svc.AdjustStock("P001", 20, "delivery", "GRN-7", "tester")
	require.NoError(t, err)
	assert.Equal(t, model.MovementIn, mv.Type)

	item, err := svc.GetItem("P001")
	require.NoError(t, err)
	require.NotNil(t, item.LastRestock)
	assert.Equal(t, testNow, *item.LastRestock)
	assert.Equal(t, model.StockOK, item.StockStatus)
}

func TestCorrectStockRecordsAdjustment(t *testing.T) {
	svc, _ := newInventoryService(t)

	mv, err := svc.CorrectStock("E001", 40, "stock take", "tester")
	require.NoError(t, err)
	assert.Equal(t, model.MovementAdjustment, mv.Type)
	assert.Equal(t, -5, mv.Delta)
	assert.Equal(t, 40, mv.ResultingLevel)

	_, err = svc.CorrectStock("E001", 40, "same count", "tester")
	assert.True(t, apperr.IsInvalidOperation(err))

	_, err = svc.CorrectStock("E001", -1, "bad count", "tester")
	assert.True(t, apperr.IsInvalidOperation(err))
}

func TestReconcileReplaysMovementLog(t *testing.T) {
	svc, _ := newInventoryService(t)

	// Seeded quantity never went through the movement log, so replay
	// disagrees until the full history is in the journal.
	res, err := svc.Reconcile("E001")
	require.NoError(t, err)
	assert.False(t, res.Consistent)
	assert.Equal(t, 0, res.Replayed)
	assert.Equal(t, 45, res.Stored)

	// An item created through the service carries its opening balance.
	item := &model.InventoryItem{
		Code: "E100", Description: "Extension cord", Category: "Electric",
		QuantityOnHand: 12, MinStock: 5, UnitCost: 30,
	}
	require.NoError(t, svc.CreateItem(item, "tester"))

	_, err = svc.AdjustStock("E100", -2, "issued", "", "tester")
	require.NoError(t, err)

	res, err = svc.Reconcile("E100")
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Equal(t, 10, res.Replayed)
	assert.Equal(t, 10, res.Stored)
	assert.Equal(t, 2, res.Movements)
}

func TestCreateItemValidation(t *testing.T) {
	svc, _ := newInventoryService(t)

	err := svc.CreateItem(&model.InventoryItem{Code: "X1", Category: "Electric"}, "tester")
	assert.True(t, apperr.IsInvalidOperation(err), "missing description should fail validation")

	err = svc.CreateItem(&model.InventoryItem{
		Code: "X1", Description: "thing", Category: "Ghost",
	}, "tester")
	assert.True(t, apperr.IsNotFound(err), "unknown category")

	err = svc.CreateItem(&model.InventoryItem{
		Code: "E001", Description: "dup", Category: "Electric",
	}, "tester")
	assert.True(t, apperr.IsConflict(err), "duplicate code")
}

func TestUpdateItemDetailsPartial(t *testing.T) {
	svc, _ := newInventoryService(t)

	loc := "Shelf B2"
	cost := 11.5
	updated, err := svc.UpdateItemDetails("E001", &UpdateItemRequest{
		Location: &loc,
		UnitCost: &cost,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, "Shelf B2", updated.Location)
	assert.Equal(t, 11.5, updated.UnitCost)
	// Untouched fields survive.
	assert.Equal(t, "LED tube 18W", updated.Description)
	assert.Equal(t, 45, updated.QuantityOnHand)
	assert.Equal(t, "tester", updated.UpdatedBy)

	ghost := "Ghost"
	_, err = svc.UpdateItemDetails("E001", &UpdateItemRequest{Category: &ghost}, "tester")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListByCategory(t *testing.T) {
	svc, _ := newInventoryService(t)

	items, err := svc.ListByCategory("Electric")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "E001", items[0].Code)

	_, err = svc.ListByCategory("Ghost")
	assert.True(t, apperr.IsNotFound(err), "unknown category is not an empty list")

	// Deactivated items drop out of listings.
	require.NoError(t, svc.DeactivateItem("E001", "tester"))
	items, err = svc.ListByCategory("Electric")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLowStockReport(t *testing.T) {
	svc, _ := newInventoryService(t)

	report := svc.LowStockReport()
	require.Len(t, report, 1)
	assert.Equal(t, "P001", report[0].Code)
	assert.Equal(t, model.StockLow, report[0].StockStatus)

	// Drive E001 to zero: now it appears too.
	_, err := svc.AdjustStock("E001", -45, "cleared", "", "tester")
	require.NoError(t, err)

	report = svc.LowStockReport()
	require.Len(t, report, 2)
	assert.Equal(t, model.StockOutOfStock, report[0].StockStatus)
}

func TestSearchItemsRanking(t *testing.T) {
	svc, _ := newInventoryService(t)

	item := &model.InventoryItem{
		Code: "E002", Description: "Torque spanner", Category: "Electric",
		MinStock: 1, Supplier: "ValveMasters",
	}
	require.NoError(t, svc.CreateItem(item, "tester"))

	// Exact code beats substring matches.
	hits := svc.SearchItems("e001")
	require.NotEmpty(t, hits)
	assert.Equal(t, "E001", hits[0].Code)

	// Description match ranks above supplier match.
	hits = svc.SearchItems("valve")
	require.Len(t, hits, 2)
	assert.Equal(t, "P001", hits[0].Code, "description match first")
	assert.Equal(t, "E002", hits[1].Code)

	assert.Empty(t, svc.SearchItems("   "))
}

func TestItemViewDerivedFields(t *testing.T) {
	svc, _ := newInventoryService(t)

	item, err := svc.GetItem("P001")
	require.NoError(t, err)
	assert.Equal(t, model.StockLow, item.StockStatus)
	assert.Equal(t, 127.5, item.TotalValue)
}
