package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-stores-admin/internal/model"
	"go-stores-admin/internal/store"
)

func TestDashboardStats(t *testing.T) {
	st := testStore(t)
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		tx.AppendSignOut(model.SignOutTransaction{
			ID: uuid.New(), EquipmentCode: "DRILL01",
			CheckedOutAt:   testNow.AddDate(0, 0, -5),
			ExpectedReturn: testNow.AddDate(0, 0, -2),
		})
		tx.UpsertIncident(model.MedicalIncident{
			ID: uuid.New(), PersonName: "X", IncidentType: "Burn",
			Severity: model.SeverityMinor, Status: model.IncidentOpen,
		})
		return nil
	}))

	svc := NewDashboardService(st)
	stats := svc.GetStats(testNow)

	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 0, stats.OutOfStockCount)
	assert.Equal(t, 2, stats.Categories)
	// 45*10.00 + 5*25.50
	assert.Equal(t, 577.5, stats.TotalValuation)
	assert.Equal(t, 2, stats.EquipmentTotal)
	assert.Equal(t, 1, stats.OutstandingSignOuts)
	assert.Equal(t, 1, stats.OverdueSignOuts)
	assert.Equal(t, 1, stats.OpenIncidents)
}

func TestCategoryRollups(t *testing.T) {
	svc := NewDashboardService(testStore(t))

	rollups := svc.CategoryRollups()
	require.Len(t, rollups, 2)

	assert.Equal(t, "Electric", rollups[0].Category)
	assert.Equal(t, 1, rollups[0].Items)
	assert.Equal(t, 0, rollups[0].LowStock)
	assert.Equal(t, 450.0, rollups[0].TotalValue)

	assert.Equal(t, "Plumbing", rollups[1].Category)
	assert.Equal(t, 1, rollups[1].LowStock)
	assert.Equal(t, 127.5, rollups[1].TotalValue)
}

func TestStockMovementSeries(t *testing.T) {
	st := testStore(t)
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		tx.AppendMovement(model.StockMovement{
			ID: uuid.New(), ItemCode: "E001", Type: model.MovementIn, Delta: 20,
			At: testNow.AddDate(0, 0, -2),
		})
		tx.AppendMovement(model.StockMovement{
			ID: uuid.New(), ItemCode: "E001", Type: model.MovementOut, Delta: -8,
			At: testNow.AddDate(0, 0, -2),
		})
		tx.AppendMovement(model.StockMovement{
			ID: uuid.New(), ItemCode: "E001", Type: model.MovementAdjustment, Delta: -3,
			At: testNow.AddDate(0, 0, -1),
		})
		// Outside the window.
		tx.AppendMovement(model.StockMovement{
			ID: uuid.New(), ItemCode: "E001", Type: model.MovementIn, Delta: 99,
			At: testNow.AddDate(0, 0, -30),
		})
		return nil
	}))

	svc := NewDashboardService(st)
	series := svc.GetStockMovement(7, testNow)
	require.Len(t, series, 8, "window plus today, zero-filled")

	byDate := map[string]StockMovementPoint{}
	for _, p := range series {
		byDate[p.Date] = p
	}

	twoDaysAgo := testNow.AddDate(0, 0, -2).Format("2006-01-02")
	assert.Equal(t, 20, byDate[twoDaysAgo].Inbound)
	assert.Equal(t, 8, byDate[twoDaysAgo].Outbound)

	yesterday := testNow.AddDate(0, 0, -1).Format("2006-01-02")
	assert.Equal(t, 3, byDate[yesterday].Outbound, "negative adjustment counts outbound")

	today := testNow.Format("2006-01-02")
	assert.Equal(t, 0, byDate[today].Inbound)
}

func TestExpiringContracts(t *testing.T) {
	st := testStore(t)
	soon := testNow.AddDate(0, 1, 0)
	far := testNow.AddDate(1, 0, 0)
	require.NoError(t, st.Update(func(tx *store.Tx) error {
		tx.UpsertSupplier(model.Supplier{Name: "SoonCo", ContractExpiry: &soon})
		tx.UpsertSupplier(model.Supplier{Name: "FarCo", ContractExpiry: &far})
		return nil
	}))

	svc := NewDashboardService(st)
	expiring := svc.ExpiringContracts(90*24*time.Hour, testNow)
	require.Len(t, expiring, 1)
	assert.Equal(t, "SoonCo", expiring[0].Name)
}
