package service

import (
	"time"

	"go-stores-admin/internal/calc"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/store"
)

// DashboardStats is the overview block on the landing page.
type DashboardStats struct {
	TotalItems          int     `json:"total_items"`
	LowStockCount       int     `json:"low_stock_count"`
	OutOfStockCount     int     `json:"out_of_stock_count"`
	Categories          int     `json:"categories"`
	TotalValuation      float64 `json:"total_valuation"`
	EquipmentTotal      int     `json:"equipment_total"`
	OutstandingSignOuts int     `json:"outstanding_sign_outs"`
	OverdueSignOuts     int     `json:"overdue_sign_outs"`
	OpenIncidents       int     `json:"open_incidents"`
}

// CategoryRollup summarises one category for the dashboard grid.
type CategoryRollup struct {
	Category   string  `json:"category"`
	Items      int     `json:"items"`
	LowStock   int     `json:"low_stock"`
	TotalValue float64 `json:"total_value"`
}

// StockMovementPoint is one day of inbound/outbound volume for the chart.
type StockMovementPoint struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type DashboardService interface {
	GetStats(now time.Time) DashboardStats
	CategoryRollups() []CategoryRollup
	GetStockMovement(days int, now time.Time) []StockMovementPoint
	ExpiringContracts(within time.Duration, now time.Time) []model.Supplier
}

type dashboardService struct {
	store *store.Store
}

func NewDashboardService(st *store.Store) DashboardService {
	return &dashboardService{store: st}
}

func (s *dashboardService) GetStats(now time.Time) DashboardStats {
	stats := DashboardStats{Categories: len(s.store.Categories())}

	valuation := 0.0
	for _, it := range s.store.Items(func(it model.InventoryItem) bool { return it.Active }) {
		stats.TotalItems++
		valuation += calc.TotalValue(it.QuantityOnHand, it.UnitCost)
		switch calc.ItemStockStatus(it.QuantityOnHand, it.MinStock) {
		case model.StockLow:
			stats.LowStockCount++
		case model.StockOutOfStock:
			stats.OutOfStockCount++
		}
	}
	stats.TotalValuation = calc.RoundCurrency(valuation)

	stats.EquipmentTotal = len(s.store.AllEquipment(nil))
	for _, t := range s.store.SignOuts(func(t model.SignOutTransaction) bool { return t.Open() }) {
		stats.OutstandingSignOuts++
		if calc.SignOutStatus(t, now) == model.SignOutOverdue {
			stats.OverdueSignOuts++
		}
	}
	stats.OpenIncidents = len(s.store.Incidents(func(in model.MedicalIncident) bool {
		return in.Status != model.IncidentClosed
	}))
	return stats
}

func (s *dashboardService) CategoryRollups() []CategoryRollup {
	rollups := make([]CategoryRollup, 0)
	for _, c := range s.store.Categories() {
		r := CategoryRollup{Category: c.Name}
		value := 0.0
		for _, it := range s.store.Items(func(it model.InventoryItem) bool {
			return it.Active && it.Category == c.Name
		}) {
			r.Items++
			value += calc.TotalValue(it.QuantityOnHand, it.UnitCost)
			if calc.ItemStockStatus(it.QuantityOnHand, it.MinStock) != model.StockOK {
				r.LowStock++
			}
		}
		r.TotalValue = calc.RoundCurrency(value)
		rollups = append(rollups, r)
	}
	return rollups
}

// GetStockMovement aggregates the movement journal per day over the window.
// Days with no movements are included as zero points so charts stay dense.
func (s *dashboardService) GetStockMovement(days int, now time.Time) []StockMovementPoint {
	if days <= 0 {
		days = 7
	}
	start := now.AddDate(0, 0, -days)

	byDate := map[string]*StockMovementPoint{}
	order := make([]string, 0, days+1)
	for d := 0; d <= days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		byDate[date] = &StockMovementPoint{Date: date}
		order = append(order, date)
	}

	for _, m := range s.store.Movements(func(m model.StockMovement) bool {
		return !m.At.Before(start) && !m.At.After(now)
	}) {
		point, ok := byDate[m.At.Format("2006-01-02")]
		if !ok {
			continue
		}
		switch m.Type {
		case model.MovementIn:
			point.Inbound += m.Delta
		case model.MovementOut:
			point.Outbound += -m.Delta
		case model.MovementAdjustment:
			if m.Delta > 0 {
				point.Inbound += m.Delta
			} else {
				point.Outbound += -m.Delta
			}
		}
	}

	out := make([]StockMovementPoint, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out
}

func (s *dashboardService) ExpiringContracts(within time.Duration, now time.Time) []model.Supplier {
	cutoff := now.Add(within)
	return s.store.Suppliers(func(sp model.Supplier) bool {
		return sp.ContractExpiry != nil && sp.ContractExpiry.Before(cutoff)
	})
}
