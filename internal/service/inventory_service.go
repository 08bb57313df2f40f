package service

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-stores-admin/internal/apperr"
	"go-stores-admin/internal/calc"
	"go-stores-admin/internal/model"
	"go-stores-admin/internal/source"
	"go-stores-admin/internal/store"
	"go-stores-admin/pkg/validator"
)

// ItemView is an item plus its derived fields, recomputed on every read.
type ItemView struct {
	model.InventoryItem
	StockStatus model.StockStatus `json:"stock_status"`
	TotalValue  float64           `json:"total_value"`
}

// ReconcileResult compares the stored quantity against a replay of the
// movement log. Inconsistencies are surfaced, never silently fixed.
type ReconcileResult struct {
	ItemCode   string `json:"item_code"`
	Replayed   int    `json:"replayed"`
	Stored     int    `json:"stored"`
	Consistent bool   `json:"consistent"`
	Movements  int    `json:"movements"`
}

type InventoryService interface {
	ListCategories() []model.Category
	ListByCategory(name string) ([]ItemView, error)
	SearchItems(query string) []ItemView
	LowStockReport() []ItemView
	GetItem(code string) (*ItemView, error)
	ItemMovements(code string) ([]model.StockMovement, error)
	CreateItem(req *model.InventoryItem, actor string) error
	UpdateItemDetails(code string, req *UpdateItemRequest, actor string) (*ItemView, error)
	DeactivateItem(code, actor string) error
	AdjustStock(code string, delta int, reason, reference, actor string) (*model.StockMovement, error)
	CorrectStock(code string, countedQty int, reason, actor string) (*model.StockMovement, error)
	Reconcile(code string) (*ReconcileResult, error)
}

type inventoryService struct {
	store *store.Store
	sink  source.Sink
	hub   Broadcaster
	clock func() time.Time
}

func NewInventoryService(st *store.Store, sink source.Sink, hub Broadcaster, clock func() time.Time) InventoryService {
	if clock == nil {
		clock = time.Now
	}
	return &inventoryService{store: st, sink: sink, hub: hub, clock: clock}
}

func (s *inventoryService) view(it model.InventoryItem) ItemView {
	return ItemView{
		InventoryItem: it,
		StockStatus:   calc.ItemStockStatus(it.QuantityOnHand, it.MinStock),
		TotalValue:    calc.RoundCurrency(calc.TotalValue(it.QuantityOnHand, it.UnitCost)),
	}
}

func (s *inventoryService) views(items []model.InventoryItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, s.view(it))
	}
	return out
}

func (s *inventoryService) ListCategories() []model.Category {
	return s.store.Categories()
}

// ListByCategory distinguishes an empty category from a typo: an unknown
// category name is a NotFound, a known one with no items is an empty slice.
func (s *inventoryService) ListByCategory(name string) ([]ItemView, error) {
	if _, err := s.store.Category(name); err != nil {
		return nil, err
	}
	items := s.store.Items(func(it model.InventoryItem) bool {
		return it.Active && it.Category == name
	})
	return s.views(items), nil
}

// SearchItems matches case-insensitive substrings over code, description and
// supplier, ranked exact code > code > description > supplier, ties broken by
// insertion order.
func (s *inventoryService) SearchItems(query string) []ItemView {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []ItemView{}
	}

	type ranked struct {
		view ItemView
		rank int
	}
	var hits []ranked
	for _, it := range s.store.Items(func(it model.InventoryItem) bool { return it.Active }) {
		code := strings.ToLower(it.Code)
		name := strings.ToLower(it.Description)
		supplier := strings.ToLower(it.Supplier)
		switch {
		case code == q:
			hits = append(hits, ranked{s.view(it), 0})
		case strings.Contains(code, q):
			hits = append(hits, ranked{s.view(it), 1})
		case strings.Contains(name, q):
			hits = append(hits, ranked{s.view(it), 2})
		case strings.Contains(supplier, q):
			hits = append(hits, ranked{s.view(it), 3})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	out := make([]ItemView, len(hits))
	for i, h := range hits {
		out[i] = h.view
	}
	return out
}

func (s *inventoryService) LowStockReport() []ItemView {
	items := s.store.Items(func(it model.InventoryItem) bool {
		return it.Active && calc.ItemStockStatus(it.QuantityOnHand, it.MinStock) != model.StockOK
	})
	return s.views(items)
}

func (s *inventoryService) GetItem(code string) (*ItemView, error) {
	it, err := s.store.Item(code)
	if err != nil {
		return nil, err
	}
	v := s.view(it)
	return &v, nil
}

func (s *inventoryService) ItemMovements(code string) ([]model.StockMovement, error) {
	if _, err := s.store.Item(code); err != nil {
		return nil, err
	}
	return s.store.MovementsForItem(code), nil
}

func (s *inventoryService) CreateItem(req *model.InventoryItem, actor string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return apperr.InvalidOperation("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if req.QuantityOnHand < 0 {
		return apperr.InvalidOperation("quantity on hand cannot be negative")
	}

	now := s.clock()
	var mv *model.StockMovement
	err := s.store.Update(func(tx *store.Tx) error {
		if !tx.HasCategory(req.Category) {
			return apperr.NotFound("category %q not found", req.Category)
		}
		if tx.HasItem(req.Code) {
			return apperr.Conflict("item code %q already exists", req.Code)
		}
		req.Active = true
		req.CreatedAt = now
		req.UpdatedAt = now
		req.CreatedBy = actor
		req.UpdatedBy = actor
		tx.UpsertItem(*req)

		// Opening balance goes through the movement log like any other change.
		if req.QuantityOnHand > 0 {
			m := tx.AppendMovement(model.StockMovement{
				ID:             uuid.New(),
				ItemCode:       req.Code,
				Type:           model.MovementIn,
				Delta:          req.QuantityOnHand,
				ResultingLevel: req.QuantityOnHand,
				Reason:         "initial stock load",
				Actor:          actor,
				At:             now,
			})
			mv = &m
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.persistItem(*req)
	if mv != nil {
		s.persistMovement(*mv)
	}
	publish(s.hub, "item_created", map[string]interface{}{
		"item_code": req.Code,
		"category":  req.Category,
		"quantity":  req.QuantityOnHand,
		"actor":     actor,
	})
	return nil
}

// UpdateItemRequest edits the descriptive fields. Omitted fields are left
// alone; quantity has no field here on purpose.
type UpdateItemRequest struct {
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Unit        *string  `json:"unit_of_measure"`
	Supplier    *string  `json:"supplier"`
	MinStock    *int     `json:"min_stock_level" validate:"omitempty,gte=0"`
	MaxStock    *int     `json:"max_stock_level" validate:"omitempty,gte=0"`
	UnitCost    *float64 `json:"unit_cost" validate:"omitempty,gte=0"`
}

// UpdateItemDetails edits the descriptive fields. Quantity is deliberately
// untouched here: stock only moves through AdjustStock/CorrectStock so the
// movement log stays authoritative.
func (s *inventoryService) UpdateItemDetails(code string, req *UpdateItemRequest, actor string) (*ItemView, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, apperr.InvalidOperation("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	now := s.clock()
	var updated model.InventoryItem
	err := s.store.Update(func(tx *store.Tx) error {
		it, err := tx.Item(code)
		if err != nil {
			return err
		}
		if req.Category != nil && *req.Category != it.Category {
			if !tx.HasCategory(*req.Category) {
				return apperr.NotFound("category %q not found", *req.Category)
			}
			it.Category = *req.Category
		}
		if req.Description != nil {
			it.Description = *req.Description
		}
		if req.Location != nil {
			it.Location = *req.Location
		}
		if req.Unit != nil {
			it.Unit = *req.Unit
		}
		if req.Supplier != nil {
			it.Supplier = *req.Supplier
		}
		if req.MinStock != nil {
			it.MinStock = *req.MinStock
		}
		if req.MaxStock != nil {
			it.MaxStock = *req.MaxStock
		}
		if req.UnitCost != nil {
			it.UnitCost = *req.UnitCost
		}
		it.UpdatedAt = now
		it.UpdatedBy = actor
		tx.UpsertItem(it)
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persistItem(updated)
	v := s.view(updated)
	return &v, nil
}

// DeactivateItem soft-deactivates; the item and its movement history remain.
func (s *inventoryService) DeactivateItem(code, actor string) error {
	now := s.clock()
	var updated model.InventoryItem
	err := s.store.Update(func(tx *store.Tx) error {
		it, err := tx.Item(code)
		if err != nil {
			return err
		}
		it.Active = false
		it.UpdatedAt = now
		it.UpdatedBy = actor
		tx.UpsertItem(it)
		updated = it
		return nil
	})
	if err != nil {
		return err
	}
	s.persistItem(updated)
	return nil
}

// AdjustStock is the only sanctioned path for quantity changes. It validates
// before committing: a delta that would drive the quantity negative is
// rejected with no state change and no movement appended.
func (s *inventoryService) AdjustStock(code string, delta int, reason, reference, actor string) (*model.StockMovement, error) {
	if delta == 0 {
		return nil, apperr.InvalidOperation("stock adjustment delta must be non-zero")
	}

	now := s.clock()
	var mv model.StockMovement
	var updated model.InventoryItem
	err := s.store.Update(func(tx *store.Tx) error {
		it, err := tx.Item(code)
		if err != nil {
			return err
		}
		if !it.Active {
			return apperr.InvalidOperation("item %q is deactivated", code)
		}
		newQty := it.QuantityOnHand + delta
		if newQty < 0 {
			return apperr.InvalidOperation(
				"insufficient stock for item %q: have %d, requested %d", code, it.QuantityOnHand, -delta)
		}

		it.QuantityOnHand = newQty
		it.UpdatedAt = now
		it.UpdatedBy = actor
		if delta > 0 {
			it.LastRestock = &now
		}
		tx.UpsertItem(it)

		mvType := model.MovementOut
		if delta > 0 {
			mvType = model.MovementIn
		}
		mv = tx.AppendMovement(model.StockMovement{
			ID:             uuid.New(),
			ItemCode:       code,
			Type:           mvType,
			Delta:          delta,
			ResultingLevel: newQty,
			Reason:         reason,
			Reference:      reference,
			Actor:          actor,
			At:             now,
		})
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persistItem(updated)
	s.persistMovement(mv)
	publish(s.hub, "stock_adjusted", map[string]interface{}{
		"item_code": code,
		"delta":     delta,
		"new_stock": updated.QuantityOnHand,
		"status":    string(calc.ItemStockStatus(updated.QuantityOnHand, updated.MinStock)),
		"reason":    reason,
		"actor":     actor,
		"message":   fmt.Sprintf("%s adjusted %q by %+d (now %d)", actor, code, delta, updated.QuantityOnHand),
	})
	return &mv, nil
}

// CorrectStock sets the quantity to a counted value, recording the difference
// as an ADJUSTMENT movement (stock takes, damaged goods write-offs).
func (s *inventoryService) CorrectStock(code string, countedQty int, reason, actor string) (*model.StockMovement, error) {
	if countedQty < 0 {
		return nil, apperr.InvalidOperation("counted quantity cannot be negative")
	}

	now := s.clock()
	var mv model.StockMovement
	var updated model.InventoryItem
	err := s.store.Update(func(tx *store.Tx) error {
		it, err := tx.Item(code)
		if err != nil {
			return err
		}
		delta := countedQty - it.QuantityOnHand
		if delta == 0 {
			return apperr.InvalidOperation("counted quantity equals current stock for item %q", code)
		}

		it.QuantityOnHand = countedQty
		it.UpdatedAt = now
		it.UpdatedBy = actor
		tx.UpsertItem(it)

		mv = tx.AppendMovement(model.StockMovement{
			ID:             uuid.New(),
			ItemCode:       code,
			Type:           model.MovementAdjustment,
			Delta:          delta,
			ResultingLevel: countedQty,
			Reason:         reason,
			Actor:          actor,
			At:             now,
		})
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persistItem(updated)
	s.persistMovement(mv)
	publish(s.hub, "stock_corrected", map[string]interface{}{
		"item_code": code,
		"new_stock": countedQty,
		"actor":     actor,
	})
	return &mv, nil
}

// Reconcile replays the item's movement log from zero and compares the result
// with the stored quantity.
func (s *inventoryService) Reconcile(code string) (*ReconcileResult, error) {
	it, err := s.store.Item(code)
	if err != nil {
		return nil, err
	}
	movements := s.store.MovementsForItem(code)
	replayed := 0
	for _, m := range movements {
		replayed += m.Delta
	}
	return &ReconcileResult{
		ItemCode:   code,
		Replayed:   replayed,
		Stored:     it.QuantityOnHand,
		Consistent: replayed == it.QuantityOnHand,
		Movements:  len(movements),
	}, nil
}

func (s *inventoryService) persistItem(it model.InventoryItem) {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveItem(it); err != nil {
		log.Printf("Warning: failed to persist item %s: %v", it.Code, err)
	}
}

func (s *inventoryService) persistMovement(m model.StockMovement) {
	if s.sink == nil {
		return
	}
	if err := s.sink.AppendMovement(m); err != nil {
		log.Printf("Warning: failed to persist movement %s: %v", m.ID, err)
	}
}
