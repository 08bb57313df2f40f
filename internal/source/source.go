// Package source is the boundary to the external source of truth. The Loader
// supplies candidate entity batches for the Record Store; the Sink accepts
// write-behind persistence after a mutation has been applied in memory.
package source

import "go-stores-admin/internal/model"

// Batches are the reloadable tables as read from the source. The reload
// orchestrator validates them before anything reaches the Record Store.
type Batches struct {
	Categories []model.Category
	Items      []model.InventoryItem
	Equipment  []model.Equipment
	Suppliers  []model.Supplier
	Employees  []model.Employee
	Incidents  []model.MedicalIncident
}

// Journals are the audit logs, read once at startup. After that the source
// copy is a cache, never reloaded.
type Journals struct {
	Movements []model.StockMovement
	SignOuts  []model.SignOutTransaction
}

type Loader interface {
	Load() (*Batches, error)
}

type JournalLoader interface {
	LoadJournals() (*Journals, error)
}

// Sink persistence is best-effort: callers log failures and keep serving from
// the in-memory store.
type Sink interface {
	SaveItem(model.InventoryItem) error
	SaveEquipment(model.Equipment) error
	SaveIncident(model.MedicalIncident) error
	AppendMovement(model.StockMovement) error
	SaveSignOut(model.SignOutTransaction) error
}
