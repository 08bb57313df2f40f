package source

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-stores-admin/internal/model"
)

// Postgres reads and writes the flat row tables. It implements Loader,
// JournalLoader and Sink.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates or updates the row tables and the users table.
func (p *Postgres) Migrate() error {
	return p.db.AutoMigrate(
		&CategoryRow{}, &ItemRow{}, &EquipmentRow{}, &SupplierRow{},
		&EmployeeRow{}, &IncidentRow{}, &MovementRow{}, &SignOutRow{},
		&model.User{},
	)
}

func (p *Postgres) Load() (*Batches, error) {
	b := &Batches{}

	var categories []CategoryRow
	if err := p.db.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, r := range categories {
		b.Categories = append(b.Categories, r.toModel())
	}

	var items []ItemRow
	if err := p.db.Order("created_at, code").Find(&items).Error; err != nil {
		return nil, err
	}
	for _, r := range items {
		b.Items = append(b.Items, r.toModel())
	}

	var equipment []EquipmentRow
	if err := p.db.Order("created_at, code").Find(&equipment).Error; err != nil {
		return nil, err
	}
	for _, r := range equipment {
		b.Equipment = append(b.Equipment, r.toModel())
	}

	var suppliers []SupplierRow
	if err := p.db.Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	for _, r := range suppliers {
		b.Suppliers = append(b.Suppliers, r.toModel())
	}

	var employees []EmployeeRow
	if err := p.db.Order("employee_no").Find(&employees).Error; err != nil {
		return nil, err
	}
	for _, r := range employees {
		b.Employees = append(b.Employees, r.toModel())
	}

	var incidents []IncidentRow
	if err := p.db.Order("occurred_at").Find(&incidents).Error; err != nil {
		return nil, err
	}
	for _, r := range incidents {
		b.Incidents = append(b.Incidents, r.toModel())
	}

	return b, nil
}

func (p *Postgres) LoadJournals() (*Journals, error) {
	j := &Journals{}

	var movements []MovementRow
	if err := p.db.Order("seq").Find(&movements).Error; err != nil {
		return nil, err
	}
	for _, r := range movements {
		j.Movements = append(j.Movements, r.toModel())
	}

	var signouts []SignOutRow
	if err := p.db.Order("seq").Find(&signouts).Error; err != nil {
		return nil, err
	}
	for _, r := range signouts {
		j.SignOuts = append(j.SignOuts, r.toModel())
	}

	return j, nil
}

// ---- Sink ----

func (p *Postgres) SaveItem(it model.InventoryItem) error {
	row := itemRowFrom(it)
	return p.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "category", "location", "quantity_on_hand", "unit",
			"min_stock", "max_stock", "unit_cost", "supplier", "last_restock",
			"active", "updated_at", "updated_by",
		}),
	}).Create(&row).Error
}

func (p *Postgres) SaveEquipment(e model.Equipment) error {
	row := equipmentRowFrom(e)
	return p.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "location", "status", "updated_at", "updated_by",
		}),
	}).Create(&row).Error
}

func (p *Postgres) SaveIncident(in model.MedicalIncident) error {
	row := incidentRowFrom(in)
	return p.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"treatment", "follow_up_required", "follow_up_date", "status",
			"updated_at", "updated_by",
		}),
	}).Create(&row).Error
}

func (p *Postgres) AppendMovement(m model.StockMovement) error {
	row := movementRowFrom(m)
	return p.db.Create(&row).Error
}

func (p *Postgres) SaveSignOut(t model.SignOutTransaction) error {
	row := signOutRowFrom(t)
	return p.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"checked_in_at", "check_in_actor", "close_reason",
		}),
	}).Create(&row).Error
}
