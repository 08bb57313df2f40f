package source

import (
	"time"

	"github.com/google/uuid"

	"go-stores-admin/internal/model"
)

// Flat row models mirroring the workbook sheets the system was administered
// from. The database is the external source of truth for the reloadable
// tables and a write-behind cache for the audit journals.

type CategoryRow struct {
	model.BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"default:0"`
}

func (CategoryRow) TableName() string { return "category_rows" }

func (r CategoryRow) toModel() model.Category {
	return model.Category{Name: r.Name, Description: r.Description, SortOrder: r.SortOrder}
}

type ItemRow struct {
	model.BaseModel
	Code           string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description    string     `gorm:"type:varchar(255);not null"`
	Category       string     `gorm:"type:varchar(100);not null;index"`
	Location       string     `gorm:"type:varchar(100)"`
	QuantityOnHand int        `gorm:"default:0"`
	Unit           string     `gorm:"type:varchar(20)"`
	MinStock       int        `gorm:"default:0"`
	MaxStock       int        `gorm:"default:0"`
	UnitCost       float64    `gorm:"default:0"`
	Supplier       string     `gorm:"type:varchar(255)"`
	LastRestock    *time.Time
	Active         bool `gorm:"default:true"`
}

func (ItemRow) TableName() string { return "item_rows" }

func (r ItemRow) toModel() model.InventoryItem {
	it := model.InventoryItem{
		Code:           r.Code,
		Description:    r.Description,
		Category:       r.Category,
		Location:       r.Location,
		QuantityOnHand: r.QuantityOnHand,
		Unit:           r.Unit,
		MinStock:       r.MinStock,
		MaxStock:       r.MaxStock,
		UnitCost:       r.UnitCost,
		Supplier:       r.Supplier,
		LastRestock:    r.LastRestock,
		Active:         r.Active,
	}
	it.CreatedAt = r.CreatedAt
	it.UpdatedAt = r.UpdatedAt
	it.CreatedBy = r.CreatedBy
	it.UpdatedBy = r.UpdatedBy
	return it
}

func itemRowFrom(it model.InventoryItem) ItemRow {
	r := ItemRow{
		Code:           it.Code,
		Description:    it.Description,
		Category:       it.Category,
		Location:       it.Location,
		QuantityOnHand: it.QuantityOnHand,
		Unit:           it.Unit,
		MinStock:       it.MinStock,
		MaxStock:       it.MaxStock,
		UnitCost:       it.UnitCost,
		Supplier:       it.Supplier,
		LastRestock:    it.LastRestock,
		Active:         it.Active,
	}
	r.CreatedBy = it.CreatedBy
	r.UpdatedBy = it.UpdatedBy
	return r
}

type EquipmentRow struct {
	model.BaseModel
	Code     string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name     string `gorm:"type:varchar(255);not null"`
	Category string `gorm:"type:varchar(100);not null"`
	Location string `gorm:"type:varchar(100)"`
	Status   string `gorm:"type:varchar(20);default:'AVAILABLE'"`
}

func (EquipmentRow) TableName() string { return "equipment_rows" }

func (r EquipmentRow) toModel() model.Equipment {
	e := model.Equipment{
		Code:     r.Code,
		Name:     r.Name,
		Category: r.Category,
		Location: r.Location,
		Status:   model.EquipmentStatus(r.Status),
	}
	e.CreatedAt = r.CreatedAt
	e.UpdatedAt = r.UpdatedAt
	e.CreatedBy = r.CreatedBy
	e.UpdatedBy = r.UpdatedBy
	return e
}

func equipmentRowFrom(e model.Equipment) EquipmentRow {
	r := EquipmentRow{
		Code:     e.Code,
		Name:     e.Name,
		Category: e.Category,
		Location: e.Location,
		Status:   string(e.Status),
	}
	r.CreatedBy = e.CreatedBy
	r.UpdatedBy = e.UpdatedBy
	return r
}

type SupplierRow struct {
	model.BaseModel
	Name             string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	CategorySupplied string     `gorm:"type:varchar(100)"`
	ContactPerson    string     `gorm:"type:varchar(255)"`
	Phone            string     `gorm:"type:varchar(50)"`
	Email            string     `gorm:"type:varchar(255)"`
	ContractExpiry   *time.Time
	Preferred        bool `gorm:"default:false"`
}

func (SupplierRow) TableName() string { return "supplier_rows" }

func (r SupplierRow) toModel() model.Supplier {
	return model.Supplier{
		Name:             r.Name,
		CategorySupplied: r.CategorySupplied,
		ContactPerson:    r.ContactPerson,
		Phone:            r.Phone,
		Email:            r.Email,
		ContractExpiry:   r.ContractExpiry,
		Preferred:        r.Preferred,
	}
}

type EmployeeRow struct {
	model.BaseModel
	EmployeeNo string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name       string `gorm:"type:varchar(255);not null"`
	Department string `gorm:"type:varchar(100)"`
	Contact    string `gorm:"type:varchar(255)"`
}

func (EmployeeRow) TableName() string { return "employee_rows" }

func (r EmployeeRow) toModel() model.Employee {
	return model.Employee{
		EmployeeNo: r.EmployeeNo,
		Name:       r.Name,
		Department: r.Department,
		Contact:    r.Contact,
	}
}

type IncidentRow struct {
	model.BaseModel
	OccurredAt       time.Time
	PersonName       string `gorm:"type:varchar(255);not null"`
	EmployeeNo       string `gorm:"type:varchar(50)"`
	Department       string `gorm:"type:varchar(100)"`
	IncidentType     string `gorm:"type:varchar(100);not null"`
	Severity         string `gorm:"type:varchar(20);not null"`
	Location         string `gorm:"type:varchar(255)"`
	Description      string `gorm:"type:text"`
	Treatment        string `gorm:"type:text"`
	FollowUpRequired bool
	FollowUpDate     *time.Time
	Status           string `gorm:"type:varchar(30);default:'OPEN'"`
}

func (IncidentRow) TableName() string { return "incident_rows" }

func (r IncidentRow) toModel() model.MedicalIncident {
	in := model.MedicalIncident{
		ID:               r.ID,
		OccurredAt:       r.OccurredAt,
		PersonName:       r.PersonName,
		EmployeeNo:       r.EmployeeNo,
		Department:       r.Department,
		IncidentType:     r.IncidentType,
		Severity:         model.IncidentSeverity(r.Severity),
		Location:         r.Location,
		Description:      r.Description,
		Treatment:        r.Treatment,
		FollowUpRequired: r.FollowUpRequired,
		FollowUpDate:     r.FollowUpDate,
		Status:           model.IncidentStatus(r.Status),
	}
	in.CreatedAt = r.CreatedAt
	in.UpdatedAt = r.UpdatedAt
	in.CreatedBy = r.CreatedBy
	in.UpdatedBy = r.UpdatedBy
	return in
}

func incidentRowFrom(in model.MedicalIncident) IncidentRow {
	r := IncidentRow{
		OccurredAt:       in.OccurredAt,
		PersonName:       in.PersonName,
		EmployeeNo:       in.EmployeeNo,
		Department:       in.Department,
		IncidentType:     in.IncidentType,
		Severity:         string(in.Severity),
		Location:         in.Location,
		Description:      in.Description,
		Treatment:        in.Treatment,
		FollowUpRequired: in.FollowUpRequired,
		FollowUpDate:     in.FollowUpDate,
		Status:           string(in.Status),
	}
	r.ID = in.ID
	r.CreatedBy = in.CreatedBy
	r.UpdatedBy = in.UpdatedBy
	return r
}

type MovementRow struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Seq            uint64    `gorm:"index"`
	ItemCode       string    `gorm:"type:varchar(50);not null;index"`
	Type           string    `gorm:"type:varchar(10);not null"`
	Delta          int       `gorm:"not null"`
	ResultingLevel int       `gorm:"not null"`
	Reason         string    `gorm:"type:varchar(255)"`
	Reference      string    `gorm:"type:varchar(100)"`
	Actor          string    `gorm:"type:varchar(255)"`
	At             time.Time
}

func (MovementRow) TableName() string { return "movement_rows" }

func (r MovementRow) toModel() model.StockMovement {
	return model.StockMovement{
		ID:             r.ID,
		Seq:            r.Seq,
		ItemCode:       r.ItemCode,
		Type:           model.MovementType(r.Type),
		Delta:          r.Delta,
		ResultingLevel: r.ResultingLevel,
		Reason:         r.Reason,
		Reference:      r.Reference,
		Actor:          r.Actor,
		At:             r.At,
	}
}

func movementRowFrom(m model.StockMovement) MovementRow {
	return MovementRow{
		ID:             m.ID,
		Seq:            m.Seq,
		ItemCode:       m.ItemCode,
		Type:           string(m.Type),
		Delta:          m.Delta,
		ResultingLevel: m.ResultingLevel,
		Reason:         m.Reason,
		Reference:      m.Reference,
		Actor:          m.Actor,
		At:             m.At,
	}
}

type SignOutRow struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	Seq              uint64    `gorm:"index"`
	EquipmentCode    string    `gorm:"type:varchar(50);not null;index"`
	HolderEmployeeNo string    `gorm:"type:varchar(50);not null;index"`
	HolderName       string    `gorm:"type:varchar(255)"`
	HolderDepartment string    `gorm:"type:varchar(100)"`
	HolderContact    string    `gorm:"type:varchar(255)"`
	WorkOrderRef     string    `gorm:"type:varchar(100)"`
	Purpose          string    `gorm:"type:varchar(255)"`
	CheckedOutAt     time.Time
	ExpectedReturn   time.Time
	CheckedInAt      *time.Time
	CheckInActor     string `gorm:"type:varchar(255)"`
	CloseReason      string `gorm:"type:varchar(50)"`
	CreatedBy        string `gorm:"type:varchar(255)"`
}

func (SignOutRow) TableName() string { return "signout_rows" }

func (r SignOutRow) toModel() model.SignOutTransaction {
	return model.SignOutTransaction{
		ID:            r.ID,
		Seq:           r.Seq,
		EquipmentCode: r.EquipmentCode,
		Holder: model.Holder{
			EmployeeNo: r.HolderEmployeeNo,
			Name:       r.HolderName,
			Department: r.HolderDepartment,
			Contact:    r.HolderContact,
		},
		WorkOrderRef:   r.WorkOrderRef,
		Purpose:        r.Purpose,
		CheckedOutAt:   r.CheckedOutAt,
		ExpectedReturn: r.ExpectedReturn,
		CheckedInAt:    r.CheckedInAt,
		CheckInActor:   r.CheckInActor,
		CloseReason:    r.CloseReason,
		CreatedBy:      r.CreatedBy,
	}
}

func signOutRowFrom(t model.SignOutTransaction) SignOutRow {
	return SignOutRow{
		ID:               t.ID,
		Seq:              t.Seq,
		EquipmentCode:    t.EquipmentCode,
		HolderEmployeeNo: t.Holder.EmployeeNo,
		HolderName:       t.Holder.Name,
		HolderDepartment: t.Holder.Department,
		HolderContact:    t.Holder.Contact,
		WorkOrderRef:     t.WorkOrderRef,
		Purpose:          t.Purpose,
		CheckedOutAt:     t.CheckedOutAt,
		ExpectedReturn:   t.ExpectedReturn,
		CheckedInAt:      t.CheckedInAt,
		CheckInActor:     t.CheckInActor,
		CloseReason:      t.CloseReason,
		CreatedBy:        t.CreatedBy,
	}
}
