package source

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Seed populates an empty database with the default workbook contents so a
// fresh deployment has something to serve. Existing data is never touched.
func (p *Postgres) Seed() error {
	var count int64
	if err := p.db.Model(&CategoryRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []string{
		"Electric", "Plumbing", "Carpentry", "Painting", "Aircon",
		"Ceiling Tiles", "Decoration", "Parking & Signage", "Safety", "Access Control",
	}
	for i, name := range categories {
		row := CategoryRow{Name: name, SortOrder: i}
		if err := p.db.Create(&row).Error; err != nil {
			return err
		}
	}

	items := []ItemRow{
		{Code: "E001", Description: "LED tube 1200mm", Category: "Electric", Location: "Store A1", QuantityOnHand: 45, Unit: "pieces", MinStock: 20, MaxStock: 100, UnitCost: 85.50, Supplier: "Voltex Electrical", Active: true},
		{Code: "E002", Description: "Wall socket double 16A", Category: "Electric", Location: "Store A1", QuantityOnHand: 12, Unit: "pieces", MinStock: 15, MaxStock: 60, UnitCost: 42.00, Supplier: "Voltex Electrical", Active: true},
		{Code: "P001", Description: "Copper pipe 22mm x 3m", Category: "Plumbing", Location: "Store B2", QuantityOnHand: 30, Unit: "lengths", MinStock: 10, MaxStock: 50, UnitCost: 210.00, Supplier: "Plumblink", Active: true},
		{Code: "S001", Description: "Hard hat white", Category: "Safety", Location: "Store C1", QuantityOnHand: 25, Unit: "pieces", MinStock: 10, MaxStock: 40, UnitCost: 95.00, Supplier: "SafetyFirst Supplies", Active: true},
	}
	for i, row := range items {
		if err := p.db.Create(&row).Error; err != nil {
			return err
		}
		// Opening balance movement so the audit log replays to the seeded quantity.
		mv := MovementRow{
			ID:             uuid.New(),
			Seq:            uint64(i + 1),
			ItemCode:       row.Code,
			Type:           "IN",
			Delta:          row.QuantityOnHand,
			ResultingLevel: row.QuantityOnHand,
			Reason:         "initial stock load",
			Actor:          "system",
			At:             time.Now(),
		}
		if err := p.db.Create(&mv).Error; err != nil {
			return err
		}
	}

	equipment := []EquipmentRow{
		{Code: "DRILL01", Name: "Cordless drill 18V", Category: "Carpentry", Location: "Tool Cage", Status: "AVAILABLE"},
		{Code: "LADDER01", Name: "Extension ladder 6m", Category: "Safety", Location: "Tool Cage", Status: "AVAILABLE"},
		{Code: "GRINDER01", Name: "Angle grinder 230mm", Category: "Carpentry", Location: "Tool Cage", Status: "AVAILABLE"},
	}
	for _, row := range equipment {
		if err := p.db.Create(&row).Error; err != nil {
			return err
		}
	}

	employees := []EmployeeRow{
		{EmployeeNo: "FAC001", Name: "Sifiso Shezi", Department: "Facilities", Contact: "sifiso.shezi@example.com"},
		{EmployeeNo: "FAC002", Name: "John Smith", Department: "Facilities", Contact: "john.smith@example.com"},
		{EmployeeNo: "MNT001", Name: "Maintenance Team", Department: "Maintenance", Contact: "maintenance@example.com"},
		{EmployeeNo: "SEC001", Name: "Security Team", Department: "Security", Contact: "security@example.com"},
	}
	for _, row := range employees {
		if err := p.db.Create(&row).Error; err != nil {
			return err
		}
	}

	expiry := time.Now().AddDate(1, 0, 0)
	suppliers := []SupplierRow{
		{Name: "Voltex Electrical", CategorySupplied: "Electric", ContactPerson: "Sales Desk", Phone: "031 555 0101", Email: "orders@voltex.example.com", ContractExpiry: &expiry, Preferred: true},
		{Name: "Plumblink", CategorySupplied: "Plumbing", ContactPerson: "Trade Counter", Phone: "031 555 0202", Email: "trade@plumblink.example.com", ContractExpiry: &expiry, Preferred: true},
		{Name: "SafetyFirst Supplies", CategorySupplied: "Safety", ContactPerson: "Account Manager", Phone: "031 555 0303", Email: "sales@safetyfirst.example.com", Preferred: false},
	}
	for _, row := range suppliers {
		if err := p.db.Create(&row).Error; err != nil {
			return err
		}
	}

	log.Println("Seeded default categories, items, equipment, employees and suppliers")
	return nil
}
