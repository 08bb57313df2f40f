package model

// Role codes as constants
const (
	RoleMasterAdmin = "MASTER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleStorekeeper = "STOREKEEPER"
)

// Role describes one role code for API consumers.
type Role struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Privileges  []string `json:"privileges"`
}

// Privilege codes gate mutating routes.
const (
	PrivInventoryCreate = "inventory:create"
	PrivInventoryUpdate = "inventory:update"
	PrivInventoryAdjust = "inventory:adjust"
	PrivSignOutCreate   = "signout:create"
	PrivSignOutForce    = "signout:force"
	PrivEquipmentUpdate = "equipment:update"
	PrivMedicalCreate   = "medical:create"
	PrivMedicalUpdate   = "medical:update"
	PrivUserCreate      = "user:create"
	PrivUserUpdate      = "user:update"
	PrivUserDelete      = "user:delete"
	PrivAdminReload     = "admin:reload"
)

// AllPrivileges lists every privilege code the API knows about.
var AllPrivileges = []string{
	PrivInventoryCreate, PrivInventoryUpdate, PrivInventoryAdjust,
	PrivSignOutCreate, PrivSignOutForce, PrivEquipmentUpdate,
	PrivMedicalCreate, PrivMedicalUpdate,
	PrivUserCreate, PrivUserUpdate, PrivUserDelete,
	PrivAdminReload,
}

// rolePrivileges is the in-code role grant table. MASTER_ADMIN gets everything;
// ADMIN everything except user management; STOREKEEPER the day-to-day counter ops.
var rolePrivileges = map[string][]string{
	RoleMasterAdmin: AllPrivileges,
	RoleAdmin: {
		PrivInventoryCreate, PrivInventoryUpdate, PrivInventoryAdjust,
		PrivSignOutCreate, PrivSignOutForce, PrivEquipmentUpdate,
		PrivMedicalCreate, PrivMedicalUpdate,
		PrivAdminReload,
	},
	RoleStorekeeper: {
		PrivInventoryAdjust,
		PrivSignOutCreate,
	},
}

// PrivilegesForRole returns the privilege codes for a role code, empty for
// unknown roles.
func PrivilegesForRole(code string) []string {
	return rolePrivileges[code]
}

// ValidRole reports whether the role code is one of the defined roles.
func ValidRole(code string) bool {
	_, ok := rolePrivileges[code]
	return ok
}

// DefaultRoles defines the roles exposed by GET /roles.
var DefaultRoles = []Role{
	{
		Code:        RoleMasterAdmin,
		Name:        "Master Administrator",
		Description: "Full system access with all privileges",
		Privileges:  rolePrivileges[RoleMasterAdmin],
	},
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Facilities administration without user management",
		Privileges:  rolePrivileges[RoleAdmin],
	},
	{
		Code:        RoleStorekeeper,
		Name:        "Storekeeper",
		Description: "Counter operations: stock adjustments and sign-outs",
		Privileges:  rolePrivileges[RoleStorekeeper],
	},
}
