package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSupplier = "supplier"
)

// User representa un usuario del sistema.
// Los managers pertenecen a una Store; los suppliers llevan nombre comercial y email de contacto.
type User struct {
	ID           string
	Username     string // único global
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, supplier
	StoreID      string // solo managers
	SupplierName string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSupplier:
		return true
	}
	return false
}
