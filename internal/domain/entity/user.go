package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// User representa un usuario del sistema (cajero, gerente o administrador).
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, cashier
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAllowed verifica si un rol pertenece al conjunto permitido.
// Punto único de autorización: los casos de uso lo invocan una sola vez
// antes de ejecutar la mutación (ver aprobación de traslados).
func RoleAllowed(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
