package entity

// Roles válidos para User (conjunto cerrado que emite la API).
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleRepositor = "repositor"
)

// User perfil cacheado del usuario logueado.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin solo decide si se muestra el enlace de administración; la API es quien autoriza.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole indica si role pertenece al conjunto cerrado.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVendedor, RoleRepositor:
		return true
	}
	return false
}
