package auth

// Role del usuario en el servicio de cuentas.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleVet    Role = "vet"
	RoleAdmin  Role = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// CanReadAll indica si el usuario puede consultar registros de otros productores.
func (c Claims) CanReadAll() bool {
	return c.Role == RoleVet || c.Role == RoleAdmin
}
