package auth

// Role constants stored on app_users and carried in JWT claims.
const (
	RoleAdmin  = "ADMIN"
	RolePlayer = "PLAYER"
)

// AllRoles returns every valid role.
func AllRoles() []string {
	return []string{RoleAdmin, RolePlayer}
}
