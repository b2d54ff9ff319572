// internal/domain/models/roles.go
package models

// Role values stored on User.Role and carried in token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsValidRole reports whether value is a recognized role.
func IsValidRole(value string) bool {
	return value == RoleUser || value == RoleAdmin
}
