package domain

// UserRole is the closed set of roles a user can hold. The three tiers
// form a strict ordering: root_admin > super_accountant > accountant.
type UserRole string

const (
	RoleRootAdmin       UserRole = "root_admin"
	RoleSuperAccountant UserRole = "super_accountant"
	RoleAccountant      UserRole = "accountant"
)

// roleTier maps each role to its position in the hierarchy. Higher wins.
var roleTier = map[UserRole]int{
	RoleAccountant:      1,
	RoleSuperAccountant: 2,
	RoleRootAdmin:       3,
}

// IsValid reports whether r is one of the three known roles.
func (r UserRole) IsValid() bool {
	_, ok := roleTier[r]
	return ok
}

// AtLeast reports whether r sits at or above min in the role hierarchy.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleTier[r] >= roleTier[min]
}

// User represents an authenticated identity of the application.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
