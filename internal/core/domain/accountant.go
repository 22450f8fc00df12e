package domain

// Accountant is the role-specific profile attached 1:1 to a User holding
// an accountant-tier role.
//
// The supervision relation forms a forest of depth two: super accountants
// are roots (SuperAccountantID is nil), regular accountants are leaves.
// SuperAccountantID, when set, references the supervising Accountant
// record (not the supervisor's user).
type Accountant struct {
	AccountantID      string  `json:"accountantID"` // Primary Key (UUID)
	UserID            string  `json:"userID"`       // FK -> users, unique
	SuperAccountantID *string `json:"superAccountantID,omitempty"`
	IsSuperAccountant bool    `json:"isSuperAccountant"`
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	AuditFields

	// User is the owning identity, populated on eager-loaded reads.
	User *User `json:"user,omitempty"`
}
