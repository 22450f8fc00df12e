package models

import "time"

// Accountant is the database representation of an accountant row.
type Accountant struct {
	AccountantID      string     `db:"accountant_id"`
	UserID            string     `db:"user_id"`
	SuperAccountantID *string    `db:"super_accountant_id"`
	IsSuperAccountant bool       `db:"is_super_accountant"`
	FirstName         *string    `db:"first_name"`
	LastName          *string    `db:"last_name"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at"`
}
