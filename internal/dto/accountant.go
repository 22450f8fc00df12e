package dto

import (
	"time"

	"github.com/apex-am/apexam_backend/internal/core/domain"
)

// CreateAccountantRequest creates an accountant profile for a user.
type CreateAccountantRequest struct {
	UserID            string  `json:"userID" binding:"required"`
	SupervisorID      *string `json:"supervisorID"`
	IsSuperAccountant bool    `json:"isSuperAccountant"`
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
}

// UpdateAccountantRequest updates an accountant profile. Only provided
// fields are applied.
type UpdateAccountantRequest struct {
	IsSuperAccountant *bool   `json:"isSuperAccountant"`
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
}

// AssignSupervisorRequest sets the supervising super accountant for an
// accountant. SupervisorID is the supervisor's user ID.
type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisorID" binding:"required"`
}

// AccountantResponse is the external representation of an accountant.
type AccountantResponse struct {
	AccountantID      string        `json:"accountantID"`
	UserID            string        `json:"userID"`
	SuperAccountantID *string       `json:"superAccountantID,omitempty"`
	IsSuperAccountant bool          `json:"isSuperAccountant"`
	FirstName         *string       `json:"firstName,omitempty"`
	LastName          *string       `json:"lastName,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         *time.Time    `json:"updatedAt,omitempty"`
	User              *UserResponse `json:"user,omitempty"`
}

// ListAccountantsResponse wraps a page of accountants.
type ListAccountantsResponse struct {
	Accountants []AccountantResponse `json:"accountants"`
}

// ToAccountantResponse converts a domain.Accountant to its response DTO.
func ToAccountantResponse(a *domain.Accountant) AccountantResponse {
	resp := AccountantResponse{
		AccountantID:      a.AccountantID,
		UserID:            a.UserID,
		SuperAccountantID: a.SuperAccountantID,
		IsSuperAccountant: a.IsSuperAccountant,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.User != nil {
		user := ToUserResponse(a.User)
		resp.User = &user
	}
	return resp
}

// ToListAccountantsResponse converts a slice of domain accountants to the
// list DTO.
func ToListAccountantsResponse(accountants []domain.Accountant) ListAccountantsResponse {
	responses := make([]AccountantResponse, len(accountants))
	for i := range accountants {
		responses[i] = ToAccountantResponse(&accountants[i])
	}
	return ListAccountantsResponse{Accountants: responses}
}
