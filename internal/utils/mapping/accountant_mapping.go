package mapping

import (
	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/apex-am/apexam_backend/internal/models"
)

// ToModelAccountant converts a domain Accountant to a model Accountant.
func ToModelAccountant(d domain.Accountant) models.Accountant {
	return models.Accountant{
		AccountantID:      d.AccountantID,
		UserID:            d.UserID,
		SuperAccountantID: d.SuperAccountantID,
		IsSuperAccountant: d.IsSuperAccountant,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ToDomainAccountant converts a model Accountant to a domain Accountant.
func ToDomainAccountant(m models.Accountant) domain.Accountant {
	return domain.Accountant{
		AccountantID:      m.AccountantID,
		UserID:            m.UserID,
		SuperAccountantID: m.SuperAccountantID,
		IsSuperAccountant: m.IsSuperAccountant,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainAccountantSlice converts a slice of model Accountants to domain Accountants.
func ToDomainAccountantSlice(ms []models.Accountant) []domain.Accountant {
	ds := make([]domain.Accountant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountant(m)
	}
	return ds
}
