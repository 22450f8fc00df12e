package mapping

import (
	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/apex-am/apexam_backend/internal/models"
)

// ToModelBusiness converts a domain Business to a model Business.
// Relations are persisted separately and not carried here.
func ToModelBusiness(d domain.Business) models.Business {
	return models.Business{
		BusinessID:   d.BusinessID,
		Name:         d.Name,
		Description:  d.Description,
		OwnerID:      d.OwnerID,
		AccountantID: d.AccountantID,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainBusiness converts a model Business to a domain Business.
func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		Description:  m.Description,
		OwnerID:      m.OwnerID,
		AccountantID: m.AccountantID,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainFinancialMetrics converts a model financial metrics row to its
// domain form.
func ToDomainFinancialMetrics(m models.BusinessFinancialMetrics) domain.BusinessFinancialMetrics {
	return domain.BusinessFinancialMetrics{
		MetricsID:                   m.MetricsID,
		BusinessID:                  m.BusinessID,
		Revenue:                     m.Revenue,
		GrossProfit:                 m.GrossProfit,
		NetProfit:                   m.NetProfit,
		TotalCosts:                  m.TotalCosts,
		PercentageChangeRevenue:     m.PercentageChangeRevenue,
		PercentageChangeGrossProfit: m.PercentageChangeGrossProfit,
		PercentageChangeNetProfit:   m.PercentageChangeNetProfit,
		PercentageChangeTotalCosts:  m.PercentageChangeTotalCosts,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelFinancialMetrics converts domain financial metrics to the model form.
func ToModelFinancialMetrics(d domain.BusinessFinancialMetrics) models.BusinessFinancialMetrics {
	return models.BusinessFinancialMetrics{
		MetricsID:                   d.MetricsID,
		BusinessID:                  d.BusinessID,
		Revenue:                     d.Revenue,
		GrossProfit:                 d.GrossProfit,
		NetProfit:                   d.NetProfit,
		TotalCosts:                  d.TotalCosts,
		PercentageChangeRevenue:     d.PercentageChangeRevenue,
		PercentageChangeGrossProfit: d.PercentageChangeGrossProfit,
		PercentageChangeNetProfit:   d.PercentageChangeNetProfit,
		PercentageChangeTotalCosts:  d.PercentageChangeTotalCosts,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}
}

// ToDomainBusinessMetrics converts a model operational metrics row to its
// domain form.
func ToDomainBusinessMetrics(m models.BusinessMetrics) domain.BusinessMetrics {
	return domain.BusinessMetrics{
		MetricsID:           m.MetricsID,
		BusinessID:          m.BusinessID,
		DocumentsDue:        m.DocumentsDue,
		OutstandingInvoices: m.OutstandingInvoices,
		PendingApprovals:    m.PendingApprovals,
		AccountingYearEnd:   m.AccountingYearEnd,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelBusinessMetrics converts domain operational metrics to the model form.
func ToModelBusinessMetrics(d domain.BusinessMetrics) models.BusinessMetrics {
	return models.BusinessMetrics{
		MetricsID:           d.MetricsID,
		BusinessID:          d.BusinessID,
		DocumentsDue:        d.DocumentsDue,
		OutstandingInvoices: d.OutstandingInvoices,
		PendingApprovals:    d.PendingApprovals,
		AccountingYearEnd:   d.AccountingYearEnd,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
