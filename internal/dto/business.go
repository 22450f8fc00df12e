package dto

import (
	"time"

	"github.com/apex-am/apexam_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBusinessRequest creates a business. OwnerID defaults to the
// caller when omitted. AccountantID, when set, becomes the primary
// accountant and is also added to the assignment set.
type CreateBusinessRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	OwnerID      *string `json:"ownerID"`
	AccountantID *string `json:"accountantID"`
}

// UpdateBusinessRequest updates a business. Only provided fields are applied.
type UpdateBusinessRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	AccountantID *string `json:"accountantID"`
	IsActive     *bool   `json:"isActive"`
}

// AssignAccountantRequest adds or removes an accountant from a business's
// assignment set.
type AssignAccountantRequest struct {
	AccountantID string `json:"accountantID" binding:"required"`
}

// UpsertFinancialMetricsRequest replaces the financial metrics of a business.
type UpsertFinancialMetricsRequest struct {
	Revenue     decimal.Decimal `json:"revenue"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	TotalCosts  decimal.Decimal `json:"totalCosts"`

	PercentageChangeRevenue     decimal.Decimal `json:"percentageChangeRevenue"`
	PercentageChangeGrossProfit decimal.Decimal `json:"percentageChangeGrossProfit"`
	PercentageChangeNetProfit   decimal.Decimal `json:"percentageChangeNetProfit"`
	PercentageChangeTotalCosts  decimal.Decimal `json:"percentageChangeTotalCosts"`
}

// UpsertBusinessMetricsRequest replaces the operational metrics of a business.
type UpsertBusinessMetricsRequest struct {
	DocumentsDue        int       `json:"documentsDue" binding:"min=0"`
	OutstandingInvoices int       `json:"outstandingInvoices" binding:"min=0"`
	PendingApprovals    int       `json:"pendingApprovals" binding:"min=0"`
	AccountingYearEnd   time.Time `json:"accountingYearEnd" time_format:"2006-01-02"`
}

// FinancialMetricsResponse is the external representation of the
// financial metrics child record.
type FinancialMetricsResponse struct {
	MetricsID  string `json:"metricsID"`
	BusinessID string `json:"businessID"`

	Revenue     decimal.Decimal `json:"revenue"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	TotalCosts  decimal.Decimal `json:"totalCosts"`

	PercentageChangeRevenue     decimal.Decimal `json:"percentageChangeRevenue"`
	PercentageChangeGrossProfit decimal.Decimal `json:"percentageChangeGrossProfit"`
	PercentageChangeNetProfit   decimal.Decimal `json:"percentageChangeNetProfit"`
	PercentageChangeTotalCosts  decimal.Decimal `json:"percentageChangeTotalCosts"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// BusinessMetricsResponse is the external representation of the
// operational metrics child record.
type BusinessMetricsResponse struct {
	MetricsID  string `json:"metricsID"`
	BusinessID string `json:"businessID"`

	DocumentsDue        int       `json:"documentsDue"`
	OutstandingInvoices int       `json:"outstandingInvoices"`
	PendingApprovals    int       `json:"pendingApprovals"`
	AccountingYearEnd   time.Time `json:"accountingYearEnd"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// BusinessResponse is the external representation of a business with its
// eager-loaded relations.
type BusinessResponse struct {
	BusinessID   string     `json:"businessID"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	OwnerID      string     `json:"ownerID"`
	AccountantID *string    `json:"accountantID,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`

	Owner            *UserResponse             `json:"owner,omitempty"`
	Accountant       *AccountantResponse       `json:"accountant,omitempty"`
	Accountants      []AccountantResponse      `json:"accountants,omitempty"`
	FinancialMetrics *FinancialMetricsResponse `json:"financialMetrics,omitempty"`
	Metrics          *BusinessMetricsResponse  `json:"metrics,omitempty"`
}

// ListBusinessesResponse wraps a page of businesses.
type ListBusinessesResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

// ToFinancialMetricsResponse converts domain financial metrics to the DTO.
func ToFinancialMetricsResponse(m *domain.BusinessFinancialMetrics) FinancialMetricsResponse {
	return FinancialMetricsResponse{
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
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}
}

// ToBusinessMetricsResponse converts domain operational metrics to the DTO.
func ToBusinessMetricsResponse(m *domain.BusinessMetrics) BusinessMetricsResponse {
	return BusinessMetricsResponse{
		MetricsID:           m.MetricsID,
		BusinessID:          m.BusinessID,
		DocumentsDue:        m.DocumentsDue,
		OutstandingInvoices: m.OutstandingInvoices,
		PendingApprovals:    m.PendingApprovals,
		AccountingYearEnd:   m.AccountingYearEnd,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// ToBusinessResponse converts a domain.Business (with whatever relations
// are loaded) to its response DTO.
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	resp := BusinessResponse{
		BusinessID:   b.BusinessID,
		Name:         b.Name,
		Description:  b.Description,
		OwnerID:      b.OwnerID,
		AccountantID: b.AccountantID,
		IsActive:     b.IsActive,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Owner != nil {
		owner := ToUserResponse(b.Owner)
		resp.Owner = &owner
	}
	if b.Accountant != nil {
		accountant := ToAccountantResponse(b.Accountant)
		resp.Accountant = &accountant
	}
	if len(b.Accountants) > 0 {
		resp.Accountants = make([]AccountantResponse, len(b.Accountants))
		for i := range b.Accountants {
			resp.Accountants[i] = ToAccountantResponse(&b.Accountants[i])
		}
	}
	if b.FinancialMetrics != nil {
		fm := ToFinancialMetricsResponse(b.FinancialMetrics)
		resp.FinancialMetrics = &fm
	}
	if b.Metrics != nil {
		m := ToBusinessMetricsResponse(b.Metrics)
		resp.Metrics = &m
	}
	return resp
}

// ToListBusinessesResponse converts a slice of domain businesses to the
// list DTO.
func ToListBusinessesResponse(businesses []domain.Business) ListBusinessesResponse {
	responses := make([]BusinessResponse, len(businesses))
	for i := range businesses {
		responses[i] = ToBusinessResponse(&businesses[i])
	}
	return ListBusinessesResponse{Businesses: responses}
}
