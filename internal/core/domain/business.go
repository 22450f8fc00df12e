package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business is owned by exactly one user and managed by zero or more
// accountants. AccountantID is the single "primary" accountant kept for
// backward compatibility; the full set lives in the assignment relation.
// The primary accountant, when set, is always also a member of Accountants.
type Business struct {
	BusinessID   string  `json:"businessID"` // Primary Key (UUID)
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	OwnerID      string  `json:"ownerID"`
	AccountantID *string `json:"accountantID,omitempty"`
	IsActive     bool    `json:"isActive"`
	AuditFields

	// Eager-loaded relations. Populated by business reads in a constant
	// number of queries per call.
	Owner            *User                     `json:"owner,omitempty"`
	Accountant       *Accountant               `json:"accountant,omitempty"`
	Accountants      []Accountant              `json:"accountants,omitempty"`
	FinancialMetrics *BusinessFinancialMetrics `json:"financialMetrics,omitempty"`
	Metrics          *BusinessMetrics          `json:"metrics,omitempty"`
}

// BusinessFinancialMetrics holds the headline financial figures for a
// business, one record per business.
type BusinessFinancialMetrics struct {
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

	AuditFields
}

// BusinessMetrics holds operational workload counters for a business,
// one record per business.
type BusinessMetrics struct {
	MetricsID  string `json:"metricsID"`
	BusinessID string `json:"businessID"`

	DocumentsDue        int       `json:"documentsDue"`
	OutstandingInvoices int       `json:"outstandingInvoices"`
	PendingApprovals    int       `json:"pendingApprovals"`
	AccountingYearEnd   time.Time `json:"accountingYearEnd"`

	AuditFields
}
