package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business is the database representation of a business row.
type Business struct {
	BusinessID   string     `db:"business_id"`
	Name         string     `db:"name"`
	Description  *string    `db:"description"`
	OwnerID      string     `db:"owner_id"`
	AccountantID *string    `db:"accountant_id"`
	IsActive     bool       `db:"is_active"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// BusinessFinancialMetrics is the database representation of the
// financial metrics child row, one per business.
type BusinessFinancialMetrics struct {
	MetricsID  string `db:"metrics_id"`
	BusinessID string `db:"business_id"`

	Revenue     decimal.Decimal `db:"revenue"`
	GrossProfit decimal.Decimal `db:"gross_profit"`
	NetProfit   decimal.Decimal `db:"net_profit"`
	TotalCosts  decimal.Decimal `db:"total_costs"`

	PercentageChangeRevenue     decimal.Decimal `db:"percentage_change_revenue"`
	PercentageChangeGrossProfit decimal.Decimal `db:"percentage_change_gross_profit"`
	PercentageChangeNetProfit   decimal.Decimal `db:"percentage_change_net_profit"`
	PercentageChangeTotalCosts  decimal.Decimal `db:"percentage_change_total_costs"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// BusinessMetrics is the database representation of the operational
// metrics child row, one per business.
type BusinessMetrics struct {
	MetricsID  string `db:"metrics_id"`
	BusinessID string `db:"business_id"`

	DocumentsDue        int       `db:"documents_due"`
	OutstandingInvoices int       `db:"outstanding_invoices"`
	PendingApprovals    int       `db:"pending_approvals"`
	AccountingYearEnd   time.Time `db:"accounting_year_end"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}
