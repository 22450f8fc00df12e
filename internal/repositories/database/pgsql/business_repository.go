package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex-am/apexam_backend/internal/apperrors"
	"github.com/apex-am/apexam_backend/internal/core/domain"
	portsrepo "github.com/apex-am/apexam_backend/internal/core/ports/repositories"
	"github.com/apex-am/apexam_backend/internal/models"
	"github.com/apex-am/apexam_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBusinessRepository struct {
	BaseRepository
}

func newPgxBusinessRepository(db *pgxpool.Pool) portsrepo.BusinessRepository {
	return &PgxBusinessRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.BusinessRepository = (*PgxBusinessRepository)(nil)

// businessJoinedQuery loads a business together with its owner, primary
// accountant (and that accountant's user) and both metrics children in a
// single statement. The assigned-accountants set is filled by one
// follow-up batch query; the total stays constant per call regardless of
// result size.
const businessJoinedQuery = `
    SELECT b.business_id, b.name, b.description, b.owner_id, b.accountant_id, b.is_active, b.created_at, b.updated_at,
           o.user_id, o.username, o.email, o.role, o.is_active, o.created_at, o.updated_at,
           a.accountant_id, a.user_id, a.super_accountant_id, a.is_super_accountant, a.first_name, a.last_name, a.created_at, a.updated_at,
           au.user_id, au.username, au.email, au.role, au.is_active, au.created_at, au.updated_at,
           fm.metrics_id, fm.revenue, fm.gross_profit, fm.net_profit, fm.total_costs,
           fm.percentage_change_revenue, fm.percentage_change_gross_profit, fm.percentage_change_net_profit, fm.percentage_change_total_costs,
           fm.created_at, fm.updated_at,
           bm.metrics_id, bm.documents_due, bm.outstanding_invoices, bm.pending_approvals, bm.accounting_year_end, bm.created_at, bm.updated_at
    FROM businesses b
    JOIN users o ON o.user_id = b.owner_id
    LEFT JOIN accountants a ON a.accountant_id = b.accountant_id
    LEFT JOIN users au ON au.user_id = a.user_id
    LEFT JOIN business_financial_metrics fm ON fm.business_id = b.business_id
    LEFT JOIN business_metrics bm ON bm.business_id = b.business_id
`

func scanJoinedBusiness(row pgx.Row) (*domain.Business, error) {
	var m models.Business

	var owner struct {
		userID    string
		username  string
		email     string
		role      string
		isActive  bool
		createdAt time.Time
		updatedAt *time.Time
	}
	var acct struct {
		accountantID      *string
		userID            *string
		superAccountantID *string
		isSuperAccountant *bool
		firstName         *string
		lastName          *string
		createdAt         *time.Time
		updatedAt         *time.Time
	}
	var acctUser struct {
		userID    *string
		username  *string
		email     *string
		role      *string
		isActive  *bool
		createdAt *time.Time
		updatedAt *time.Time
	}
	var fin struct {
		metricsID                   *string
		revenue                     decimal.NullDecimal
		grossProfit                 decimal.NullDecimal
		netProfit                   decimal.NullDecimal
		totalCosts                  decimal.NullDecimal
		percentageChangeRevenue     decimal.NullDecimal
		percentageChangeGrossProfit decimal.NullDecimal
		percentageChangeNetProfit   decimal.NullDecimal
		percentageChangeTotalCosts  decimal.NullDecimal
		createdAt                   *time.Time
		updatedAt                   *time.Time
	}
	var ops struct {
		metricsID           *string
		documentsDue        *int
		outstandingInvoices *int
		pendingApprovals    *int
		accountingYearEnd   *time.Time
		createdAt           *time.Time
		updatedAt           *time.Time
	}

	err := row.Scan(
		&m.BusinessID, &m.Name, &m.Description, &m.OwnerID, &m.AccountantID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		&owner.userID, &owner.username, &owner.email, &owner.role, &owner.isActive, &owner.createdAt, &owner.updatedAt,
		&acct.accountantID, &acct.userID, &acct.superAccountantID, &acct.isSuperAccountant, &acct.firstName, &acct.lastName, &acct.createdAt, &acct.updatedAt,
		&acctUser.userID, &acctUser.username, &acctUser.email, &acctUser.role, &acctUser.isActive, &acctUser.createdAt, &acctUser.updatedAt,
		&fin.metricsID, &fin.revenue, &fin.grossProfit, &fin.netProfit, &fin.totalCosts,
		&fin.percentageChangeRevenue, &fin.percentageChangeGrossProfit, &fin.percentageChangeNetProfit, &fin.percentageChangeTotalCosts,
		&fin.createdAt, &fin.updatedAt,
		&ops.metricsID, &ops.documentsDue, &ops.outstandingInvoices, &ops.pendingApprovals, &ops.accountingYearEnd, &ops.createdAt, &ops.updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b := mapping.ToDomainBusiness(m)
	b.Owner = &domain.User{
		UserID:   owner.userID,
		Username: owner.username,
		Email:    owner.email,
		Role:     domain.UserRole(owner.role),
		IsActive: owner.isActive,
		AuditFields: domain.AuditFields{
			CreatedAt: owner.createdAt,
			UpdatedAt: owner.updatedAt,
		},
	}

	if acct.accountantID != nil {
		primary := domain.Accountant{
			AccountantID:      *acct.accountantID,
			UserID:            *acct.userID,
			SuperAccountantID: acct.superAccountantID,
			IsSuperAccountant: *acct.isSuperAccountant,
			FirstName:         acct.firstName,
			LastName:          acct.lastName,
			AuditFields: domain.AuditFields{
				CreatedAt: *acct.createdAt,
				UpdatedAt: acct.updatedAt,
			},
		}
		if acctUser.userID != nil {
			primary.User = &domain.User{
				UserID:   *acctUser.userID,
				Username: *acctUser.username,
				Email:    *acctUser.email,
				Role:     domain.UserRole(*acctUser.role),
				IsActive: *acctUser.isActive,
				AuditFields: domain.AuditFields{
					CreatedAt: *acctUser.createdAt,
					UpdatedAt: acctUser.updatedAt,
				},
			}
		}
		b.Accountant = &primary
	}

	if fin.metricsID != nil {
		b.FinancialMetrics = &domain.BusinessFinancialMetrics{
			MetricsID:                   *fin.metricsID,
			BusinessID:                  b.BusinessID,
			Revenue:                     fin.revenue.Decimal,
			GrossProfit:                 fin.grossProfit.Decimal,
			NetProfit:                   fin.netProfit.Decimal,
			TotalCosts:                  fin.totalCosts.Decimal,
			PercentageChangeRevenue:     fin.percentageChangeRevenue.Decimal,
			PercentageChangeGrossProfit: fin.percentageChangeGrossProfit.Decimal,
			PercentageChangeNetProfit:   fin.percentageChangeNetProfit.Decimal,
			PercentageChangeTotalCosts:  fin.percentageChangeTotalCosts.Decimal,
			AuditFields: domain.AuditFields{
				CreatedAt: *fin.createdAt,
				UpdatedAt: fin.updatedAt,
			},
		}
	}

	if ops.metricsID != nil {
		b.Metrics = &domain.BusinessMetrics{
			MetricsID:           *ops.metricsID,
			BusinessID:          b.BusinessID,
			DocumentsDue:        *ops.documentsDue,
			OutstandingInvoices: *ops.outstandingInvoices,
			PendingApprovals:    *ops.pendingApprovals,
			AccountingYearEnd:   *ops.accountingYearEnd,
			AuditFields: domain.AuditFields{
				CreatedAt: *ops.createdAt,
				UpdatedAt: ops.updatedAt,
			},
		}
	}

	return &b, nil
}

// attachAssignments fills the assigned-accountants set of every business
// in one batch query.
func (r *PgxBusinessRepository) attachAssignments(ctx context.Context, businesses []domain.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	ids := make([]string, len(businesses))
	index := make(map[string]*domain.Business, len(businesses))
	for i := range businesses {
		ids[i] = businesses[i].BusinessID
		index[businesses[i].BusinessID] = &businesses[i]
	}

	query := `
        SELECT ba.business_id,
               a.accountant_id, a.user_id, a.super_accountant_id, a.is_super_accountant,
               a.first_name, a.last_name, a.created_at, a.updated_at,
               u.user_id, u.username, u.email, u.role, u.is_active, u.created_at, u.updated_at
        FROM business_accountants ba
        JOIN accountants a ON a.accountant_id = ba.accountant_id
        JOIN users u ON u.user_id = a.user_id
        WHERE ba.business_id = ANY($1)
        ORDER BY ba.created_at, a.accountant_id;
    `
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query business assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var businessID string
		var m models.Accountant
		var user models.User
		err := rows.Scan(
			&businessID,
			&m.AccountantID, &m.UserID, &m.SuperAccountantID, &m.IsSuperAccountant,
			&m.FirstName, &m.LastName, &m.CreatedAt, &m.UpdatedAt,
			&user.UserID, &user.Username, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan assignment row: %w", err)
		}

		a := mapping.ToDomainAccountant(m)
		u := mapping.ToDomainUser(user)
		a.User = &u

		if b, ok := index[businessID]; ok {
			b.Accountants = append(b.Accountants, a)
		}
	}
	return rows.Err()
}

func (r *PgxBusinessRepository) queryBusinesses(ctx context.Context, where string, args ...any) ([]domain.Business, error) {
	rows, err := r.Pool.Query(ctx, businessJoinedQuery+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	businesses := []domain.Business{}
	for rows.Next() {
		b, err := scanJoinedBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business row: %w", err)
		}
		businesses = append(businesses, *b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating business rows: %w", rows.Err())
	}

	if err := r.attachAssignments(ctx, businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	query := `
        INSERT INTO businesses (business_id, name, description, owner_id, accountant_id, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.BusinessID,
		m.Name,
		m.Description,
		m.OwnerID,
		m.AccountantID,
		m.IsActive,
		m.CreatedAt,
	)
	if err != nil {
		if err = translateError(err); errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to save business: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	row := r.Pool.QueryRow(ctx, businessJoinedQuery+` WHERE b.business_id = $1;`, businessID)
	b, err := scanJoinedBusiness(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business by ID %s: %w", businessID, err)
	}

	businesses := []domain.Business{*b}
	if err := r.attachAssignments(ctx, businesses); err != nil {
		return nil, err
	}
	return &businesses[0], nil
}

func (r *PgxBusinessRepository) FindBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	return r.queryBusinesses(ctx, ` ORDER BY b.created_at, b.business_id LIMIT $1 OFFSET $2;`, limit, offset)
}

func (r *PgxBusinessRepository) FindBusinessesByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Business, error) {
	return r.queryBusinesses(ctx,
		` WHERE b.owner_id = $1 ORDER BY b.created_at, b.business_id LIMIT $2 OFFSET $3;`,
		ownerID, limit, offset)
}

// FindBusinessesByAccountant matches the primary accountant column OR
// assignment-set membership in a single statement with native
// offset/limit, so pages stay stable under concurrent writes.
func (r *PgxBusinessRepository) FindBusinessesByAccountant(ctx context.Context, accountantID string, limit, offset int) ([]domain.Business, error) {
	return r.queryBusinesses(ctx,
		` WHERE b.accountant_id = $1
		     OR EXISTS (SELECT 1 FROM business_accountants ba
		                WHERE ba.business_id = b.business_id AND ba.accountant_id = $1)
		  ORDER BY b.created_at, b.business_id LIMIT $2 OFFSET $3;`,
		accountantID, limit, offset)
}

// FindBusinessesBySupervision resolves a super accountant's reachable
// businesses in a single statement: their own, those owned by a
// supervised accountant's user, and those whose primary accountant or
// assignment-set member is the super or someone they supervise.
func (r *PgxBusinessRepository) FindBusinessesBySupervision(ctx context.Context, superAccountantID, superUserID string, limit, offset int) ([]domain.Business, error) {
	return r.queryBusinesses(ctx,
		` WHERE b.owner_id = $2
		     OR EXISTS (SELECT 1 FROM accountants oa
		                WHERE oa.user_id = b.owner_id AND oa.super_accountant_id = $1)
		     OR EXISTS (SELECT 1 FROM accountants pa
		                WHERE pa.accountant_id = b.accountant_id
		                  AND (pa.accountant_id = $1 OR pa.super_accountant_id = $1))
		     OR EXISTS (SELECT 1 FROM business_accountants ba
		                JOIN accountants sa ON sa.accountant_id = ba.accountant_id
		                WHERE ba.business_id = b.business_id
		                  AND (sa.accountant_id = $1 OR sa.super_accountant_id = $1))
		  ORDER BY b.created_at, b.business_id LIMIT $3 OFFSET $4;`,
		superAccountantID, superUserID, limit, offset)
}

func (r *PgxBusinessRepository) UpdateBusiness(ctx context.Context, business domain.Business) error {
	m := mapping.ToModelBusiness(business)
	query := `
        UPDATE businesses
        SET name = $1, description = $2, accountant_id = $3, is_active = $4, updated_at = now()
        WHERE business_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Description,
		m.AccountantID,
		m.IsActive,
		m.BusinessID,
	)
	if err != nil {
		return fmt.Errorf("failed to update business: %w", translateError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBusiness removes the business, its metrics children and all
// assignment rows in one transaction. The cascade is explicit code, not
// implicit store behavior.
func (r *PgxBusinessRepository) DeleteBusiness(ctx context.Context, businessID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin business delete: %w", err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM business_financial_metrics WHERE business_id = $1;`, businessID); err != nil {
		return fmt.Errorf("failed to delete financial metrics: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM business_metrics WHERE business_id = $1;`, businessID); err != nil {
		return fmt.Errorf("failed to delete business metrics: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM business_accountants WHERE business_id = $1;`, businessID); err != nil {
		return fmt.Errorf("failed to delete business assignments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM businesses WHERE business_id = $1;`, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", translateDeleteError(err))
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PgxBusinessRepository) AddAccountantToBusiness(ctx context.Context, businessID, accountantID string) error {
	query := `
        INSERT INTO business_accountants (business_id, accountant_id, created_at)
        VALUES ($1, $2, now())
        ON CONFLICT (business_id, accountant_id) DO NOTHING;
    `
	_, err := r.Pool.Exec(ctx, query, businessID, accountantID)
	if err != nil {
		if err = translateError(err); errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to assign accountant to business: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) RemoveAccountantFromBusiness(ctx context.Context, businessID, accountantID string) error {
	// Deleting an absent row is a no-op, which gives the idempotence the
	// contract requires.
	_, err := r.Pool.Exec(ctx,
		`DELETE FROM business_accountants WHERE business_id = $1 AND accountant_id = $2;`,
		businessID, accountantID)
	if err != nil {
		return fmt.Errorf("failed to remove accountant from business: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) IsAccountantAssigned(ctx context.Context, businessID, accountantID string) (bool, error) {
	var assigned bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM business_accountants WHERE business_id = $1 AND accountant_id = $2);`,
		businessID, accountantID).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("failed to check accountant assignment: %w", err)
	}
	return assigned, nil
}

func (r *PgxBusinessRepository) UpsertFinancialMetrics(ctx context.Context, d domain.BusinessFinancialMetrics) error {
	m := mapping.ToModelFinancialMetrics(d)
	query := `
        INSERT INTO business_financial_metrics
            (metrics_id, business_id, revenue, gross_profit, net_profit, total_costs,
             percentage_change_revenue, percentage_change_gross_profit, percentage_change_net_profit, percentage_change_total_costs,
             created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (business_id) DO UPDATE SET
            revenue = EXCLUDED.revenue,
            gross_profit = EXCLUDED.gross_profit,
            net_profit = EXCLUDED.net_profit,
            total_costs = EXCLUDED.total_costs,
            percentage_change_revenue = EXCLUDED.percentage_change_revenue,
            percentage_change_gross_profit = EXCLUDED.percentage_change_gross_profit,
            percentage_change_net_profit = EXCLUDED.percentage_change_net_profit,
            percentage_change_total_costs = EXCLUDED.percentage_change_total_costs,
            updated_at = now();
    `
	_, err := r.Pool.Exec(ctx, query,
		m.MetricsID, m.BusinessID, m.Revenue, m.GrossProfit, m.NetProfit, m.TotalCosts,
		m.PercentageChangeRevenue, m.PercentageChangeGrossProfit, m.PercentageChangeNetProfit, m.PercentageChangeTotalCosts,
		m.CreatedAt,
	)
	if err != nil {
		if err = translateError(err); errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to upsert financial metrics: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindFinancialMetrics(ctx context.Context, businessID string) (*domain.BusinessFinancialMetrics, error) {
	query := `
        SELECT metrics_id, business_id, revenue, gross_profit, net_profit, total_costs,
               percentage_change_revenue, percentage_change_gross_profit, percentage_change_net_profit, percentage_change_total_costs,
               created_at, updated_at
        FROM business_financial_metrics
        WHERE business_id = $1;
    `
	var m models.BusinessFinancialMetrics
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&m.MetricsID, &m.BusinessID, &m.Revenue, &m.GrossProfit, &m.NetProfit, &m.TotalCosts,
		&m.PercentageChangeRevenue, &m.PercentageChangeGrossProfit, &m.PercentageChangeNetProfit, &m.PercentageChangeTotalCosts,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find financial metrics: %w", err)
	}
	d := mapping.ToDomainFinancialMetrics(m)
	return &d, nil
}

func (r *PgxBusinessRepository) DeleteFinancialMetrics(ctx context.Context, businessID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM business_financial_metrics WHERE business_id = $1;`, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete financial metrics: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBusinessRepository) UpsertBusinessMetrics(ctx context.Context, d domain.BusinessMetrics) error {
	m := mapping.ToModelBusinessMetrics(d)
	query := `
        INSERT INTO business_metrics
            (metrics_id, business_id, documents_due, outstanding_invoices, pending_approvals, accounting_year_end, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (business_id) DO UPDATE SET
            documents_due = EXCLUDED.documents_due,
            outstanding_invoices = EXCLUDED.outstanding_invoices,
            pending_approvals = EXCLUDED.pending_approvals,
            accounting_year_end = EXCLUDED.accounting_year_end,
            updated_at = now();
    `
	_, err := r.Pool.Exec(ctx, query,
		m.MetricsID, m.BusinessID, m.DocumentsDue, m.OutstandingInvoices, m.PendingApprovals, m.AccountingYearEnd, m.CreatedAt,
	)
	if err != nil {
		if err = translateError(err); errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to upsert business metrics: %w", err)
	}
	return nil
}

func (r *PgxBusinessRepository) FindBusinessMetrics(ctx context.Context, businessID string) (*domain.BusinessMetrics, error) {
	query := `
        SELECT metrics_id, business_id, documents_due, outstanding_invoices, pending_approvals, accounting_year_end, created_at, updated_at
        FROM business_metrics
        WHERE business_id = $1;
    `
	var m models.BusinessMetrics
	err := r.Pool.QueryRow(ctx, query, businessID).Scan(
		&m.MetricsID, &m.BusinessID, &m.DocumentsDue, &m.OutstandingInvoices, &m.PendingApprovals, &m.AccountingYearEnd, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find business metrics: %w", err)
	}
	d := mapping.ToDomainBusinessMetrics(m)
	return &d, nil
}

func (r *PgxBusinessRepository) DeleteBusinessMetrics(ctx context.Context, businessID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM business_metrics WHERE business_id = $1;`, businessID)
	if err != nil {
		return fmt.Errorf("failed to delete business metrics: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
