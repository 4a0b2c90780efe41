package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-approval/internal/domain/loan"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

const loanColumns = `id, customer_id, loan_amount, tenure, interest_rate, monthly_payment,
		installments_paid_on_time, date_of_approval, end_date, created_at, updated_at`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) Create(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	start := time.Now()
	sql := `
        INSERT INTO loans (customer_id, loan_amount, tenure, interest_rate, monthly_payment,
                           installments_paid_on_time, date_of_approval, end_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        RETURNING ` + loanColumns

	var created loan.Loan
	err := r.db.QueryRow(ctx, sql,
		newLoan.CustomerID, newLoan.LoanAmount, newLoan.Tenure, newLoan.InterestRate,
		newLoan.MonthlyPayment, newLoan.PaidOnTime, newLoan.DateOfApproval, newLoan.EndDate,
	).Scan(
		&created.LoanID, &created.CustomerID, &created.LoanAmount, &created.Tenure,
		&created.InterestRate, &created.MonthlyPayment, &created.PaidOnTime,
		&created.DateOfApproval, &created.EndDate, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		monitoring.RecordDBQuery("loan_insert", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return nil, fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("loan_insert", "success", time.Since(start))
	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.LoanID)
	return &created, nil
}

func (r *LoanRepository) FindByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	start := time.Now()
	sql := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	var l loan.Loan
	err := r.db.QueryRow(ctx, sql, loanID).Scan(
		&l.LoanID, &l.CustomerID, &l.LoanAmount, &l.Tenure,
		&l.InterestRate, &l.MonthlyPayment, &l.PaidOnTime,
		&l.DateOfApproval, &l.EndDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			monitoring.RecordDBQuery("loan_find_by_id", "not_found", time.Since(start))
			return nil, fmt.Errorf("%w: loan %d", apperrors.ErrNotFound, loanID)
		}
		monitoring.RecordDBQuery("loan_find_by_id", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query loan", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("loan_find_by_id", "success", time.Since(start))
	return &l, nil
}

func (r *LoanRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*loan.Loan, error) {
	start := time.Now()
	sql := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, sql, customerID)
	if err != nil {
		monitoring.RecordDBQuery("loan_find_by_customer", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query customer loans", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	var loans []*loan.Loan
	for rows.Next() {
		var l loan.Loan
		err := rows.Scan(
			&l.LoanID, &l.CustomerID, &l.LoanAmount, &l.Tenure,
			&l.InterestRate, &l.MonthlyPayment, &l.PaidOnTime,
			&l.DateOfApproval, &l.EndDate, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			monitoring.RecordDBQuery("loan_find_by_customer", "error", time.Since(start))
			return nil, fmt.Errorf("%w: failed scanning loan row: %w", apperrors.ErrDatabase, err)
		}
		loans = append(loans, &l)
	}
	if err := rows.Err(); err != nil {
		monitoring.RecordDBQuery("loan_find_by_customer", "error", time.Since(start))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("loan_find_by_customer", "success", time.Since(start))
	return loans, nil
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans`).Scan(&count)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count loans", "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count, nil
}
