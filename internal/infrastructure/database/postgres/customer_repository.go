package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, first_name, last_name, age, phone_number, monthly_salary,
		approved_limit, credit_score, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	start := time.Now()
	sql := `
        INSERT INTO customers (first_name, last_name, age, phone_number, monthly_salary,
                               approved_limit, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql,
		cust.FirstName, cust.LastName, cust.Age, cust.PhoneNumber,
		cust.MonthlySalary, cust.ApprovedLimit,
	).Scan(&cust.CustomerID, &cust.CreateDate, &cust.UpdatedAt)
	if err != nil {
		monitoring.RecordDBQuery("customer_insert", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_insert", "success", time.Since(start))
	monitoring.RecordCustomerRegistered()
	r.logger.InfoContext(ctx, "Customer created in DB", "customer_id", cust.CustomerID)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	start := time.Now()
	sql := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	cust, err := r.scanCustomer(r.db.QueryRow(ctx, sql, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			monitoring.RecordDBQuery("customer_find_by_id", "not_found", time.Since(start))
			return nil, customer.ErrNotFound
		}
		monitoring.RecordDBQuery("customer_find_by_id", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query customer", "customer_id", customerID, slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_find_by_id", "success", time.Since(start))
	return cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	start := time.Now()
	sql := `SELECT ` + customerColumns + ` FROM customers ORDER BY id`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		cust, err := r.scanCustomer(rows)
		if err != nil {
			monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
			return nil, fmt.Errorf("%w: failed scanning customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}
	if err := rows.Err(); err != nil {
		monitoring.RecordDBQuery("customer_find_all", "error", time.Since(start))
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	monitoring.RecordDBQuery("customer_find_all", "success", time.Since(start))
	return customers, nil
}

func (r *CustomerRepository) UpdateCreditScore(ctx context.Context, customerID int64, score int) error {
	start := time.Now()
	sql := `UPDATE customers SET credit_score = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, sql, score, customerID)
	if err != nil {
		monitoring.RecordDBQuery("customer_update_score", "error", time.Since(start))
		r.logger.ErrorContext(ctx, "Failed to update credit score", "customer_id", customerID, slog.Any("error", err))
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		monitoring.RecordDBQuery("customer_update_score", "not_found", time.Since(start))
		return customer.ErrNotFound
	}

	monitoring.RecordDBQuery("customer_update_score", "success", time.Since(start))
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return count, nil
}

func (r *CustomerRepository) scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.CustomerID, &cust.FirstName, &cust.LastName, &cust.Age, &cust.PhoneNumber,
		&cust.MonthlySalary, &cust.ApprovedLimit, &cust.CreditScore,
		&cust.CreateDate, &cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
