// Command importer seeds an empty database from historical customer and
// loan CSV exports. It refuses to run against a database that already
// holds customers, so it is safe to leave in deployment scripts.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"credit-approval/internal/config"
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/infrastructure/database/postgres"
	"credit-approval/internal/infrastructure/logging"
)

const dateLayout = "2006-01-02"

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	ctx := context.Background()

	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	loanRepo := postgres.NewLoanRepository(dbPool, logger)

	if err := runImport(ctx, cfg.Import, customerRepo, loanRepo, logger); err != nil {
		logger.Error("Import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Import finished successfully.")
}

func runImport(ctx context.Context, cfg config.ImportConfig, customerRepo customer.CustomerRepository, loanRepo loan.Repository, logger *slog.Logger) error {
	count, err := customerRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing customers: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("database already holds %d customers, refusing to import", count)
	}

	// Source files carry their own customer IDs; the database assigns
	// fresh ones, so loans are re-linked through this mapping.
	idMap, err := importCustomers(ctx, cfg.CustomerFile, customerRepo, logger)
	if err != nil {
		return fmt.Errorf("customer import: %w", err)
	}
	logger.Info("Customers imported.", "count", len(idMap))

	imported, err := importLoans(ctx, cfg.LoanFile, loanRepo, idMap, logger)
	if err != nil {
		return fmt.Errorf("loan import: %w", err)
	}
	logger.Info("Loans imported.", "count", imported)
	return nil
}

func importCustomers(ctx context.Context, path string, repo customer.CustomerRepository, logger *slog.Logger) (map[int64]int64, error) {
	rows, err := readCSV(path, []string{
		"customer_id", "first_name", "last_name", "age", "phone_number", "monthly_salary", "approved_limit",
	})
	if err != nil {
		return nil, err
	}

	idMap := make(map[int64]int64, len(rows))
	for i, row := range rows {
		sourceID, err := strconv.ParseInt(row["customer_id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row["customer_id"], err)
		}
		age, err := strconv.Atoi(row["age"])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad age %q: %w", i+1, row["age"], err)
		}
		salary, err := strconv.ParseFloat(row["monthly_salary"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad monthly_salary %q: %w", i+1, row["monthly_salary"], err)
		}
		approvedLimit, err := strconv.ParseFloat(row["approved_limit"], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad approved_limit %q: %w", i+1, row["approved_limit"], err)
		}

		cust := customer.NewCustomer(row["first_name"], row["last_name"], age, row["phone_number"], salary)
		// Historical exports may carry a limit that predates the current
		// derivation rule; the recorded value wins.
		if approvedLimit > 0 {
			cust.ApprovedLimit = approvedLimit
		}

		if err := repo.Save(ctx, cust); err != nil {
			return nil, fmt.Errorf("row %d: save customer %d: %w", i+1, sourceID, err)
		}
		idMap[sourceID] = cust.CustomerID
	}
	return idMap, nil
}

func importLoans(ctx context.Context, path string, repo loan.Repository, idMap map[int64]int64, logger *slog.Logger) (int, error) {
	rows, err := readCSV(path, []string{
		"customer_id", "loan_id", "loan_amount", "tenure", "interest_rate",
		"monthly_payment", "emis_paid_on_time", "start_date", "end_date",
	})
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, row := range rows {
		sourceCustomerID, err := strconv.ParseInt(row["customer_id"], 10, 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad customer_id %q: %w", i+1, row["customer_id"], err)
		}
		customerID, ok := idMap[sourceCustomerID]
		if !ok {
			logger.Warn("Skipping loan for unknown customer", "source_customer_id", sourceCustomerID, "row", i+1)
			continue
		}

		amount, err := strconv.ParseFloat(row["loan_amount"], 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad loan_amount %q: %w", i+1, row["loan_amount"], err)
		}
		tenure, err := strconv.Atoi(row["tenure"])
		if err != nil {
			return imported, fmt.Errorf("row %d: bad tenure %q: %w", i+1, row["tenure"], err)
		}
		rate, err := strconv.ParseFloat(row["interest_rate"], 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad interest_rate %q: %w", i+1, row["interest_rate"], err)
		}
		monthlyPayment, err := strconv.ParseFloat(row["monthly_payment"], 64)
		if err != nil {
			return imported, fmt.Errorf("row %d: bad monthly_payment %q: %w", i+1, row["monthly_payment"], err)
		}
		paidOnTime, err := strconv.Atoi(row["emis_paid_on_time"])
		if err != nil {
			return imported, fmt.Errorf("row %d: bad emis_paid_on_time %q: %w", i+1, row["emis_paid_on_time"], err)
		}
		startDate, err := time.Parse(dateLayout, row["start_date"])
		if err != nil {
			return imported, fmt.Errorf("row %d: bad start_date %q: %w", i+1, row["start_date"], err)
		}
		endDate, err := time.Parse(dateLayout, row["end_date"])
		if err != nil {
			return imported, fmt.Errorf("row %d: bad end_date %q: %w", i+1, row["end_date"], err)
		}

		l, err := loan.NewLoan(customerID, amount, tenure, rate, monthlyPayment, startDate)
		if err != nil {
			return imported, fmt.Errorf("row %d: build loan: %w", i+1, err)
		}
		l.PaidOnTime = paidOnTime
		// Historical end dates are recorded, not derived.
		l.EndDate = endDate

		if _, err := repo.Create(ctx, l); err != nil {
			return imported, fmt.Errorf("row %d: save loan: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

// readCSV loads a headered CSV file into one map per row, keyed by the
// header names. Missing required columns fail up front.
func readCSV(path string, required []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s: missing required column %q", path, name)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(map[string]string, len(required))
		for _, name := range required {
			row[name] = record[index[name]]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
