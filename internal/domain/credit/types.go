package credit

import "time"

// CustomerProfile is the read-only slice of a customer the engine needs.
// The caller materializes it from the stored customer record.
type CustomerProfile struct {
	MonthlySalary Money
	ApprovedLimit Money
}

// LoanRecord is a snapshot of one historical loan. The engine never sees
// the storage entity; services map their rows into this type.
type LoanRecord struct {
	Amount         Money
	Tenure         int
	InterestRate   float64
	MonthlyPayment Money
	PaidOnTime     int
	DateOfApproval time.Time
	EndDate        time.Time
}

// ActiveAt reports whether the loan still counts against the customer's
// exposure: it has not matured and has unpaid installments left.
func (l LoanRecord) ActiveAt(now time.Time) bool {
	return !l.EndDate.Before(now) && l.Tenure > l.PaidOnTime
}

// Aggregates holds the reduction over a customer's loan history that both
// the score formula and the affordability gate consume.
type Aggregates struct {
	ActivePrincipal      Money
	ActiveLoanCount      int
	ActiveMonthlyPayment Money
	TotalLoanCount       int
	LoansInLastYear      int
	PaidOnTime           int
	ElapsedInstallments  int
}

type Money = float64
