package loan

import (
	"fmt"
	"time"

	"credit-approval/internal/domain/credit"
	"credit-approval/internal/pkg/apperrors"
)

type Money = credit.Money

type Loan struct {
	LoanID         int64
	CustomerID     int64
	LoanAmount     Money
	Tenure         int
	InterestRate   float64
	MonthlyPayment Money
	PaidOnTime     int
	DateOfApproval time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewLoan builds a freshly approved loan. The end date is always derived
// from the approval date and tenure; callers never set it independently.
func NewLoan(customerID int64, amount Money, tenure int, interestRate float64, monthlyPayment Money, approvedAt time.Time) (*Loan, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", apperrors.ErrInvalidArgument)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrInvalidArgument)
	}
	if tenure <= 0 {
		return nil, fmt.Errorf("%w: tenure must be positive", apperrors.ErrInvalidArgument)
	}
	if approvedAt.IsZero() {
		approvedAt = time.Now().Truncate(24 * time.Hour)
	}

	return &Loan{
		CustomerID:     customerID,
		LoanAmount:     amount,
		Tenure:         tenure,
		InterestRate:   interestRate,
		MonthlyPayment: monthlyPayment,
		DateOfApproval: approvedAt,
		EndDate:        credit.MaturityDate(approvedAt, tenure),
	}, nil
}

// Record maps the stored loan into the engine's read-only view.
func (l *Loan) Record() credit.LoanRecord {
	return credit.LoanRecord{
		Amount:         l.LoanAmount,
		Tenure:         l.Tenure,
		InterestRate:   l.InterestRate,
		MonthlyPayment: l.MonthlyPayment,
		PaidOnTime:     l.PaidOnTime,
		DateOfApproval: l.DateOfApproval,
		EndDate:        l.EndDate,
	}
}

// RepaymentsLeft reports how many installments nominally remain due.
func (l *Loan) RepaymentsLeft(now time.Time) int {
	return l.Tenure - credit.ElapsedInstallments(l.Record(), now)
}
