package loan

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, loan *Loan) (*Loan, error)

	FindByID(ctx context.Context, loanID int64) (*Loan, error)

	FindByCustomerID(ctx context.Context, customerID int64) ([]*Loan, error)

	Count(ctx context.Context) (int64, error)
}
