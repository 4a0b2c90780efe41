package event

import (
	"context"
	"time"
)

type CustomerPayload struct {
	CustomerID    int64   `json:"customerId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Age           int     `json:"age"`
	PhoneNumber   string  `json:"phoneNumber"`
	MonthlySalary float64 `json:"monthlySalary"`
	ApprovedLimit float64 `json:"approvedLimit"`
}

type CustomerRegisteredEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Payload   CustomerPayload `json:"payload"`
}

type LoanApprovedEvent struct {
	Timestamp      time.Time `json:"timestamp"`
	LoanID         int64     `json:"loanId"`
	CustomerID     int64     `json:"customerId"`
	LoanAmount     float64   `json:"loanAmount"`
	InterestRate   float64   `json:"interestRate"`
	Tenure         int       `json:"tenure"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	EndDate        time.Time `json:"endDate"`
}

type ScoreRefreshedEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	CustomerID int64     `json:"customerId"`
	OldScore   *int      `json:"oldScore,omitempty"`
	NewScore   int       `json:"newScore"`
}

type Publisher interface {
	PublishCustomerRegistered(ctx context.Context, event CustomerRegisteredEvent) error
	PublishLoanApproved(ctx context.Context, event LoanApprovedEvent) error
	PublishScoreRefreshed(ctx context.Context, event ScoreRefreshedEvent) error
}

// NoopPublisher satisfies Publisher when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishCustomerRegistered(context.Context, CustomerRegisteredEvent) error {
	return nil
}

func (NoopPublisher) PublishLoanApproved(context.Context, LoanApprovedEvent) error {
	return nil
}

func (NoopPublisher) PublishScoreRefreshed(context.Context, ScoreRefreshedEvent) error {
	return nil
}
