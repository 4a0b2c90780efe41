package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-approval/internal/domain/credit"
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/event"
	"credit-approval/internal/infrastructure/monitoring"
	"credit-approval/internal/pkg/apperrors"
)

// EligibilityResult is the read-only answer to a loan request. On a
// corrected quote CorrectedRate and Installment reflect the raised rate;
// otherwise CorrectedRate equals RequestedRate.
type EligibilityResult struct {
	CustomerID    int64
	Approved      bool
	RateCorrected bool
	RequestedRate float64
	CorrectedRate float64
	Tenure        int
	Installment   Money
	Message       string
}

// CreateLoanResult carries a nil LoanID when no loan row was created:
// either the request was rejected, or it was approved only at a corrected
// rate, which is surfaced as a quote rather than persisted.
type CreateLoanResult struct {
	LoanID      *int64
	CustomerID  int64
	Approved    bool
	Message     string
	Installment Money
}

type LoanSummary struct {
	Loan           *Loan
	RepaymentsLeft int
}

type LoanService interface {
	CheckEligibility(ctx context.Context, customerID int64, amount Money, interestRate float64, tenure int) (*EligibilityResult, error)

	CreateLoan(ctx context.Context, customerID int64, amount Money, interestRate float64, tenure int) (*CreateLoanResult, error)

	GetLoan(ctx context.Context, loanID int64) (*Loan, error)

	ListCustomerLoans(ctx context.Context, customerID int64) ([]LoanSummary, error)

	ScoreCustomer(ctx context.Context, customerID int64) (int, error)
}

var _ LoanService = (*loanServiceImpl)(nil)

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	pub             event.Publisher
	logger          *slog.Logger
	now             func() time.Time
}

func NewLoanService(r Repository, cs customer.CustomerService, pub event.Publisher, logger *slog.Logger) LoanService {
	if r == nil || cs == nil {
		panic("loan service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewLoanService, using default stderr handler")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		pub:             pub,
		logger:          logger.With(slog.String("component", "loanService")),
		now:             time.Now,
	}
}

func (s *loanServiceImpl) CheckEligibility(ctx context.Context, customerID int64, amount Money, interestRate float64, tenure int) (*EligibilityResult, error) {
	s.logger.InfoContext(ctx, "Checking loan eligibility", slog.Int64("customerID", customerID))

	decision, _, err := s.evaluate(ctx, customerID, amount, interestRate, tenure)
	if err != nil {
		return nil, err
	}

	return &EligibilityResult{
		CustomerID:    customerID,
		Approved:      decision.Approved,
		RateCorrected: decision.RateCorrected,
		RequestedRate: interestRate,
		CorrectedRate: decision.InterestRate,
		Tenure:        tenure,
		Installment:   decision.Installment,
		Message:       string(decision.Outcome),
	}, nil
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, customerID int64, amount Money, interestRate float64, tenure int) (*CreateLoanResult, error) {
	s.logger.InfoContext(ctx, "Processing loan creation request", slog.Int64("customerID", customerID))

	decision, _, err := s.evaluate(ctx, customerID, amount, interestRate, tenure)
	if err != nil {
		return nil, err
	}

	result := &CreateLoanResult{
		CustomerID:  customerID,
		Approved:    decision.Approved,
		Message:     string(decision.Outcome),
		Installment: decision.Installment,
	}

	// A corrected quote goes back to the requester for explicit
	// acceptance; only an approval at the requested rate is persisted.
	if !decision.Approved || decision.RateCorrected {
		s.logger.InfoContext(ctx, "Loan not created",
			slog.Int64("customerID", customerID),
			slog.Bool("approved", decision.Approved),
			slog.Bool("rateCorrected", decision.RateCorrected))
		return result, nil
	}

	approvedAt := truncateToDay(s.now())
	newLoan, err := NewLoan(customerID, amount, tenure, decision.InterestRate, decision.Installment, approvedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to build loan record: %w", err)
	}

	created, err := s.repo.Create(ctx, newLoan)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save loan", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to save loan: %v", apperrors.ErrInternalServer, err)
	}
	monitoring.RecordLoanCreated()

	s.publishApprovedEvent(ctx, created)
	s.logger.InfoContext(ctx, "Loan created successfully",
		slog.Int64("loanID", created.LoanID), slog.Int64("customerID", customerID))

	result.LoanID = &created.LoanID
	return result, nil
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	if loanID <= 0 {
		return nil, fmt.Errorf("%w: loan ID must be positive", apperrors.ErrInvalidArgument)
	}

	l, err := s.repo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.Int64("loanID", loanID))
			return nil, fmt.Errorf("%w: loan with ID %d", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}
	return l, nil
}

func (s *loanServiceImpl) ListCustomerLoans(ctx context.Context, customerID int64) ([]LoanSummary, error) {
	if _, err := s.customerService.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	loans, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list customer loans", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans for customer %d: %w", customerID, err)
	}

	now := truncateToDay(s.now())
	summaries := make([]LoanSummary, 0, len(loans))
	for _, l := range loans {
		summaries = append(summaries, LoanSummary{Loan: l, RepaymentsLeft: l.RepaymentsLeft(now)})
	}
	return summaries, nil
}

func (s *loanServiceImpl) ScoreCustomer(ctx context.Context, customerID int64) (int, error) {
	cust, err := s.customerService.GetCustomer(ctx, customerID)
	if err != nil {
		return 0, err
	}

	history, err := s.history(ctx, customerID)
	if err != nil {
		return 0, err
	}

	score, _ := credit.Score(profileOf(cust), history, truncateToDay(s.now()))
	monitoring.RecordCreditScore(score)
	return score, nil
}

// evaluate runs the full scoring and decision pipeline against a
// consistent snapshot of the customer's loan history.
func (s *loanServiceImpl) evaluate(ctx context.Context, customerID int64, amount Money, interestRate float64, tenure int) (credit.Decision, *customer.Customer, error) {
	cust, err := s.customerService.GetCustomer(ctx, customerID)
	if err != nil {
		return credit.Decision{}, nil, err
	}

	history, err := s.history(ctx, customerID)
	if err != nil {
		return credit.Decision{}, nil, err
	}

	// Loan end dates are stored at day granularity; evaluating with a
	// mid-day clock would drop a loan from the active set for most of
	// its final day.
	now := truncateToDay(s.now())
	profile := profileOf(cust)
	score, agg := credit.Score(profile, history, now)
	monitoring.RecordCreditScore(score)

	decision, err := credit.Decide(amount, interestRate, tenure, profile, score, agg)
	if err != nil {
		s.logger.ErrorContext(ctx, "Eligibility computation failed",
			slog.Int64("customerID", customerID), slog.Any("error", err))
		return credit.Decision{}, nil, err
	}

	monitoring.RecordDecision(decisionLabel(decision))
	s.logger.InfoContext(ctx, "Eligibility decision made",
		slog.Int64("customerID", customerID),
		slog.Int("creditScore", score),
		slog.Bool("approved", decision.Approved),
		slog.Bool("rateCorrected", decision.RateCorrected),
		slog.Float64("interestRate", decision.InterestRate))

	return decision, cust, nil
}

func (s *loanServiceImpl) history(ctx context.Context, customerID int64) ([]credit.LoanRecord, error) {
	loans, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load loan history", slog.Int64("customerID", customerID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to load loan history for customer %d: %w", customerID, err)
	}

	records := make([]credit.LoanRecord, 0, len(loans))
	for _, l := range loans {
		records = append(records, l.Record())
	}
	return records, nil
}

func (s *loanServiceImpl) publishApprovedEvent(ctx context.Context, l *Loan) {
	evt := event.LoanApprovedEvent{
		Timestamp:      time.Now(),
		LoanID:         l.LoanID,
		CustomerID:     l.CustomerID,
		LoanAmount:     l.LoanAmount,
		InterestRate:   l.InterestRate,
		Tenure:         l.Tenure,
		MonthlyPayment: l.MonthlyPayment,
		EndDate:        l.EndDate,
	}
	if err := s.pub.PublishLoanApproved(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish loan approved event", slog.Any("error", err))
	}
}

func profileOf(cust *customer.Customer) credit.CustomerProfile {
	return credit.CustomerProfile{
		MonthlySalary: cust.MonthlySalary,
		ApprovedLimit: cust.ApprovedLimit,
	}
}

func decisionLabel(d credit.Decision) string {
	switch {
	case d.Approved && d.RateCorrected:
		return "approved_corrected"
	case d.Approved:
		return "approved"
	case d.Outcome == credit.OutcomeRejectedAffordability:
		return "rejected_affordability"
	default:
		return "rejected_score"
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
