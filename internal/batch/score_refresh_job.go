package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/event"
	"credit-approval/internal/pkg/apperrors"
)

// ScoreRefreshJob recomputes the credit score of every registered
// customer from their current loan history and persists the result, so
// that GET /customers reflects scores without an eligibility check
// having run first.
type ScoreRefreshJob struct {
	customerRepo customer.CustomerRepository
	loanService  loan.LoanService
	pub          event.Publisher
	logger       *slog.Logger
}

func NewScoreRefreshJob(
	customerRepo customer.CustomerRepository,
	loanSvc loan.LoanService,
	pub event.Publisher,
	logger *slog.Logger,
) *ScoreRefreshJob {
	if customerRepo == nil || loanSvc == nil || logger == nil {
		panic("ScoreRefreshJob dependencies cannot be nil")
	}
	if pub == nil {
		pub = event.NoopPublisher{}
	}
	return &ScoreRefreshJob{
		customerRepo: customerRepo,
		loanService:  loanSvc,
		pub:          pub,
		logger:       logger.With("job", "ScoreRefresh"),
	}
}

func (j *ScoreRefreshJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting credit score refresh job.")

	customers, err := j.customerRepo.FindAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched customers.", slog.Int("count", len(customers)))

	if len(customers) == 0 {
		j.logger.InfoContext(ctx, "No customers found to score.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var wg sync.WaitGroup
	var refreshedCount, unchangedCount, errorCount int32

	for _, cust := range customers {
		wg.Add(1)
		go func(cust *customer.Customer) {
			defer wg.Done()

			logCtx := j.logger.With(slog.Int64("customerID", cust.CustomerID))

			score, scoreErr := j.loanService.ScoreCustomer(ctx, cust.CustomerID)
			if scoreErr != nil {
				if errors.Is(scoreErr, customer.ErrNotFound) || errors.Is(scoreErr, apperrors.ErrNotFound) {
					logCtx.WarnContext(ctx, "Customer vanished during scoring run", slog.Any("error", scoreErr))
				} else {
					logCtx.ErrorContext(ctx, "Failed to score customer", slog.Any("error", scoreErr))
					atomic.AddInt32(&errorCount, 1)
				}
				return
			}

			if cust.CreditScore != nil && *cust.CreditScore == score {
				atomic.AddInt32(&unchangedCount, 1)
				return
			}

			if updateErr := j.customerRepo.UpdateCreditScore(ctx, cust.CustomerID, score); updateErr != nil {
				logCtx.ErrorContext(ctx, "Failed to persist refreshed credit score", slog.Any("error", updateErr))
				atomic.AddInt32(&errorCount, 1)
				return
			}
			atomic.AddInt32(&refreshedCount, 1)
			logCtx.InfoContext(ctx, "Credit score refreshed.", slog.Int("newScore", score))

			evt := event.ScoreRefreshedEvent{
				Timestamp:  time.Now(),
				CustomerID: cust.CustomerID,
				OldScore:   cust.CreditScore,
				NewScore:   score,
			}
			if pubErr := j.pub.PublishScoreRefreshed(ctx, evt); pubErr != nil {
				logCtx.WarnContext(ctx, "Failed to publish score refresh event", slog.Any("error", pubErr))
			}
		}(cust)
	}

	wg.Wait()
	duration := time.Since(startTime)
	summaryLog := j.logger.With(
		slog.Duration("duration", duration),
		slog.Int("total_customers", len(customers)),
		slog.Int("scores_refreshed", int(refreshedCount)),
		slog.Int("scores_unchanged", int(unchangedCount)),
		slog.Int("errors_encountered", int(errorCount)),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Credit score refresh job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}
	summaryLog.InfoContext(ctx, "Credit score refresh job finished successfully.")
	return nil
}
