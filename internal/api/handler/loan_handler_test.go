package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"credit-approval/internal/api/handler/dto"
	"credit-approval/internal/domain/customer"
	"credit-approval/internal/domain/loan"
	"credit-approval/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CheckEligibility(ctx context.Context, customerID int64, amount loan.Money, interestRate float64, tenure int) (*loan.EligibilityResult, error) {
	args := m.Called(ctx, customerID, amount, interestRate, tenure)
	if res, ok := args.Get(0).(*loan.EligibilityResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, customerID int64, amount loan.Money, interestRate float64, tenure int) (*loan.CreateLoanResult, error) {
	args := m.Called(ctx, customerID, amount, interestRate, tenure)
	if res, ok := args.Get(0).(*loan.CreateLoanResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID int64) (*loan.Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ListCustomerLoans(ctx context.Context, customerID int64) ([]loan.LoanSummary, error) {
	args := m.Called(ctx, customerID)
	if summaries, ok := args.Get(0).([]loan.LoanSummary); ok {
		return summaries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ScoreCustomer(ctx context.Context, customerID int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) RegisterCustomer(ctx context.Context, firstName, lastName string, age int, phoneNumber string, monthlySalary float64) (*customer.Customer, error) {
	args := m.Called(ctx, firstName, lastName, age, phoneNumber, monthlySalary)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if customers, ok := args.Get(0).([]*customer.Customer); ok {
		return customers, args.Error(1)
	}
	return nil, args.Error(1)
}

func testHandlerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{Keys: []string{key}, Values: []string{value}},
	}))
}

func TestLoanHandlerCheckEligibility(t *testing.T) {
	t.Run("returns approval decision", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		result := &loan.EligibilityResult{
			CustomerID:    1,
			Approved:      true,
			RequestedRate: 8,
			CorrectedRate: 8,
			Tenure:        10,
			Installment:   10370.32,
			Message:       "Loan approved",
		}
		mockService.On("CheckEligibility", mock.Anything, int64(1), 100000.0, 8.0, 10).Return(result, nil)

		body := `{"customerId":1,"loanAmount":100000,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans/check-eligibility", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CheckEligibility(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.EligibilityResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Approval)
		assert.Equal(t, 8.0, resp.CorrectedInterestRate)
		assert.Equal(t, "10370.32", resp.MonthlyInstallment)
		mockService.AssertExpectations(t)
	})

	t.Run("returns corrected rate quote", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		result := &loan.EligibilityResult{
			CustomerID:    2,
			Approved:      true,
			RateCorrected: true,
			RequestedRate: 8,
			CorrectedRate: 16,
			Tenure:        10,
			Installment:   10747.90,
			Message:       "Interest rate raised to 16%",
		}
		mockService.On("CheckEligibility", mock.Anything, int64(2), 100000.0, 8.0, 10).Return(result, nil)

		body := `{"customerId":2,"loanAmount":100000,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans/check-eligibility", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CheckEligibility(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.EligibilityResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 16.0, resp.CorrectedInterestRate)
		assert.Equal(t, 8.0, resp.InterestRate)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		handler := NewLoanHandler(new(MockLoanService), new(MockCustomerService), testHandlerLogger())

		body := `{"customerId":1,"loanAmount":-5,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans/check-eligibility", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CheckEligibility(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp dto.ErrorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Contains(t, resp.Error.Message, "loanAmount")
	})

	t.Run("returns 404 for unknown customer", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		mockService.On("CheckEligibility", mock.Anything, int64(99), 100000.0, 8.0, 10).
			Return((*loan.EligibilityResult)(nil), customer.ErrNotFound)

		body := `{"customerId":99,"loanAmount":100000,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans/check-eligibility", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CheckEligibility(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerCreateLoan(t *testing.T) {
	t.Run("returns 201 when a loan was created", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		loanID := int64(42)
		result := &loan.CreateLoanResult{
			LoanID:      &loanID,
			CustomerID:  1,
			Approved:    true,
			Message:     "Loan approved",
			Installment: 10370.32,
		}
		mockService.On("CreateLoan", mock.Anything, int64(1), 100000.0, 8.0, 10).Return(result, nil)

		body := `{"customerId":1,"loanAmount":100000,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.CreateLoanResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotNil(t, resp.LoanID)
		assert.Equal(t, loanID, *resp.LoanID)
		mockService.AssertExpectations(t)
	})

	t.Run("returns 200 with nil loanId when not created", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		result := &loan.CreateLoanResult{
			CustomerID:  1,
			Approved:    false,
			Message:     "Credit score too low for any loan",
			Installment: 0,
		}
		mockService.On("CreateLoan", mock.Anything, int64(1), 100000.0, 8.0, 10).Return(result, nil)

		body := `{"customerId":1,"loanAmount":100000,"interestRate":8,"tenure":10}`
		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CreateLoanResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Nil(t, resp.LoanID)
		assert.False(t, resp.LoanApproved)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		handler := NewLoanHandler(new(MockLoanService), new(MockCustomerService), testHandlerLogger())

		req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(`not json`))
		rec := httptest.NewRecorder()

		handler.CreateLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoanHandlerGetLoan(t *testing.T) {
	t.Run("successfully retrieves loan with its customer", func(t *testing.T) {
		mockService := new(MockLoanService)
		mockCustomers := new(MockCustomerService)
		handler := NewLoanHandler(mockService, mockCustomers, testHandlerLogger())

		approval := time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC)
		mockLoan := &loan.Loan{
			LoanID:         123,
			CustomerID:     7,
			LoanAmount:     100000,
			Tenure:         10,
			InterestRate:   8,
			MonthlyPayment: 10370.32,
			DateOfApproval: approval,
			EndDate:        approval.AddDate(0, 10, 0),
		}
		mockService.On("GetLoan", mock.Anything, int64(123)).Return(mockLoan, nil)
		mockCustomers.On("GetCustomer", mock.Anything, int64(7)).Return(&customer.Customer{
			CustomerID: 7, FirstName: "Asha", LastName: "Rao",
		}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/123", nil), "loanID", "123")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(123), resp.LoanID)
		assert.Equal(t, "Asha", resp.Customer.FirstName)
		assert.Equal(t, "2021-03-10", resp.DateOfApproval)
		mockService.AssertExpectations(t)
		mockCustomers.AssertExpectations(t)
	})

	t.Run("returns error for invalid loan ID", func(t *testing.T) {
		handler := NewLoanHandler(new(MockLoanService), new(MockCustomerService), testHandlerLogger())

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/invalid", nil), "loanID", "invalid")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns error when loan not found", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		mockService.On("GetLoan", mock.Anything, int64(2)).Return((*loan.Loan)(nil), apperrors.ErrNotFound)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/loans/2", nil), "loanID", "2")
		rec := httptest.NewRecorder()

		handler.GetLoan(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestLoanHandlerListCustomerLoans(t *testing.T) {
	t.Run("lists loans with repayments left", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		approval := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
		summaries := []loan.LoanSummary{
			{
				Loan: &loan.Loan{
					LoanID:         10,
					CustomerID:     7,
					LoanAmount:     500000,
					Tenure:         24,
					InterestRate:   11.5,
					MonthlyPayment: 23420.16,
					DateOfApproval: approval,
					EndDate:        approval.AddDate(0, 24, 0),
				},
				RepaymentsLeft: 18,
			},
		}
		mockService.On("ListCustomerLoans", mock.Anything, int64(7)).Return(summaries, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/7/loans", nil), "customerID", "7")
		rec := httptest.NewRecorder()

		handler.ListCustomerLoans(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.CustomerLoanResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, int64(10), resp[0].LoanID)
		assert.Equal(t, 18, resp[0].RepaymentsLeft)
		assert.Equal(t, "23420.16", resp[0].MonthlyInstallment)
		mockService.AssertExpectations(t)
	})

	t.Run("returns empty array for customer with no loans", func(t *testing.T) {
		mockService := new(MockLoanService)
		handler := NewLoanHandler(mockService, new(MockCustomerService), testHandlerLogger())

		mockService.On("ListCustomerLoans", mock.Anything, int64(8)).Return([]loan.LoanSummary{}, nil)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/customers/8/loans", nil), "customerID", "8")
		rec := httptest.NewRecorder()

		handler.ListCustomerLoans(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
		mockService.AssertExpectations(t)
	})
}
