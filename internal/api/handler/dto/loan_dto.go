package dto

import (
	"fmt"
	"time"

	"credit-approval/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type LoanRequest struct {
	CustomerID   int64   `json:"customerId"`
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	Tenure       int     `json:"tenure"`
}

func (r *LoanRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	if r.LoanAmount <= 0 {
		return fmt.Errorf("loanAmount must be greater than zero")
	}
	if r.InterestRate < 0 {
		return fmt.Errorf("interestRate cannot be negative")
	}
	if r.Tenure <= 0 {
		return fmt.Errorf("tenure must be positive")
	}
	return nil
}

type EligibilityResponse struct {
	CustomerID            int64   `json:"customerId"`
	Approval              bool    `json:"approval"`
	InterestRate          float64 `json:"interestRate"`
	CorrectedInterestRate float64 `json:"correctedInterestRate"`
	Tenure                int     `json:"tenure"`
	MonthlyInstallment    string  `json:"monthlyInstallment"`
	Message               string  `json:"message"`
}

type CreateLoanResponse struct {
	LoanID             *int64 `json:"loanId"`
	CustomerID         int64  `json:"customerId"`
	LoanApproved       bool   `json:"loanApproved"`
	Message            string `json:"message"`
	MonthlyInstallment string `json:"monthlyInstallment"`
}

type LoanResponse struct {
	LoanID             int64            `json:"loanId"`
	Customer           CustomerResponse `json:"customer"`
	LoanAmount         string           `json:"loanAmount"`
	InterestRate       float64          `json:"interestRate"`
	Tenure             int              `json:"tenure"`
	MonthlyInstallment string           `json:"monthlyInstallment"`
	DateOfApproval     string           `json:"dateOfApproval"`
	EndDate            string           `json:"endDate"`
}

type CustomerLoanResponse struct {
	LoanID             int64   `json:"loanId"`
	LoanAmount         string  `json:"loanAmount"`
	InterestRate       float64 `json:"interestRate"`
	MonthlyInstallment string  `json:"monthlyInstallment"`
	RepaymentsLeft     int     `json:"repaymentsLeft"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

func formatMoney(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func NewEligibilityResponse(res *loan.EligibilityResult) EligibilityResponse {
	return EligibilityResponse{
		CustomerID:            res.CustomerID,
		Approval:              res.Approved,
		InterestRate:          res.RequestedRate,
		CorrectedInterestRate: res.CorrectedRate,
		Tenure:                res.Tenure,
		MonthlyInstallment:    formatMoney(res.Installment),
		Message:               res.Message,
	}
}

func NewCreateLoanResponse(res *loan.CreateLoanResult) CreateLoanResponse {
	return CreateLoanResponse{
		LoanID:             res.LoanID,
		CustomerID:         res.CustomerID,
		LoanApproved:       res.Approved,
		Message:            res.Message,
		MonthlyInstallment: formatMoney(res.Installment),
	}
}

func NewLoanResponse(l *loan.Loan, cust CustomerResponse) LoanResponse {
	return LoanResponse{
		LoanID:             l.LoanID,
		Customer:           cust,
		LoanAmount:         formatMoney(l.LoanAmount),
		InterestRate:       l.InterestRate,
		Tenure:             l.Tenure,
		MonthlyInstallment: formatMoney(l.MonthlyPayment),
		DateOfApproval:     l.DateOfApproval.Format(time.RFC3339[:10]),
		EndDate:            l.EndDate.Format(time.RFC3339[:10]),
	}
}

func NewCustomerLoanResponse(summary loan.LoanSummary) CustomerLoanResponse {
	return CustomerLoanResponse{
		LoanID:             summary.Loan.LoanID,
		LoanAmount:         formatMoney(summary.Loan.LoanAmount),
		InterestRate:       summary.Loan.InterestRate,
		MonthlyInstallment: formatMoney(summary.Loan.MonthlyPayment),
		RepaymentsLeft:     summary.RepaymentsLeft,
	}
}
