package dto

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"credit-approval/internal/domain/customer"

	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type RegisterCustomerRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Age           int     `json:"age"`
	PhoneNumber   string  `json:"phoneNumber"`
	MonthlySalary float64 `json:"monthlySalary"`
}

func (r *RegisterCustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("firstName cannot be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("lastName cannot be empty")
	}
	if r.Age <= 0 {
		return fmt.Errorf("age must be positive")
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return fmt.Errorf("phoneNumber must be 10 digits")
	}
	if r.MonthlySalary <= 0 {
		return fmt.Errorf("monthlySalary must be greater than zero")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID    int64     `json:"customerId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Age           int       `json:"age"`
	PhoneNumber   string    `json:"phoneNumber"`
	MonthlySalary string    `json:"monthlySalary"`
	ApprovedLimit string    `json:"approvedLimit"`
	CreditScore   *int      `json:"creditScore,omitempty"`
	CreateDate    time.Time `json:"createDate"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}

	return CustomerResponse{
		CustomerID:    cust.CustomerID,
		FirstName:     cust.FirstName,
		LastName:      cust.LastName,
		Age:           cust.Age,
		PhoneNumber:   cust.PhoneNumber,
		MonthlySalary: decimal.NewFromFloat(cust.MonthlySalary).StringFixed(2),
		ApprovedLimit: decimal.NewFromFloat(cust.ApprovedLimit).StringFixed(2),
		CreditScore:   cust.CreditScore,
		CreateDate:    cust.CreateDate,
		UpdatedAt:     cust.UpdatedAt,
	}
}
