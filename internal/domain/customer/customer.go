package customer

import (
	"math"
	"time"
)

const limitRoundingUnit = 100_000

type Customer struct {
	CustomerID    int64     `json:"customerId"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Age           int       `json:"age"`
	PhoneNumber   string    `json:"phoneNumber"`
	MonthlySalary float64   `json:"monthlySalary"`
	ApprovedLimit float64   `json:"approvedLimit"`
	CreditScore   *int      `json:"creditScore,omitempty"`
	CreateDate    time.Time `json:"createDate"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCustomer(firstName, lastName string, age int, phoneNumber string, monthlySalary float64) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:     firstName,
		LastName:      lastName,
		Age:           age,
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: ApprovedLimit(monthlySalary),
		CreateDate:    now,
		UpdatedAt:     now,
	}
}

// ApprovedLimit derives the customer's credit limit from monthly salary:
// 36x the monthly salary, rounded to the nearest 100,000 currency units.
func ApprovedLimit(monthlySalary float64) float64 {
	return math.Round(36*monthlySalary/limitRoundingUnit) * limitRoundingUnit
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) SetCreditScore(score int) {
	c.CreditScore = &score
	c.UpdatedAt = time.Now()
}
