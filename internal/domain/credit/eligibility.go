package credit

// Outcome is the human-readable result attached to an eligibility
// decision.
type Outcome string

const (
	OutcomeApproved Outcome = "Loan approved at the requested interest rate."

	OutcomeRateRaisedTo12 Outcome = "Credit score permits approval only at an interest rate of 12% or higher."

	OutcomeRateRaisedTo16 Outcome = "Credit score permits approval only at an interest rate of 16% or higher."

	OutcomeRejectedAffordability Outcome = "Total monthly installments would exceed 50% of monthly salary."

	OutcomeRejectedLowScore Outcome = "Credit score too low for loan approval."
)

const (
	scoreBandPrime = 50
	scoreBandMid   = 30
	scoreBandLow   = 10

	rateFloorMid = 12.0
	rateFloorLow = 16.0

	salaryInstallmentShare = 0.5
)

// Decision captures the outcome of an eligibility evaluation. On a
// corrected approval InterestRate and Installment reflect the raised
// rate, not the requested one.
type Decision struct {
	Approved      bool
	RateCorrected bool
	InterestRate  float64
	Installment   Money
	Outcome       Outcome
}

// Decide runs the eligibility rule ladder for a new loan request. Rules
// apply in order and the first match wins: the affordability gate takes
// precedence over every score band.
func Decide(amount Money, requestedRate float64, tenure int, profile CustomerProfile, score int, agg Aggregates) (Decision, error) {
	installment, err := Installment(amount, tenure, requestedRate)
	if err != nil {
		return Decision{}, err
	}

	decision := Decision{
		InterestRate: requestedRate,
		Installment:  installment,
	}

	if agg.ActiveMonthlyPayment+installment > profile.MonthlySalary*salaryInstallmentShare {
		decision.Outcome = OutcomeRejectedAffordability
		return decision, nil
	}

	switch {
	case score > scoreBandPrime:
		decision.Approved = true
		decision.Outcome = OutcomeApproved
		return decision, nil

	case score > scoreBandMid:
		return correctRate(decision, amount, tenure, rateFloorMid, OutcomeRateRaisedTo12)

	case score > scoreBandLow:
		return correctRate(decision, amount, tenure, rateFloorLow, OutcomeRateRaisedTo16)

	default:
		decision.Outcome = OutcomeRejectedLowScore
		return decision, nil
	}
}

// correctRate approves the request as-is when the asked rate already
// clears the band floor, otherwise raises the rate to the floor and
// recomputes the installment.
func correctRate(decision Decision, amount Money, tenure int, floor float64, outcome Outcome) (Decision, error) {
	decision.Approved = true
	if decision.InterestRate >= floor {
		decision.Outcome = OutcomeApproved
		return decision, nil
	}

	installment, err := Installment(amount, tenure, floor)
	if err != nil {
		return Decision{}, err
	}
	decision.RateCorrected = true
	decision.InterestRate = floor
	decision.Installment = installment
	decision.Outcome = outcome
	return decision, nil
}
