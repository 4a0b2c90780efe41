package credit

import (
	"credit-approval/internal/pkg/apperrors"
	"fmt"
	"math"
)

// Installment computes the fixed monthly payment for a reducing-balance
// loan, rounded to two decimal places. A zero interest rate degenerates to
// straight-line repayment; negative rates and non-positive terms are
// rejected rather than fed into the formula.
func Installment(principal Money, tenureMonths int, annualRatePercent float64) (Money, error) {
	if principal <= 0 {
		return 0, fmt.Errorf("%w: principal must be positive, got %.2f", apperrors.ErrComputation, principal)
	}
	if tenureMonths <= 0 {
		return 0, fmt.Errorf("%w: tenure must be positive, got %d", apperrors.ErrComputation, tenureMonths)
	}
	if annualRatePercent < 0 {
		return 0, fmt.Errorf("%w: interest rate cannot be negative, got %.2f", apperrors.ErrComputation, annualRatePercent)
	}
	if annualRatePercent == 0 {
		return roundTo(principal/float64(tenureMonths), 2), nil
	}

	r := annualRatePercent / 12 / 100
	compounded := math.Pow(1+r, float64(tenureMonths))
	installment := principal * r * compounded / (compounded - 1)
	if math.IsNaN(installment) || math.IsInf(installment, 0) {
		return 0, fmt.Errorf("%w: amortization produced a non-finite installment (principal=%.2f tenure=%d rate=%.2f)",
			apperrors.ErrComputation, principal, tenureMonths, annualRatePercent)
	}
	return roundTo(installment, 2), nil
}

func roundTo(n float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}
