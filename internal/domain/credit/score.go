package credit

import (
	"math"
	"time"
)

const (
	volumeWeight  = 30
	recencyWeight = 10
	volumeCap     = 80
	recencyCap    = 20
)

// Score aggregates a customer's loan history into a credit score in
// [0,100]. A customer whose active principal meets or exceeds the
// approved limit scores 0 outright. The returned aggregates are reused by
// the eligibility decision for the affordability gate.
//
// A customer with no history also scores 0: every component normalizes to
// zero. That makes brand-new customers maximally risky, which reads
// backwards, but it is the established behavior and downstream rate
// tables assume it.
func Score(profile CustomerProfile, history []LoanRecord, now time.Time) (int, Aggregates) {
	agg := aggregate(history, now)

	if agg.ActivePrincipal >= profile.ApprovedLimit {
		return 0, agg
	}

	elapsed := agg.ElapsedInstallments
	if elapsed == 0 {
		elapsed = 1
	}
	punctuality := float64(agg.PaidOnTime) / float64(elapsed)

	volume := math.Min(volumeCap, float64(agg.TotalLoanCount*volumeWeight))
	recency := math.Min(recencyCap, float64(agg.LoansInLastYear*recencyWeight))

	score := recency + math.Min(volumeCap, volume*punctuality)
	return int(math.Round(score)), agg
}

func aggregate(history []LoanRecord, now time.Time) Aggregates {
	var agg Aggregates
	yearAgo := now.AddDate(0, 0, -365)

	for _, rec := range history {
		agg.TotalLoanCount++
		agg.PaidOnTime += rec.PaidOnTime
		agg.ElapsedInstallments += ElapsedInstallments(rec, now)

		if !rec.DateOfApproval.Before(yearAgo) {
			agg.LoansInLastYear++
		}
		if rec.ActiveAt(now) {
			agg.ActiveLoanCount++
			agg.ActivePrincipal += rec.Amount
			agg.ActiveMonthlyPayment += rec.MonthlyPayment
		}
	}
	return agg
}
