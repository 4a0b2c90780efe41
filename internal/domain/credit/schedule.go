package credit

import "time"

// MaturityDate advances a loan's approval date by its tenure in months.
// When the target month is shorter than the start day the date is clamped
// to the last day of that month instead of spilling into the next one.
func MaturityDate(approvedAt time.Time, tenureMonths int) time.Time {
	year, month, day := approvedAt.Date()
	m := int(month-1) + tenureMonths
	targetYear := year + m/12
	targetMonth := time.Month(m%12 + 1)

	lastDay := daysIn(targetYear, targetMonth)
	if day > lastDay {
		day = lastDay
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, approvedAt.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ElapsedInstallments estimates how many installments have nominally
// fallen due as of now. A matured or fully repaid loan contributes its
// whole tenure; otherwise the count is the number of whole calendar
// months since approval, day of month ignored.
func ElapsedInstallments(rec LoanRecord, now time.Time) int {
	if now.After(rec.EndDate) || rec.PaidOnTime == rec.Tenure {
		return rec.Tenure
	}
	return (now.Year()-rec.DateOfApproval.Year())*12 + int(now.Month()) - int(rec.DateOfApproval.Month())
}
