package credit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMaturityDate(t *testing.T) {
	tests := []struct {
		name     string
		approved time.Time
		tenure   int
		want     time.Time
	}{
		{"plain advance", date(2022, time.March, 9), 10, date(2023, time.January, 9)},
		{"year rollover", date(2021, time.November, 15), 3, date(2022, time.February, 15)},
		{"clamped to short month", date(2022, time.January, 31), 1, date(2022, time.February, 28)},
		{"clamped to leap february", date(2019, time.December, 31), 2, date(2020, time.February, 29)},
		{"thirty day month", date(2022, time.March, 31), 1, date(2022, time.April, 30)},
		{"long tenure", date(2017, time.March, 9), 129, date(2027, time.December, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaturityDate(tt.approved, tt.tenure))
		})
	}
}

func TestElapsedInstallments(t *testing.T) {
	now := date(2022, time.June, 15)

	matured := LoanRecord{Tenure: 99, PaidOnTime: 87, DateOfApproval: date(2010, time.April, 4), EndDate: date(2018, time.July, 4)}
	assert.Equal(t, 99, ElapsedInstallments(matured, now))

	fullyPaid := LoanRecord{Tenure: 33, PaidOnTime: 33, DateOfApproval: date(2015, time.February, 6), EndDate: date(2117, time.November, 6)}
	assert.Equal(t, 33, ElapsedInstallments(fullyPaid, now))

	running := LoanRecord{Tenure: 129, PaidOnTime: 114, DateOfApproval: date(2017, time.March, 9), EndDate: date(2027, time.December, 9)}
	assert.Equal(t, 63, ElapsedInstallments(running, now))

	// Day of month is deliberately ignored: approval later in the month
	// still counts the calendar-month difference.
	lateInMonth := LoanRecord{Tenure: 12, PaidOnTime: 1, DateOfApproval: date(2022, time.April, 28), EndDate: date(2023, time.April, 28)}
	assert.Equal(t, 2, ElapsedInstallments(lateInMonth, now))
}

func TestLoanRecord_ActiveAt(t *testing.T) {
	now := date(2022, time.June, 15)

	assert.True(t, LoanRecord{Tenure: 129, PaidOnTime: 77, EndDate: date(2024, time.May, 14)}.ActiveAt(now))
	assert.False(t, LoanRecord{Tenure: 33, PaidOnTime: 33, EndDate: date(2024, time.May, 14)}.ActiveAt(now), "fully paid loans are not active")
	assert.False(t, LoanRecord{Tenure: 99, PaidOnTime: 87, EndDate: date(2018, time.July, 4)}.ActiveAt(now), "matured loans are not active")
	assert.True(t, LoanRecord{Tenure: 12, PaidOnTime: 0, EndDate: now}.ActiveAt(now), "loan ending today is still active")
}
