package credit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide_PrimeScoreApprovedAtRequestedRate(t *testing.T) {
	score, agg := Score(testProfile, referenceHistory(), evalDate)
	require.Greater(t, score, 50)

	decision, err := Decide(100000, 8, 10, testProfile, score, agg)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.False(t, decision.RateCorrected)
	assert.Equal(t, 8.0, decision.InterestRate)
	assert.InDelta(t, 10370.32, decision.Installment, 0.005)
	assert.Equal(t, OutcomeApproved, decision.Outcome)
}

func TestDecide_AffordabilityGateBeatsGoodScore(t *testing.T) {
	score, agg := Score(testProfile, referenceHistory(), evalDate)
	require.Greater(t, score, 50)

	decision, err := Decide(1000000, 8, 3, testProfile, score, agg)
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.False(t, decision.RateCorrected)
	assert.Equal(t, 8.0, decision.InterestRate)
	assert.InDelta(t, 337787.62, decision.Installment, 0.005)
	assert.Equal(t, OutcomeRejectedAffordability, decision.Outcome)
}

func TestDecide_LowBandRaisesRateToSixteen(t *testing.T) {
	history := referenceHistory()
	for i := 0; i < 4; i++ {
		history[i].PaidOnTime = 0
	}
	history[4].PaidOnTime = history[4].Tenure

	score, agg := Score(testProfile, history, evalDate)
	require.Greater(t, score, 10)
	require.LessOrEqual(t, score, 30)

	decision, err := Decide(100000, 8, 10, testProfile, score, agg)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.True(t, decision.RateCorrected)
	assert.Equal(t, 16.0, decision.InterestRate)
	assert.InDelta(t, 10747.90, decision.Installment, 0.005)
	assert.Equal(t, OutcomeRateRaisedTo16, decision.Outcome)
}

func TestDecide_MidBandRaisesRateToTwelve(t *testing.T) {
	agg := Aggregates{ActiveMonthlyPayment: 0}

	decision, err := Decide(100000, 8, 10, testProfile, 40, agg)
	require.NoError(t, err)

	assert.True(t, decision.Approved)
	assert.True(t, decision.RateCorrected)
	assert.Equal(t, 12.0, decision.InterestRate)
	assert.InDelta(t, 10558.21, decision.Installment, 0.005)
	assert.Equal(t, OutcomeRateRaisedTo12, decision.Outcome)
}

func TestDecide_BandFloorAlreadyMetNeedsNoCorrection(t *testing.T) {
	agg := Aggregates{}

	decision, err := Decide(100000, 13.5, 10, testProfile, 40, agg)
	require.NoError(t, err)
	assert.True(t, decision.Approved)
	assert.False(t, decision.RateCorrected)
	assert.Equal(t, 13.5, decision.InterestRate)
	assert.Equal(t, OutcomeApproved, decision.Outcome)

	decision, err = Decide(100000, 16, 10, testProfile, 20, agg)
	require.NoError(t, err)
	assert.True(t, decision.Approved)
	assert.False(t, decision.RateCorrected)
	assert.Equal(t, 16.0, decision.InterestRate)
}

func TestDecide_BottomBandRejected(t *testing.T) {
	decision, err := Decide(100000, 8, 10, testProfile, 10, Aggregates{})
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.False(t, decision.RateCorrected)
	assert.Equal(t, OutcomeRejectedLowScore, decision.Outcome)
}

func TestDecide_InvalidRequestSurfacesComputationError(t *testing.T) {
	_, err := Decide(100000, -2, 10, testProfile, 90, Aggregates{})
	assert.Error(t, err)
}
