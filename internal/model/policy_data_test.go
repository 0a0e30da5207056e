package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyInitialize(t *testing.T) {
	p := &PolicyData{EffectiveDate: timePtr(testNow)}
	p.Initialize(testNow, stubGenerator{})

	assert.Equal(t, "POL250314CAFE0001", p.PolicyCode)
	assert.Equal(t, "RWF", p.Currency)
	assert.Equal(t, PolicyDraft, p.Status)
	assert.Equal(t, testNow.AddDate(1, 0, 0), *p.NextReviewDate)
	assert.True(t, p.Status.CanBeModified())
}

func TestPolicyUtilization(t *testing.T) {
	tests := []struct {
		name      string
		allocated decimal.NullDecimal
		utilized  decimal.NullDecimal
		want      string
		band      PolicyEffectiveness
	}{
		{name: "two thirds", allocated: nullDec("300"), utilized: nullDec("200"), want: "66.67", band: PolicyModeratelyEffective},
		{name: "fully used", allocated: nullDec("1000"), utilized: nullDec("900"), want: "90", band: PolicyHighlyEffective},
		{name: "barely used", allocated: nullDec("1000"), utilized: nullDec("100"), want: "10", band: PolicyIneffective},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PolicyData{BudgetAllocated: tt.allocated, BudgetUtilized: tt.utilized}
			require.NoError(t, p.Recompute(testNow))

			require.True(t, p.UtilizationRate.Valid)
			assertDecimal(t, tt.want, p.UtilizationRate.Decimal)
			assert.Equal(t, tt.band, p.Effectiveness())
		})
	}
}

func TestPolicyUtilizationNeedsAllocation(t *testing.T) {
	p := &PolicyData{BudgetAllocated: nullDec("0"), BudgetUtilized: nullDec("50")}
	require.NoError(t, p.Recompute(testNow))

	assert.False(t, p.UtilizationRate.Valid)
	assert.Equal(t, PolicyNotAssessed, p.Effectiveness())
	assert.Equal(t, "N/A", p.UtilizationFormatted())
}

func TestPolicyExpiry(t *testing.T) {
	p := &PolicyData{Status: PolicyActive, EffectiveDate: timePtr(testNow.AddDate(-1, 0, 0)), ExpiryDate: timePtr(testNow)}

	require.NoError(t, p.Recompute(testNow))
	assert.Equal(t, PolicyActive, p.Status, "active through its expiry day")
	assert.True(t, p.CurrentlyActive(testNow))
	assert.True(t, p.ExpiringSoon(testNow))

	next := testNow.AddDate(0, 0, 1)
	require.NoError(t, p.Recompute(next))
	assert.Equal(t, PolicyExpired, p.Status)
	assert.True(t, p.Status.Inactive())
	assert.False(t, p.CurrentlyActive(next))

	draft := &PolicyData{Status: PolicyDraft, ExpiryDate: timePtr(testNow.AddDate(0, 0, -5))}
	require.NoError(t, draft.Recompute(testNow))
	assert.Equal(t, PolicyDraft, draft.Status, "only active policies expire")
}

func TestPolicyPredicates(t *testing.T) {
	p := &PolicyData{
		PolicyType:      PolicyCreditProgram,
		PolicyCategory:  PolicyMarket,
		Status:          PolicyActive,
		EffectiveDate:   timePtr(testNow.AddDate(0, 1, 0)),
		ExpiryDate:      timePtr(testNow.AddDate(0, 6, 0)),
		NextReviewDate:  timePtr(testNow.AddDate(0, 0, -1)),
		UtilizationRate: nullDec("85"),
		YouthFocus:      true,
	}

	assert.True(t, p.PolicyType.Financial())
	assert.False(t, p.PolicyType.Regulatory())
	assert.False(t, p.CurrentlyActive(testNow), "not yet effective")
	assert.False(t, p.ExpiringSoon(testNow))
	assert.True(t, p.HighBudgetUtilization())
	assert.True(t, p.RequiresReview(testNow))
	assert.True(t, p.SociallyInclusive())
	assert.False(t, p.EnvironmentallyFriendly())
	assert.Equal(t, "85.00%", p.UtilizationFormatted())

	p.PolicyCategory = PolicyEnvironment
	assert.True(t, p.EnvironmentallyFriendly())
}
