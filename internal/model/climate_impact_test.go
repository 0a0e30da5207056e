package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClimateImpactInitialize(t *testing.T) {
	c := &ClimateImpact{}
	c.Initialize(testNow, stubGenerator{})

	assert.Equal(t, "IMP250314CAFE0001", c.ImpactCode)
	assert.Equal(t, testNow, *c.ReportDate)
	assert.Equal(t, WarningNone, c.WarningEffectiveness)
	assert.Equal(t, ResponseFair, c.ResponseEffectiveness)
	assert.Equal(t, 1, c.WarningEffectiveness.Score())
	assert.Equal(t, 2, c.ResponseEffectiveness.Score())
}

func TestClimateImpactDuration(t *testing.T) {
	c := &ClimateImpact{EventStartDate: timePtr(testNow.AddDate(0, 0, -9))}
	require.NoError(t, c.Recompute(testNow))
	assert.Nil(t, c.EventDurationDays, "no duration while the event is open")
	assert.True(t, c.Ongoing(testNow))

	c.EventEndDate = timePtr(testNow)
	require.NoError(t, c.Recompute(testNow))
	require.NotNil(t, c.EventDurationDays)
	assert.Equal(t, 10, *c.EventDurationDays, "both ends count")

	c.EventEndDate = timePtr(testNow.AddDate(0, 0, -20))
	require.NoError(t, c.Recompute(testNow))
	assert.Nil(t, c.EventDurationDays, "end before start has no duration")
}

func TestClimateImpactVerification(t *testing.T) {
	c := &ClimateImpact{}
	require.NoError(t, c.Recompute(testNow))
	assert.Nil(t, c.VerificationDate)

	c.Verified = true
	require.NoError(t, c.Recompute(testNow))
	assert.Equal(t, testNow, *c.VerificationDate)

	later := testNow.AddDate(0, 0, 2)
	require.NoError(t, c.Recompute(later))
	assert.Equal(t, testNow, *c.VerificationDate, "first verification is kept")
}

func TestClimateImpactSeverity(t *testing.T) {
	tests := []struct {
		name string
		loss decimal.NullDecimal
		want ImpactSeverity
	}{
		{name: "no loss recorded", loss: decimal.NullDecimal{}, want: ImpactLow},
		{name: "below moderate", loss: nullDec("9999.99"), want: ImpactLow},
		{name: "moderate bound", loss: nullDec("10000"), want: ImpactModerate},
		{name: "high bound", loss: nullDec("100000"), want: ImpactHigh},
		{name: "catastrophic bound", loss: nullDec("1000000"), want: ImpactCatastrophic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ClimateImpact{EconomicLoss: tt.loss}
			assert.Equal(t, tt.want, c.Severity())
		})
	}
}

func TestClimateImpactPredicates(t *testing.T) {
	c := &ClimateImpact{
		Event:            EventFlood,
		Intensity:        IntensityModerate,
		EventStartDate:   timePtr(testNow.AddDate(0, 0, -30)),
		EventEndDate:     timePtr(testNow.AddDate(0, 0, -1)),
		EconomicLoss:     nullDec("20000"),
		InsurancePayout:  nullDec("1500"),
		InternationalAid: nullDec("500"),
	}

	assert.True(t, c.Event.Weather())
	assert.True(t, c.Event.WaterRelated())
	assert.False(t, c.Event.TemperatureRelated())
	assert.False(t, c.Ongoing(testNow))
	assert.True(t, c.Recent(testNow))
	assert.False(t, c.Recent(testNow.AddDate(0, 0, 1)))
	assert.False(t, c.SignificantEconomicImpact())
	assert.False(t, c.RequiresEmergencyResponse())
	assertDecimal(t, "2000", c.TotalAssistance())

	c.Intensity = IntensityExtreme
	assert.True(t, c.RequiresEmergencyResponse())

	c.Intensity = IntensityMild
	c.EconomicLoss = nullDec("50000")
	assert.True(t, c.RequiresEmergencyResponse())

	assert.True(t, EventPestOutbreak.Biological())
	assert.False(t, EventPestOutbreak.Weather())
}
