package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentalRiskLevel(t *testing.T) {
	tests := []struct {
		name string
		data EnvironmentalData
		want RiskLevel
	}{
		{name: "no factors leaves level unset", data: EnvironmentalData{}, want: ""},
		{name: "clean air", data: EnvironmentalData{AirQualityIndex: floatPtr(30)}, want: RiskLow},
		{name: "hazardous air", data: EnvironmentalData{AirQualityIndex: floatPtr(180)}, want: RiskCritical},
		{
			name: "mixed factors average",
			data: EnvironmentalData{AirQualityIndex: floatPtr(120), WaterQualityIndex: floatPtr(90)},
			want: RiskMedium,
		},
		{
			name: "endangered species ratio",
			data: EnvironmentalData{SpeciesCount: intPtr(100), EndangeredSpeciesCount: intPtr(35)},
			want: RiskCritical,
		},
		{
			name: "zero species skips ratio",
			data: EnvironmentalData{SpeciesCount: intPtr(0), EndangeredSpeciesCount: intPtr(3)},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.data
			require.NoError(t, d.Recompute(testNow))
			assert.Equal(t, tt.want, d.EnvironmentalRiskLevel)
		})
	}
}

func TestEnvironmentalRiskMonotonicInAirQuality(t *testing.T) {
	fixed := []EnvironmentalData{
		{},
		{WaterQualityIndex: floatPtr(70)},
		{WaterQualityIndex: floatPtr(30), DeforestationRate: floatPtr(1)},
		{SoilErosionRate: floatPtr(12), SpeciesCount: intPtr(50), EndangeredSpeciesCount: intPtr(2)},
	}

	for _, base := range fixed {
		prev := 0
		for aqi := 0.0; aqi <= 500; aqi += 5 {
			d := base
			d.AirQualityIndex = floatPtr(aqi)
			require.NoError(t, d.Recompute(testNow))

			got := d.EnvironmentalRiskLevel.Priority()
			assert.GreaterOrEqual(t, got, prev, "aqi=%v", aqi)
			prev = got
		}
	}
}

func TestEnvironmentalValidationDate(t *testing.T) {
	d := &EnvironmentalData{Location: "Huye"}
	d.Initialize(testNow, stubGenerator{})
	require.NoError(t, d.Recompute(testNow))
	assert.Nil(t, d.ValidationDate)

	d.ValidationStatus = ValidationValidated
	d.ValidatedBy = "analyst"
	require.NoError(t, d.Recompute(testNow))
	require.NotNil(t, d.ValidationDate)
	assert.Equal(t, testNow, *d.ValidationDate)
}

func TestEnvironmentalMonitoring(t *testing.T) {
	d := &EnvironmentalData{MeasurementDate: timePtr(testNow.AddDate(0, 0, -10)), MonitoringFrequency: MonitorWeekly}
	assert.True(t, d.MonitoringOverdue(testNow))

	d.MonitoringFrequency = MonitorOnDemand
	_, ok := d.NextMonitoringDue()
	assert.False(t, ok)
	assert.True(t, SourceSatellite.Automated())
	assert.False(t, SourceFieldSurvey.Automated())
}
