package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIrrigationDuration(t *testing.T) {
	end := testNow.Add(95 * time.Minute)
	d := &IrrigationData{IrrigationDate: testNow, EndTime: &end, WaterAmount: dec("400")}
	require.NoError(t, d.Recompute(testNow))

	assert.Equal(t, 95, d.Duration)
	assert.Equal(t, "1h 35m", d.DurationFormatted())

	manual := &IrrigationData{IrrigationDate: testNow, EndTime: &end, Duration: 30}
	require.NoError(t, manual.Recompute(testNow))
	assert.Equal(t, 30, manual.Duration, "recorded durations are kept")
	assert.Equal(t, "30 minutes", manual.DurationFormatted())
}

func TestIrrigationCostAndEfficiency(t *testing.T) {
	d := &IrrigationData{
		WaterAmount:        dec("40"),
		WaterCost:          nullDec("30"),
		PlannedAmount:      nullDec("50"),
		SoilMoistureBefore: nullDec("20"),
		SoilMoistureAfter:  nullDec("50"),
	}
	require.NoError(t, d.Recompute(testNow))

	assertDecimal(t, "1200", d.TotalCost.Decimal)
	assert.True(t, d.ExpensiveIrrigation())

	eff, ok := d.WaterEfficiency()
	require.True(t, ok)
	assertDecimal(t, "0.75", eff)

	level, ok := d.EfficiencyLevel()
	require.True(t, ok)
	assert.Equal(t, EfficiencyHigh, level)

	ratio, ok := d.DeliveryRatio()
	require.True(t, ok)
	assertDecimal(t, "0.8", ratio)
	assert.True(t, d.NeedsOptimization())
}

func TestIrrigationGuards(t *testing.T) {
	d := &IrrigationData{WaterAmount: dec("100")}
	require.NoError(t, d.Recompute(testNow))

	assert.False(t, d.TotalCost.Valid)
	_, ok := d.WaterEfficiency()
	assert.False(t, ok)
	_, ok = d.DeliveryRatio()
	assert.False(t, ok)
	assert.Equal(t, "Not specified", d.DurationFormatted())
}
