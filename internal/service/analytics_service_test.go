package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-agriculture/internal/model"
)

// TestCalculateEfficiency tests the calculateEfficiency function
func TestCalculateEfficiency(t *testing.T) {
	service := &analyticsService{}

	tests := []struct {
		name           string
		realAmount     float64
		nominalAmount  float64
		expectedResult float64
	}{
		{name: "perfect efficiency", realAmount: 100.0, nominalAmount: 100.0, expectedResult: 1.0},
		{name: "over delivery", realAmount: 120.0, nominalAmount: 100.0, expectedResult: 1.2},
		{name: "under delivery", realAmount: 80.0, nominalAmount: 100.0, expectedResult: 0.8},
		{name: "nominal is zero, real is zero", realAmount: 0.0, nominalAmount: 0.0, expectedResult: 0.0},
		{name: "nominal is zero, real is positive", realAmount: 100.0, nominalAmount: 0.0, expectedResult: 0.0},
		{name: "real amount is zero", realAmount: 0.0, nominalAmount: 100.0, expectedResult: 0.0},
		{name: "rounds to 4 decimal places", realAmount: 100.123456, nominalAmount: 100.0, expectedResult: 1.0012},
		{name: "small values", realAmount: 0.001, nominalAmount: 0.01, expectedResult: 0.1},
		{name: "large values", realAmount: 1000000.0, nominalAmount: 500000.0, expectedResult: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedResult, service.calculateEfficiency(tt.realAmount, tt.nominalAmount))
		})
	}
}

// TestCalculateChangePercent tests the calculateChangePercent function
func TestCalculateChangePercent(t *testing.T) {
	service := &analyticsService{}

	tests := []struct {
		name           string
		current        float64
		previous       float64
		expectedResult float64
		description    string
	}{
		{name: "positive change", current: 110.0, previous: 100.0, expectedResult: 10.0},
		{name: "negative change", current: 90.0, previous: 100.0, expectedResult: -10.0},
		{name: "no change", current: 100.0, previous: 100.0, expectedResult: 0.0},
		{name: "doubled", current: 200.0, previous: 100.0, expectedResult: 100.0},
		{name: "halved", current: 50.0, previous: 100.0, expectedResult: -50.0},
		{
			name:           "both zero",
			current:        0.0,
			previous:       0.0,
			expectedResult: 0.0,
			description:    "no data in either period is no change",
		},
		{
			name:           "previous is zero",
			current:        1000.0,
			previous:       0.0,
			expectedResult: 100.0,
			description:    "a farm that started irrigating this year",
		},
		{name: "current is zero", current: 0.0, previous: 100.0, expectedResult: -100.0},
		{name: "rounds to 2 decimal places", current: 111.111, previous: 100.0, expectedResult: 11.11},
		{name: "small values", current: 0.11, previous: 0.10, expectedResult: 10.0},
		{name: "negative previous value", current: 100.0, previous: -50.0, expectedResult: -300.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedResult, service.calculateChangePercent(tt.current, tt.previous), tt.description)
		})
	}
}

func TestPeriodStart(t *testing.T) {
	wednesday := time.Date(2025, 3, 5, 17, 45, 0, 0, time.UTC)
	sunday := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), periodStart(wednesday, AggregationDaily))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), periodStart(wednesday, AggregationWeekly))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), periodStart(sunday, AggregationWeekly))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), periodStart(wednesday, AggregationMonthly))
}

func seedIrrigation(t *testing.T, env *testEnv) *model.Farm {
	t.Helper()
	ctx := context.Background()

	farm := &model.Farm{Name: "Green Valley Farm", TotalArea: dec("40")}
	require.NoError(t, env.records.Farms.Create(ctx, farm))

	events := []*model.IrrigationData{
		{
			Sector: "Sector A", IrrigationDate: time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC), Duration: 60,
			WaterAmount: dec("80"), PlannedAmount: nullDec("100"), WaterCost: nullDec("0.5"),
			SoilMoistureBefore: nullDec("20"), SoilMoistureAfter: nullDec("30"),
		},
		{
			Sector: "Sector B", IrrigationDate: time.Date(2025, 3, 5, 7, 0, 0, 0, time.UTC), Duration: 90,
			WaterAmount: dec("120"), PlannedAmount: nullDec("100"),
		},
		{
			Sector: "Sector A", IrrigationDate: time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC), Duration: 30,
			WaterAmount: dec("100"), PlannedAmount: nullDec("100"),
		},
		{
			Sector: "Sector A", IrrigationDate: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), Duration: 75,
			WaterAmount: dec("150"), PlannedAmount: nullDec("150"),
		},
		{
			Sector: "Sector A", IrrigationDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), Duration: 10,
			WaterAmount: dec("999"),
		},
	}
	for _, e := range events {
		e.FarmID = farm.ID
		require.NoError(t, env.records.Irrigation.Create(ctx, e))
	}
	return farm
}

func TestGetIrrigationAnalyticsWeekly(t *testing.T) {
	env := newTestEnv(t)
	farm := seedIrrigation(t, env)
	svc := NewAnalyticsService(env.irrigation)
	ctx := context.Background()

	exists, err := svc.FarmExists(ctx, farm.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetIrrigationAnalytics(ctx, farm.ID, nil, start, end, AggregationWeekly)
	require.NoError(t, err)

	require.Len(t, resp.Data, 2, "the event at the end bound is excluded")
	first := resp.Data[0]
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), first.Period)
	assert.Equal(t, 2, first.EventCount)
	assert.Equal(t, 200.0, first.WaterVolume)
	assert.Equal(t, 150, first.Duration)
	assert.Equal(t, 1.0, first.Efficiency)
	assert.Equal(t, 40.0, first.WaterCost)
	assert.Equal(t, 10.0, first.MoistureIncrease)

	assert.Equal(t, 3, resp.Summary.TotalEvents)
	assert.Equal(t, 300.0, resp.Summary.TotalWaterVolume)
	assert.Equal(t, 1.0, resp.Summary.AverageEfficiency)
	assert.Equal(t, 40.0, resp.Summary.TotalWaterCost)

	require.Len(t, resp.SectorBreakdown, 2)
	assert.Equal(t, "Sector A", resp.SectorBreakdown[0].Sector)
	assert.Equal(t, 180.0, resp.SectorBreakdown[0].TotalWaterVolume)
	assert.InDelta(t, 0.9, resp.SectorBreakdown[0].AverageEfficiency, 1e-9)
	assert.InDelta(t, 1.2, resp.SectorBreakdown[1].AverageEfficiency, 1e-9)

	require.NotNil(t, resp.YearOverYear.OneYearAgo)
	assert.Equal(t, 150.0, resp.YearOverYear.OneYearAgo.TotalWaterVolume)
	assert.Equal(t, 100.0, resp.YearOverYear.OneYearAgo.ChangePercent)
	assert.Nil(t, resp.YearOverYear.TwoYearsAgo)

	require.NotNil(t, resp.PeriodComparison.OneYearAgo)
	assert.Equal(t, 200.0, resp.PeriodComparison.OneYearAgo.EventsChangePercent)
	assert.Equal(t, start.AddDate(-1, 0, 0), resp.PeriodComparison.OneYearAgo.Period.StartDate)
}

func TestGetIrrigationAnalyticsSectorAndFallbacks(t *testing.T) {
	env := newTestEnv(t)
	farm := seedIrrigation(t, env)
	svc := NewAnalyticsService(env.irrigation)
	ctx := context.Background()

	sector := "Sector A"
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.GetIrrigationAnalytics(ctx, farm.ID, &sector, start, end, "hourly")
	require.NoError(t, err)

	assert.Equal(t, AggregationDaily, resp.Aggregation)
	assert.Nil(t, resp.SectorBreakdown)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 180.0, resp.Summary.TotalWaterVolume)

	empty, err := svc.GetIrrigationAnalytics(ctx, "FM-missing", nil, start, end, AggregationMonthly)
	require.NoError(t, err)
	assert.Empty(t, empty.Data)
	assert.Zero(t, empty.Summary.TotalEvents)

	exists, err := svc.FarmExists(ctx, "FM-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBucketEfficiencyFallsBackToDuration(t *testing.T) {
	service := &analyticsService{}
	b := &bucket{waterVolume: 90, duration: 60}
	assert.Equal(t, 1.5, service.bucketEfficiency(b))
}
