package service

import (
	"context"
	"math"
	"sort"
	"time"

	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
)

// Supported aggregation levels.
const (
	AggregationDaily   = "daily"
	AggregationWeekly  = "weekly"
	AggregationMonthly = "monthly"
)

// AnalyticsService defines the interface for irrigation analytics operations
type AnalyticsService interface {
	FarmExists(ctx context.Context, farmID string) (bool, error)
	GetIrrigationAnalytics(ctx context.Context, farmID string, sector *string, startDate, endDate time.Time, aggregation string) (*AnalyticsResponse, error)
}

// AnalyticsResponse represents the analytics data response
type AnalyticsResponse struct {
	FarmID           string                 `json:"farm_id"`
	Sector           *string                `json:"sector,omitempty"`
	Period           PeriodInfo             `json:"period"`
	Aggregation      string                 `json:"aggregation"`
	Data             []AggregatedDataPoint  `json:"data"`
	Summary          AnalyticsSummary       `json:"summary"`
	PeriodComparison PeriodComparison       `json:"period_comparison"`
	SectorBreakdown  []SectorBreakdown      `json:"sector_breakdown,omitempty"`
	YearOverYear     YearOverYearComparison `json:"year_over_year"`
}

// PeriodInfo contains date range information
type PeriodInfo struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// AggregatedDataPoint represents a single aggregated period
type AggregatedDataPoint struct {
	Period           time.Time `json:"period"`
	WaterVolume      float64   `json:"water_volume"` // liters
	Duration         int       `json:"duration"`     // in minutes
	Efficiency       float64   `json:"efficiency"`   // real_amount / nominal_amount
	EventCount       int       `json:"event_count"`
	RealAmount       float64   `json:"real_amount"`
	NominalAmount    float64   `json:"nominal_amount"`
	WaterCost        float64   `json:"water_cost"`
	MoistureIncrease float64   `json:"moisture_increase"` // average over events with readings
}

// AnalyticsSummary contains summary statistics
type AnalyticsSummary struct {
	TotalWaterVolume        float64 `json:"total_water_volume"`
	TotalDuration           int     `json:"total_duration"` // in minutes
	AverageEfficiency       float64 `json:"average_efficiency"`
	TotalEvents             int     `json:"total_events"`
	TotalRealAmount         float64 `json:"total_real_amount"`
	TotalNominalAmount      float64 `json:"total_nominal_amount"`
	TotalWaterCost          float64 `json:"total_water_cost"`
	AverageMoistureIncrease float64 `json:"average_moisture_increase"`
}

// PeriodComparison contains comparison metrics between periods
type PeriodComparison struct {
	OneYearAgo  *PeriodMetrics `json:"one_year_ago,omitempty"`
	TwoYearsAgo *PeriodMetrics `json:"two_years_ago,omitempty"`
}

// PeriodMetrics contains metrics for a specific period with percentage changes
type PeriodMetrics struct {
	Period                  PeriodInfo `json:"period"`
	TotalWaterVolume        float64    `json:"total_water_volume"`
	TotalEvents             int        `json:"total_events"`
	AverageEfficiency       float64    `json:"average_efficiency"`
	VolumeChangePercent     float64    `json:"volume_change_percent"`
	EventsChangePercent     float64    `json:"events_change_percent"`
	EfficiencyChangePercent float64    `json:"efficiency_change_percent"`
}

// SectorBreakdown contains analytics broken down by sector
type SectorBreakdown struct {
	Sector             string  `json:"sector"`
	TotalWaterVolume   float64 `json:"total_water_volume"`
	TotalEvents        int     `json:"total_events"`
	AverageEfficiency  float64 `json:"average_efficiency"`
	TotalRealAmount    float64 `json:"total_real_amount"`
	TotalNominalAmount float64 `json:"total_nominal_amount"`
	TotalWaterCost     float64 `json:"total_water_cost"`
}

// YearOverYearComparison contains YoY comparison data
type YearOverYearComparison struct {
	OneYearAgo  *YearComparison `json:"one_year_ago,omitempty"`
	TwoYearsAgo *YearComparison `json:"two_years_ago,omitempty"`
}

// YearComparison contains comparison metrics for a specific year
type YearComparison struct {
	Period            PeriodInfo `json:"period"`
	TotalWaterVolume  float64    `json:"total_water_volume"`
	TotalDuration     int        `json:"total_duration"`
	AverageEfficiency float64    `json:"average_efficiency"`
	TotalEvents       int        `json:"total_events"`
	ChangePercent     float64    `json:"change_percent"` // volume change from the current period
}

// bucket accumulates the events of one period or sector.
type bucket struct {
	period        time.Time
	sector        string
	waterVolume   float64
	duration      int
	events        int
	realAmount    float64
	nominalAmount float64
	waterCost     float64
	moistureSum   float64
	moistureCount int
}

func (b *bucket) add(r *model.IrrigationData) {
	water := r.WaterAmount.InexactFloat64()
	b.waterVolume += water
	b.duration += r.Duration
	b.events++
	if r.PlannedAmount.Valid {
		b.realAmount += water
		b.nominalAmount += r.PlannedAmount.Decimal.InexactFloat64()
	}
	if r.TotalCost.Valid {
		b.waterCost += r.TotalCost.Decimal.InexactFloat64()
	}
	if inc, ok := r.MoistureIncrease(); ok {
		b.moistureSum += inc.InexactFloat64()
		b.moistureCount++
	}
}

// analyticsService implements AnalyticsService
type analyticsService struct {
	repo repository.IrrigationRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo repository.IrrigationRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// FarmExists checks if a farm exists
func (s *analyticsService) FarmExists(ctx context.Context, farmID string) (bool, error) {
	return s.repo.FarmExists(ctx, farmID)
}

// GetIrrigationAnalytics retrieves and processes irrigation analytics for [startDate, endDate)
func (s *analyticsService) GetIrrigationAnalytics(ctx context.Context, farmID string, sector *string, startDate, endDate time.Time, aggregation string) (*AnalyticsResponse, error) {
	if aggregation != AggregationDaily && aggregation != AggregationWeekly && aggregation != AggregationMonthly {
		aggregation = AggregationDaily
	}

	records, err := s.repo.Records(ctx, farmID, sector, startDate, endDate)
	if err != nil {
		return nil, err
	}

	buckets := s.aggregate(records, aggregation)
	dataPoints := s.processDataPoints(buckets)
	summary := s.calculateSummary(buckets)

	previous := make(map[int]AnalyticsSummary, 2)
	for _, years := range []int{1, 2} {
		past, err := s.repo.Records(ctx, farmID, sector, startDate.AddDate(-years, 0, 0), endDate.AddDate(-years, 0, 0))
		if err != nil {
			return nil, err
		}
		if len(past) > 0 {
			previous[years] = s.calculateSummary(s.aggregate(past, aggregation))
		}
	}

	var sectorBreakdown []SectorBreakdown
	if sector == nil {
		sectorBreakdown = s.calculateSectorBreakdown(records)
	}

	return &AnalyticsResponse{
		FarmID: farmID,
		Sector: sector,
		Period: PeriodInfo{
			StartDate: startDate,
			EndDate:   endDate,
		},
		Aggregation:      aggregation,
		Data:             dataPoints,
		Summary:          summary,
		PeriodComparison: s.calculatePeriodComparison(startDate, endDate, summary, previous),
		SectorBreakdown:  sectorBreakdown,
		YearOverYear:     s.calculateYearOverYear(startDate, endDate, summary, previous),
	}, nil
}

// periodStart truncates t to the start of its aggregation period in UTC.
// Weeks start on Monday.
func periodStart(t time.Time, aggregation string) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch aggregation {
	case AggregationWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case AggregationMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return day
}

// aggregate groups records by period, oldest period first.
func (s *analyticsService) aggregate(records []model.IrrigationData, aggregation string) []*bucket {
	index := make(map[time.Time]*bucket)
	var out []*bucket
	for i := range records {
		p := periodStart(records[i].IrrigationDate, aggregation)
		b, ok := index[p]
		if !ok {
			b = &bucket{period: p}
			index[p] = b
			out = append(out, b)
		}
		b.add(&records[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].period.Before(out[j].period) })
	return out
}

// calculateEfficiency calculates efficiency = real_amount / nominal_amount
// Returns 0 when the nominal amount is not set
func (s *analyticsService) calculateEfficiency(realAmount, nominalAmount float64) float64 {
	if nominalAmount == 0 {
		return 0.0
	}
	efficiency := realAmount / nominalAmount
	return math.Round(efficiency*10000) / 10000 // Round to 4 decimal places
}

// bucketEfficiency falls back to one liter per minute as the nominal volume when
// no event of the bucket carried a planned amount.
func (s *analyticsService) bucketEfficiency(b *bucket) float64 {
	efficiency := s.calculateEfficiency(b.realAmount, b.nominalAmount)
	if efficiency == 0 && b.nominalAmount == 0 && b.waterVolume > 0 && b.duration > 0 {
		nominalVolume := float64(b.duration) * 1.0
		efficiency = s.calculateEfficiency(b.waterVolume, nominalVolume)
	}
	return efficiency
}

func (b *bucket) averageMoisture() float64 {
	if b.moistureCount == 0 {
		return 0
	}
	return round2(b.moistureSum / float64(b.moistureCount))
}

// processDataPoints converts buckets to data points with efficiency calculation
func (s *analyticsService) processDataPoints(buckets []*bucket) []AggregatedDataPoint {
	points := make([]AggregatedDataPoint, 0, len(buckets))

	for _, b := range buckets {
		points = append(points, AggregatedDataPoint{
			Period:           b.period,
			WaterVolume:      round2(b.waterVolume),
			Duration:         b.duration,
			Efficiency:       s.bucketEfficiency(b),
			EventCount:       b.events,
			RealAmount:       round2(b.realAmount),
			NominalAmount:    round2(b.nominalAmount),
			WaterCost:        round2(b.waterCost),
			MoistureIncrease: b.averageMoisture(),
		})
	}

	return points
}

// calculateSummary computes summary statistics
func (s *analyticsService) calculateSummary(buckets []*bucket) AnalyticsSummary {
	var total bucket
	var totalEfficiency float64
	var efficiencyCount int

	for _, b := range buckets {
		total.waterVolume += b.waterVolume
		total.duration += b.duration
		total.events += b.events
		total.realAmount += b.realAmount
		total.nominalAmount += b.nominalAmount
		total.waterCost += b.waterCost
		total.moistureSum += b.moistureSum
		total.moistureCount += b.moistureCount

		if efficiency := s.bucketEfficiency(b); efficiency > 0 {
			totalEfficiency += efficiency
			efficiencyCount++
		}
	}

	avgEfficiency := 0.0
	if efficiencyCount > 0 {
		avgEfficiency = totalEfficiency / float64(efficiencyCount)
	}

	return AnalyticsSummary{
		TotalWaterVolume:        round2(total.waterVolume),
		TotalDuration:           total.duration,
		AverageEfficiency:       math.Round(avgEfficiency*10000) / 10000,
		TotalEvents:             total.events,
		TotalRealAmount:         round2(total.realAmount),
		TotalNominalAmount:      round2(total.nominalAmount),
		TotalWaterCost:          round2(total.waterCost),
		AverageMoistureIncrease: total.averageMoisture(),
	}
}

// calculatePeriodComparison computes period comparison with percentage changes for volume, events, and efficiency
func (s *analyticsService) calculatePeriodComparison(startDate, endDate time.Time, current AnalyticsSummary, previous map[int]AnalyticsSummary) PeriodComparison {
	metricsFor := func(years int) *PeriodMetrics {
		past, ok := previous[years]
		if !ok {
			return nil
		}
		return &PeriodMetrics{
			Period: PeriodInfo{
				StartDate: startDate.AddDate(-years, 0, 0),
				EndDate:   endDate.AddDate(-years, 0, 0),
			},
			TotalWaterVolume:        past.TotalWaterVolume,
			TotalEvents:             past.TotalEvents,
			AverageEfficiency:       past.AverageEfficiency,
			VolumeChangePercent:     s.calculateChangePercent(current.TotalWaterVolume, past.TotalWaterVolume),
			EventsChangePercent:     s.calculateChangePercent(float64(current.TotalEvents), float64(past.TotalEvents)),
			EfficiencyChangePercent: s.calculateChangePercent(current.AverageEfficiency, past.AverageEfficiency),
		}
	}
	return PeriodComparison{OneYearAgo: metricsFor(1), TwoYearsAgo: metricsFor(2)}
}

// calculateSectorBreakdown computes analytics broken down by sector, sorted by sector name
func (s *analyticsService) calculateSectorBreakdown(records []model.IrrigationData) []SectorBreakdown {
	sectorMap := make(map[string]*bucket)
	for i := range records {
		name := records[i].Sector
		b, ok := sectorMap[name]
		if !ok {
			b = &bucket{sector: name}
			sectorMap[name] = b
		}
		b.add(&records[i])
	}

	breakdowns := make([]SectorBreakdown, 0, len(sectorMap))
	for _, b := range sectorMap {
		breakdowns = append(breakdowns, SectorBreakdown{
			Sector:             b.sector,
			TotalWaterVolume:   round2(b.waterVolume),
			TotalEvents:        b.events,
			AverageEfficiency:  s.bucketEfficiency(b),
			TotalRealAmount:    round2(b.realAmount),
			TotalNominalAmount: round2(b.nominalAmount),
			TotalWaterCost:     round2(b.waterCost),
		})
	}
	sort.Slice(breakdowns, func(i, j int) bool { return breakdowns[i].Sector < breakdowns[j].Sector })

	return breakdowns
}

// calculateYearOverYear computes YoY volume comparisons
func (s *analyticsService) calculateYearOverYear(startDate, endDate time.Time, current AnalyticsSummary, previous map[int]AnalyticsSummary) YearOverYearComparison {
	comparisonFor := func(years int) *YearComparison {
		past, ok := previous[years]
		if !ok {
			return nil
		}
		return &YearComparison{
			Period: PeriodInfo{
				StartDate: startDate.AddDate(-years, 0, 0),
				EndDate:   endDate.AddDate(-years, 0, 0),
			},
			TotalWaterVolume:  past.TotalWaterVolume,
			TotalDuration:     past.TotalDuration,
			AverageEfficiency: past.AverageEfficiency,
			TotalEvents:       past.TotalEvents,
			ChangePercent:     s.calculateChangePercent(current.TotalWaterVolume, past.TotalWaterVolume),
		}
	}
	return YearOverYearComparison{OneYearAgo: comparisonFor(1), TwoYearsAgo: comparisonFor(2)}
}

// calculateChangePercent calculates percentage change between two values
// A zero previous value reports 100 for any non-zero current value
func (s *analyticsService) calculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0.0
		}
		return 100.0
	}
	change := ((current - previous) / previous) * 100
	return round2(change)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
