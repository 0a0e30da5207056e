package repository

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/model"
)

// SeedSummary counts the records written by a seed run.
type SeedSummary struct {
	Farms             int
	Crops             int
	IrrigationRecords int
	Inventory         int
	Other             int
}

// Seeder loads a demo dataset through the regular write path.
type Seeder struct {
	db     *gorm.DB
	stores *Stores
	clock  clock.Clock
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSeeder creates a seeder. The random source is seeded so runs are reproducible.
func NewSeeder(db *gorm.DB, stores *Stores, clk clock.Clock, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{db: db, stores: stores, clock: clk, rng: rand.New(rand.NewSource(42)), logger: logger}
}

// SeedDatabase replaces existing data with farms, crops, ninety days of irrigation
// events and one record of every other kind.
func (s *Seeder) SeedDatabase(ctx context.Context) (SeedSummary, error) {
	var summary SeedSummary

	if err := s.clearExistingData(ctx); err != nil {
		return summary, fmt.Errorf("failed to clear existing data: %w", err)
	}

	farms, err := s.createFarms(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to create farms: %w", err)
	}
	summary.Farms = len(farms)

	crops, err := s.createCrops(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to create crops: %w", err)
	}
	summary.Crops = len(crops)

	summary.IrrigationRecords, err = s.createIrrigationData(ctx, farms)
	if err != nil {
		return summary, fmt.Errorf("failed to create irrigation data: %w", err)
	}

	summary.Inventory, summary.Other, err = s.createTradeRecords(ctx, farms[0], crops[0])
	if err != nil {
		return summary, fmt.Errorf("failed to create trade records: %w", err)
	}

	s.logger.Info("seeded database",
		zap.Int("farms", summary.Farms),
		zap.Int("crops", summary.Crops),
		zap.Int("irrigation_records", summary.IrrigationRecords),
		zap.Int("inventory", summary.Inventory),
		zap.Int("other", summary.Other))

	return summary, nil
}

// clearExistingData hard-deletes every row, children first.
func (s *Seeder) clearExistingData(ctx context.Context) error {
	entities := model.All()
	tx := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
	for i := len(entities) - 1; i >= 0; i-- {
		if err := tx.Delete(entities[i]).Error; err != nil {
			return fmt.Errorf("clear %s: %w", entities[i].TableName(), err)
		}
	}
	return nil
}

func (s *Seeder) createFarms(ctx context.Context) ([]*model.Farm, error) {
	farms := []*model.Farm{
		{
			Name:        "Green Valley Farm",
			Location:    "Nyagatare",
			District:    "Nyagatare",
			TotalArea:   decimal.NewFromInt(500),
			Description: "A large-scale agricultural operation specializing in maize and beans",
		},
		{
			Name:        "Sunset Orchard",
			Location:    "Rubavu",
			District:    "Rubavu",
			TotalArea:   decimal.NewFromInt(350),
			Description: "Family-owned orchard producing avocados and passion fruit",
		},
	}

	for _, f := range farms {
		if err := s.stores.Farms.Create(ctx, f); err != nil {
			return nil, err
		}
	}
	return farms, nil
}

func (s *Seeder) createCrops(ctx context.Context) ([]*model.Crop, error) {
	crops := []*model.Crop{
		{Name: "Maize", Variety: "ZM 607", CropType: model.CropCereals, GrowingPeriodDays: intPtr(120), MarketDemand: model.DemandHigh},
		{Name: "Avocado", Variety: "Hass", CropType: model.CropFruits, StorageLifeDays: intPtr(21), MarketDemand: model.DemandVeryHigh},
	}

	for _, c := range crops {
		if err := s.stores.Crops.Create(ctx, c); err != nil {
			return nil, err
		}
	}
	return crops, nil
}

// createIrrigationData writes 1-3 events per farm per day over the last ninety days.
func (s *Seeder) createIrrigationData(ctx context.Context, farms []*model.Farm) (int, error) {
	now := s.clock.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -90)
	sectors := []string{"Sector 1", "Sector 2", "Sector 3"}
	methods := []model.IrrigationMethod{model.IrrigationDrip, model.IrrigationSprinkler, model.IrrigationFurrow}

	total := 0
	for day := start; day.Before(now); day = day.AddDate(0, 0, 1) {
		for _, farm := range farms {
			eventsPerDay := s.rng.Intn(3) + 1

			for i := 0; i < eventsPerDay; i++ {
				startTime := day.Add(time.Duration(s.rng.Intn(14)+6)*time.Hour + time.Duration(s.rng.Intn(60))*time.Minute)

				// 30 minutes to 4 hours at a nominal 1 liter per minute
				durationMinutes := s.rng.Intn(210) + 30
				endTime := startTime.Add(time.Duration(durationMinutes) * time.Minute)
				planned := float64(durationMinutes)

				// Delivered water varies between 70% and 130% of plan
				delivered := planned * (0.7 + s.rng.Float64()*0.6)

				before := 20 + s.rng.Float64()*15

				rec := &model.IrrigationData{
					FarmID:             farm.ID,
					Sector:             sectors[s.rng.Intn(len(sectors))],
					IrrigationDate:     startTime,
					EndTime:            &endTime,
					WaterAmount:        decimal.NewFromFloat(delivered).Round(2),
					PlannedAmount:      decimal.NewNullDecimal(decimal.NewFromFloat(planned)),
					Method:             methods[s.rng.Intn(len(methods))],
					WaterSource:        model.WaterWell,
					WaterCost:          decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
					SoilMoistureBefore: decimal.NewNullDecimal(decimal.NewFromFloat(before).Round(2)),
					SoilMoistureAfter:  decimal.NewNullDecimal(decimal.NewFromFloat(before + 10 + s.rng.Float64()*20).Round(2)),
				}
				if err := s.stores.Irrigation.Create(ctx, rec); err != nil {
					return total, err
				}
				total++
			}
		}
	}
	return total, nil
}

func (s *Seeder) createTradeRecords(ctx context.Context, farm *model.Farm, crop *model.Crop) (int, int, error) {
	now := s.clock.Now()
	other := 0

	lot := &model.Inventory{
		FarmID:               farm.ID,
		CropID:               crop.ID,
		StorageLocation:      "Nyagatare cooperative store",
		FacilityType:         model.FacilityWarehouse,
		CurrentQuantity:      decimal.NewFromInt(12000),
		MinimumStockLevel:    decimal.NewNullDecimal(decimal.NewFromInt(1000)),
		PurchasePricePerUnit: decimal.NewNullDecimal(decimal.NewFromInt(280)),
		MarketValuePerUnit:   decimal.NewNullDecimal(decimal.NewFromInt(350)),
		ShelfLifeDays:        intPtr(180),
		PestStatus:           model.PestFree,
	}
	if err := s.stores.Inventory.Create(ctx, lot); err != nil {
		return 0, 0, err
	}

	buyer := &model.Buyer{CompanyName: "Kigali Grain Traders", BuyerType: model.BuyerWholesaler, CreditRating: model.CreditA}
	price := &model.MarketPrice{
		CropID: crop.ID, MarketName: "Kimironko", MarketType: model.MarketWholesale,
		PricePerKg: decimal.NewFromInt(350), DemandLevel: model.DemandHigh,
	}
	stage := &model.SupplyChain{
		InventoryID: lot.ID, CropID: crop.ID, Stage: model.StageStorage,
		QuantityIn: decimal.NewFromInt(12500), QuantityOut: decimal.NewNullDecimal(decimal.NewFromInt(12000)),
	}
	population := int64(25000)
	alert := &model.FoodSecurityAlert{
		Title: "Late rains in the Eastern Province", Category: model.AlertWeather,
		AlertLevel: model.LevelMedium, AffectedPopulation: &population,
		AffectedDistricts: []string{"Nyagatare", "Kayonza"},
		ExpiryDate:        timePtr(now.AddDate(0, 0, 30)),
	}
	rec := &model.ResourceRecommendation{
		FarmID: farm.ID, CropID: crop.ID, ResourceType: model.ResourceWater,
		Category: model.CategorySeasonal, Title: "Switch sector 3 to drip irrigation",
		EstimatedCost: decimal.NewNullDecimal(decimal.NewFromInt(450000)),
	}
	env := &model.EnvironmentalData{FarmID: farm.ID, Location: farm.Location, AirQualityIndex: floatPtr(42), WaterQualityIndex: floatPtr(76)}
	prediction := &model.ProductionPrediction{
		CropID: crop.ID, FarmID: farm.ID, Season: model.SeasonA,
		PredictionType: model.PredictTotalProduction, PredictedValue: decimal.NewFromInt(14000), Unit: "KG",
	}
	policy := &model.PolicyData{
		PolicyName: "Crop Intensification Program", PolicyType: model.PolicySupportProgram,
		PolicyCategory: model.PolicyProduction, GeographicScope: model.ScopeNational,
		Description: "Subsidized seed and fertilizer for consolidated land use",
		ImplementingAgency: "Rwanda Agriculture Board", Status: model.PolicyActive,
		EffectiveDate:   timePtr(now.AddDate(-2, 0, 0)),
		ExpiryDate:      timePtr(now.AddDate(1, 0, 0)),
		BudgetAllocated: decimal.NewNullDecimal(decimal.NewFromInt(3_000_000_000)),
		BudgetUtilized:  decimal.NewNullDecimal(decimal.NewFromInt(2_350_000_000)),
		YouthFocus:      true,
	}
	impact := &model.ClimateImpact{
		CropID: crop.ID, Region: "Eastern", District: farm.District, Year: now.Year(), Season: model.SeasonA,
		Event: model.EventDrought, Intensity: model.IntensitySevere,
		EventStartDate: timePtr(now.AddDate(0, 0, -40)), EventEndDate: timePtr(now.AddDate(0, 0, -12)),
		YieldImpact:  decimal.NewNullDecimal(decimal.NewFromInt(-35)),
		EconomicLoss: decimal.NewNullDecimal(decimal.NewFromInt(180000)),
	}

	if err := s.stores.Buyers.Create(ctx, buyer); err != nil {
		return 1, other, err
	}
	other++

	steps := []func() error{
		func() error { return s.stores.MarketPrices.Create(ctx, price) },
		func() error { return s.stores.SupplyChain.Create(ctx, stage) },
		func() error {
			return s.stores.Transactions.Create(ctx, &model.Transaction{
				BuyerID: buyer.ID, FarmerID: farm.ID, InventoryID: lot.ID, CropID: crop.ID,
				Quantity: decimal.NewFromInt(2000), PricePerUnit: decimal.NewFromInt(340),
				TransportCost:           decimal.NewNullDecimal(decimal.NewFromInt(20000)),
				TransportResponsibility: model.TransportShared,
			})
		},
		func() error { return s.stores.Alerts.Create(ctx, alert) },
		func() error { return s.stores.Recommendations.Create(ctx, rec) },
		func() error { return s.stores.Environmental.Create(ctx, env) },
		func() error { return s.stores.Predictions.Create(ctx, prediction) },
		func() error { return s.stores.Policies.Create(ctx, policy) },
		func() error { return s.stores.ClimateImpacts.Create(ctx, impact) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return 1, other, err
		}
		other++
	}
	return 1, other, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
