package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleEntities() []Entity {
	pop := int64(50000)
	return []Entity{
		&Inventory{
			FarmID: "FM-1", CropID: "CR-1", StorageLocation: "Silo 3", FacilityType: FacilitySilo,
			CurrentQuantity: dec("100"), ReservedQuantity: dec("30"),
			PurchasePricePerUnit: nullDec("200"), MarketValuePerUnit: nullDec("250"),
			ShelfLifeDays: intPtr(90),
		},
		&SupplyChain{CropID: "CR-1", Stage: StageStorage, QuantityIn: dec("1000"), QuantityOut: nullDec("950")},
		&Transaction{
			BuyerID: "BY-1", FarmerID: "F-1", CropID: "CR-1",
			Quantity: dec("100"), PricePerUnit: dec("250.50"),
			TransportCost: nullDec("1000"), TransportResponsibility: TransportShared,
		},
		&EnvironmentalData{Location: "Musanze", AirQualityIndex: floatPtr(120), WaterQualityIndex: floatPtr(55)},
		&FoodSecurityAlert{Title: "Drought", Category: AlertWeather, AlertLevel: LevelHigh, EscalationLevel: 2, AffectedPopulation: &pop},
		&ProductionPrediction{CropID: "CR-1", PredictionType: PredictYield, PredictedValue: dec("1000"), ActualValue: nullDec("900")},
		&ResourceRecommendation{FarmID: "FM-1", ResourceType: ResourceWater, Category: CategorySeasonal, Title: "Drip"},
		&IrrigationData{FarmID: "FM-1", IrrigationDate: testNow, WaterAmount: dec("500"), WaterCost: nullDec("0.5")},
		&PolicyData{
			PolicyName: "Fertilizer subsidy", PolicyType: PolicySubsidy, PolicyCategory: PolicyProduction,
			EffectiveDate: timePtr(testNow.AddDate(-1, 0, 0)), ExpiryDate: timePtr(testNow.AddDate(0, 0, -3)),
			BudgetAllocated: nullDec("800"), BudgetUtilized: nullDec("600"), Status: PolicyActive,
		},
		&ClimateImpact{
			CropID: "CR-1", Region: "East", Year: 2025, Season: SeasonA, Event: EventDrought, Intensity: IntensitySevere,
			EventStartDate: timePtr(testNow.AddDate(0, 0, -10)), EventEndDate: timePtr(testNow), Verified: true,
		},
	}
}

func snapshot(t *testing.T, e Entity) string {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return string(b)
}
