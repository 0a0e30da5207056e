package service

import (
	"go.uber.org/zap"

	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
)

// Records groups the record services of every entity kind.
type Records struct {
	Farms           *RecordService[model.Farm, *model.Farm]
	Crops           *RecordService[model.Crop, *model.Crop]
	Buyers          *RecordService[model.Buyer, *model.Buyer]
	Productions     *RecordService[model.CropProduction, *model.CropProduction]
	Fertilizers     *RecordService[model.FertilizerUsage, *model.FertilizerUsage]
	Irrigation      *RecordService[model.IrrigationData, *model.IrrigationData]
	MarketPrices    *RecordService[model.MarketPrice, *model.MarketPrice]
	Inventory       *RecordService[model.Inventory, *model.Inventory]
	SupplyChain     *RecordService[model.SupplyChain, *model.SupplyChain]
	Transactions    *RecordService[model.Transaction, *model.Transaction]
	Environmental   *RecordService[model.EnvironmentalData, *model.EnvironmentalData]
	Alerts          *RecordService[model.FoodSecurityAlert, *model.FoodSecurityAlert]
	Predictions     *RecordService[model.ProductionPrediction, *model.ProductionPrediction]
	Recommendations *RecordService[model.ResourceRecommendation, *model.ResourceRecommendation]
	Policies        *RecordService[model.PolicyData, *model.PolicyData]
	ClimateImpacts  *RecordService[model.ClimateImpact, *model.ClimateImpact]
}

func NewRecords(stores *repository.Stores, m *metrics.Metrics, log *zap.Logger) *Records {
	return &Records{
		Farms:           NewRecordService(stores.Farms, m, log),
		Crops:           NewRecordService(stores.Crops, m, log),
		Buyers:          NewRecordService(stores.Buyers, m, log),
		Productions:     NewRecordService(stores.Productions, m, log),
		Fertilizers:     NewRecordService(stores.Fertilizers, m, log),
		Irrigation:      NewRecordService(stores.Irrigation, m, log),
		MarketPrices:    NewRecordService(stores.MarketPrices, m, log),
		Inventory:       NewRecordService(stores.Inventory, m, log),
		SupplyChain:     NewRecordService(stores.SupplyChain, m, log),
		Transactions:    NewRecordService(stores.Transactions, m, log),
		Environmental:   NewRecordService(stores.Environmental, m, log),
		Alerts:          NewRecordService(stores.Alerts, m, log),
		Predictions:     NewRecordService(stores.Predictions, m, log),
		Recommendations: NewRecordService(stores.Recommendations, m, log),
		Policies:        NewRecordService(stores.Policies, m, log),
		ClimateImpacts:  NewRecordService(stores.ClimateImpacts, m, log),
	}
}
