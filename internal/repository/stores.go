package repository

import (
	"gorm.io/gorm"

	"smart-agriculture/internal/clock"
	"smart-agriculture/internal/model"
)

// Stores groups the write path of every entity kind.
type Stores struct {
	Farms           *Store[model.Farm, *model.Farm]
	Crops           *Store[model.Crop, *model.Crop]
	Buyers          *Store[model.Buyer, *model.Buyer]
	Productions     *Store[model.CropProduction, *model.CropProduction]
	Fertilizers     *Store[model.FertilizerUsage, *model.FertilizerUsage]
	Irrigation      *Store[model.IrrigationData, *model.IrrigationData]
	MarketPrices    *Store[model.MarketPrice, *model.MarketPrice]
	Inventory       *Store[model.Inventory, *model.Inventory]
	SupplyChain     *Store[model.SupplyChain, *model.SupplyChain]
	Transactions    *Store[model.Transaction, *model.Transaction]
	Environmental   *Store[model.EnvironmentalData, *model.EnvironmentalData]
	Alerts          *Store[model.FoodSecurityAlert, *model.FoodSecurityAlert]
	Predictions     *Store[model.ProductionPrediction, *model.ProductionPrediction]
	Recommendations *Store[model.ResourceRecommendation, *model.ResourceRecommendation]
	Policies        *Store[model.PolicyData, *model.PolicyData]
	ClimateImpacts  *Store[model.ClimateImpact, *model.ClimateImpact]
}

func NewStores(db *gorm.DB, clk clock.Clock, ids model.Generator) *Stores {
	return &Stores{
		Farms:           NewStore[model.Farm](db, clk, ids),
		Crops:           NewStore[model.Crop](db, clk, ids),
		Buyers:          NewStore[model.Buyer](db, clk, ids),
		Productions:     NewStore[model.CropProduction](db, clk, ids),
		Fertilizers:     NewStore[model.FertilizerUsage](db, clk, ids),
		Irrigation:      NewStore[model.IrrigationData](db, clk, ids),
		MarketPrices:    NewStore[model.MarketPrice](db, clk, ids),
		Inventory:       NewStore[model.Inventory](db, clk, ids),
		SupplyChain:     NewStore[model.SupplyChain](db, clk, ids),
		Transactions:    NewStore[model.Transaction](db, clk, ids),
		Environmental:   NewStore[model.EnvironmentalData](db, clk, ids),
		Alerts:          NewStore[model.FoodSecurityAlert](db, clk, ids),
		Predictions:     NewStore[model.ProductionPrediction](db, clk, ids),
		Recommendations: NewStore[model.ResourceRecommendation](db, clk, ids),
		Policies:        NewStore[model.PolicyData](db, clk, ids),
		ClimateImpacts:  NewStore[model.ClimateImpact](db, clk, ids),
	}
}
