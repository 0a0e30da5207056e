package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarketPriceDefaults(t *testing.T) {
	m := &MarketPrice{PricePerKg: dec("450")}
	m.Initialize(testNow, stubGenerator{})

	assert.Equal(t, testNow, m.PriceDate)
	assert.Equal(t, "RWF", m.Currency)
	assert.Equal(t, TrendStable, m.PriceTrend)
	assert.Equal(t, 5, m.ReliabilityScore)
	assert.True(t, m.ReliableData())
	assert.Equal(t, "RWF 450.00/kg", m.PriceFormatted())
}

func TestMarketPriceCosts(t *testing.T) {
	m := &MarketPrice{
		PricePerKg:     dec("400"),
		TransportCost:  nullDec("25"),
		StorageCost:    nullDec("10.5"),
		SeasonalFactor: nullDec("1.15"),
	}

	assertDecimal(t, "435.5", m.TotalCostPerKg())
	assertDecimal(t, "460", m.AdjustedPrice())
	assert.False(t, m.HighPrice())
	assert.False(t, m.LowPrice())
}

func TestMarketPriceSignals(t *testing.T) {
	m := &MarketPrice{
		PriceDate:   testNow.AddDate(0, 0, -40),
		DemandLevel: DemandVeryHigh,
		SupplyLevel: SupplyLow,
		PriceTrend:  TrendIncreasing,
	}

	assert.True(t, m.MarketOpportunity())
	assert.True(t, m.OutdatedPrice(testNow))
	assert.False(t, m.RecentPrice(testNow))
	assert.Equal(t, 40, m.DaysOld(testNow))
}
