package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
)

func TestMarketPriceLatestIsCachedAndInvalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	prices := NewMarketPriceService(env.monitoring, env.records.MarketPrices, time.Minute)

	older := &model.MarketPrice{
		CropID: "CR-1", MarketName: "Kimironko", MarketType: model.MarketWholesale,
		PricePerKg: dec("350"), PriceDate: testNow.AddDate(0, 0, -1),
	}
	require.NoError(t, env.records.MarketPrices.Create(ctx, older))
	assert.Equal(t, 0, prices.Cached(), "writes drop the crop entry")

	latest, err := prices.Latest(ctx, "CR-1")
	require.NoError(t, err)
	assert.True(t, latest.PricePerKg.Equal(dec("350")))
	assert.Equal(t, 1, prices.Cached())

	latest.PricePerKg = dec("1")
	again, err := prices.Latest(ctx, "CR-1")
	require.NoError(t, err)
	assert.True(t, again.PricePerKg.Equal(dec("350")), "callers cannot mutate the cached value")

	newer := &model.MarketPrice{
		CropID: "CR-1", MarketName: "Nyabugogo", MarketType: model.MarketRetail,
		PricePerKg: dec("420"),
	}
	require.NoError(t, env.records.MarketPrices.Create(ctx, newer))
	assert.Equal(t, 0, prices.Cached())

	latest, err = prices.Latest(ctx, "CR-1")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)

	_, err = prices.Latest(ctx, "CR-unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
