package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-agriculture/internal/model"
)

func TestIrrigationRepository(t *testing.T) {
	db, stores, _ := newTestStores(t)
	repo := NewIrrigationRepository(db)
	ctx := context.Background()

	farm := &model.Farm{Name: "Green Valley"}
	require.NoError(t, stores.Farms.Create(ctx, farm))

	exists, err := repo.FarmExists(ctx, farm.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.FarmExists(ctx, "FM-missing")
	require.NoError(t, err)
	assert.False(t, exists)

	for i, sector := range []string{"North", "South", "North"} {
		require.NoError(t, stores.Irrigation.Create(ctx, &model.IrrigationData{
			FarmID:         farm.ID,
			Sector:         sector,
			IrrigationDate: testNow.AddDate(0, 0, -i),
			WaterAmount:    dec("100"),
		}))
	}

	start := testNow.AddDate(0, 0, -2)
	end := testNow.Add(time.Hour)

	all, err := repo.Records(ctx, farm.ID, nil, start, end)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].IrrigationDate.Before(all[2].IrrigationDate), "records are oldest first")

	north := "North"
	filtered, err := repo.Records(ctx, farm.ID, &north, start, end)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	// end is exclusive
	none, err := repo.Records(ctx, farm.ID, nil, testNow.Add(-time.Hour), testNow)
	require.NoError(t, err)
	assert.Empty(t, none)
}
