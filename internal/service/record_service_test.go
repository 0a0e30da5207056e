package service

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-agriculture/internal/metrics"
	"smart-agriculture/internal/model"
	"smart-agriculture/internal/repository"
	"smart-agriculture/internal/validation"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestRecordServiceCreateCountsWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var hooked []string
	env.records.Farms.OnWrite(func(f *model.Farm) { hooked = append(hooked, f.ID) })

	farm := &model.Farm{Name: "Green Valley Farm", TotalArea: dec("12")}
	require.NoError(t, env.records.Farms.Create(ctx, farm))

	assert.Equal(t, []string{farm.ID}, hooked)
	assert.Contains(t, scrape(t, env.metrics), `smartagri_records_written_total{operation="create",table="farms"} 1`)
}

func TestRecordServiceClassifiesFailures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.records.Inventory.Create(ctx, &model.Inventory{CurrentQuantity: dec("10")})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))

	err = env.records.SupplyChain.Create(ctx, &model.SupplyChain{
		CropID: "CR-1", Stage: model.StageStorage,
		QuantityIn: dec("100"), QuantityOut: nullDec("120"),
	})
	require.ErrorIs(t, err, model.ErrConservation)

	body := scrape(t, env.metrics)
	assert.Contains(t, body, `smartagri_write_failures_total{reason="validation",table="inventories"} 1`)
	assert.Contains(t, body, `smartagri_write_failures_total{reason="conservation",table="supply_chains"} 1`)

	stages, err := env.records.SupplyChain.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, stages)
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &validation.Error{}, metrics.ReasonValidation},
		{"conservation", &model.ConservationError{Reason: "out exceeds in"}, metrics.ReasonConservation},
		{"storage", errors.New("disk full"), metrics.ReasonStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureReason(tt.err))
		})
	}
}

func TestRecordServiceListFilterAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, farmID := range []string{"FM-1", "FM-1", "FM-2"} {
		require.NoError(t, env.records.Inventory.Create(ctx, &model.Inventory{
			FarmID: farmID, CropID: "CR-1", StorageLocation: "Silo", FacilityType: model.FacilitySilo,
			CurrentQuantity: dec("50"),
		}))
	}

	lots, err := env.records.Inventory.List(ctx, ListFilter{Equals: map[string]string{"farm_id": "FM-1"}})
	require.NoError(t, err)
	require.Len(t, lots, 2)

	limited, err := env.records.Inventory.List(ctx, ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, env.records.Inventory.Delete(ctx, lots[0].ID))
	_, err = env.records.Inventory.Get(ctx, lots[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, env.records.Inventory.Delete(ctx, "INV-missing"), repository.ErrNotFound)
}
