package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyChainLossInference(t *testing.T) {
	sc := &SupplyChain{Stage: StageTransport, QuantityIn: dec("1000"), QuantityOut: nullDec("950")}
	require.NoError(t, sc.Recompute(testNow))

	assertDecimal(t, "50", sc.LossQuantity.Decimal)
	assertDecimal(t, "5.00", sc.LossPercentage.Decimal)
	assert.True(t, sc.LossInferred)
	assert.Equal(t, CategoryDistributionPhase, sc.StageCategory)
	assert.False(t, sc.HasHighLosses())

	// Inferred losses follow later changes to the output quantity.
	sc.QuantityOut = nullDec("900")
	require.NoError(t, sc.Recompute(testNow))
	assertDecimal(t, "100", sc.LossQuantity.Decimal)
	assertDecimal(t, "10", sc.LossPercentage.Decimal)
	assert.True(t, sc.HasHighLosses())
}

func TestSupplyChainExplicitLoss(t *testing.T) {
	sc := &SupplyChain{QuantityIn: dec("200"), QuantityOut: nullDec("150"), LossQuantity: nullDec("30")}
	require.NoError(t, sc.Recompute(testNow))

	assertDecimal(t, "30", sc.LossQuantity.Decimal)
	assertDecimal(t, "15", sc.LossPercentage.Decimal)
	assert.False(t, sc.LossInferred)
}

func TestSupplyChainBodyLoss(t *testing.T) {
	inferred := func(t *testing.T) *SupplyChain {
		sc := &SupplyChain{Stage: StageTransport, QuantityIn: dec("1000"), QuantityOut: nullDec("950")}
		require.NoError(t, sc.Recompute(testNow))
		require.True(t, sc.LossInferred)
		return sc
	}

	t.Run("explicit loss replaces an inferred one", func(t *testing.T) {
		sc := inferred(t)
		require.NoError(t, json.Unmarshal([]byte(`{"quantity_out":"900","loss_quantity":"30"}`), sc))
		require.NoError(t, sc.Recompute(testNow))

		assertDecimal(t, "30", sc.LossQuantity.Decimal)
		assertDecimal(t, "3", sc.LossPercentage.Decimal)
		assert.False(t, sc.LossInferred)
	})

	t.Run("omitted loss is inferred again", func(t *testing.T) {
		sc := inferred(t)
		require.NoError(t, json.Unmarshal([]byte(`{"quantity_out":"900"}`), sc))
		require.NoError(t, sc.Recompute(testNow))

		assertDecimal(t, "100", sc.LossQuantity.Decimal)
		assert.True(t, sc.LossInferred)
	})

	t.Run("loss_inferred in the body is ignored", func(t *testing.T) {
		sc := &SupplyChain{}
		body := `{"quantity_in":"100","quantity_out":"80","loss_quantity":"5","loss_inferred":true}`
		require.NoError(t, json.Unmarshal([]byte(body), sc))
		assert.False(t, sc.LossInferred)

		require.NoError(t, sc.Recompute(testNow))
		assertDecimal(t, "5", sc.LossQuantity.Decimal)
	})
}

func TestSupplyChainConservation(t *testing.T) {
	tests := []struct {
		name string
		sc   SupplyChain
	}{
		{name: "out exceeds in", sc: SupplyChain{QuantityIn: dec("100"), QuantityOut: nullDec("120")}},
		{name: "loss exceeds in", sc: SupplyChain{QuantityIn: dec("100"), LossQuantity: nullDec("101")}},
		{name: "out plus loss exceeds in", sc: SupplyChain{QuantityIn: dec("100"), QuantityOut: nullDec("60"), LossQuantity: nullDec("50")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Recompute(testNow)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConservation))

			var ce *ConservationError
			require.True(t, errors.As(err, &ce))
			assertDecimal(t, "100", ce.QuantityIn)
		})
	}
}

func TestSupplyChainBalancedStage(t *testing.T) {
	sc := &SupplyChain{QuantityIn: dec("100"), QuantityOut: nullDec("100")}
	require.NoError(t, sc.Recompute(testNow))

	assert.False(t, sc.LossQuantity.Valid)
	assert.False(t, sc.LossPercentage.Valid)
	assert.False(t, sc.HasLosses())
}

func TestStageNavigation(t *testing.T) {
	next, ok := StageHarvest.Next()
	assert.True(t, ok)
	assert.Equal(t, StageCollection, next)

	_, ok = StageRetail.Next()
	assert.False(t, ok)

	prev, ok := StageRetail.Previous()
	assert.True(t, ok)
	assert.Equal(t, StageDistribution, prev)

	assert.Equal(t, 1, StageHarvest.Order())
	assert.Equal(t, 8, StageRetail.Order())
	assert.Equal(t, "Distribution", StageDistribution.DisplayName())
}
