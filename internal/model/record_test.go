package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareCreate(t *testing.T) {
	inv := &Inventory{
		FarmID:          "FM-1",
		CropID:          "CR-1",
		StorageLocation: "Kigali depot",
		FacilityType:    FacilityWarehouse,
		CurrentQuantity: dec("100"),
	}

	require.NoError(t, PrepareCreate(inv, testNow, stubGenerator{}))

	assert.Equal(t, "INV-0001", inv.ID)
	assert.Equal(t, "STOCK250314CAFE0001", inv.InventoryCode)
	assert.Equal(t, testNow, inv.CreatedAt)
	assert.Equal(t, testNow, inv.UpdatedAt)
	assert.Equal(t, InventoryAvailable, inv.Status)
	assertDecimal(t, "100", inv.AvailableQuantity)
}

func TestPrepareCreateKeepsExistingID(t *testing.T) {
	farm := &Farm{Base: Base{ID: "FM-custom"}, Name: "Hillside"}

	require.NoError(t, PrepareCreate(farm, testNow, stubGenerator{}))

	assert.Equal(t, "FM-custom", farm.ID)
}

func TestPrepareUpdate(t *testing.T) {
	later := testNow.Add(48 * time.Hour)
	tx := &Transaction{Base: Base{ID: "TX-1", CreatedAt: testNow}, Quantity: dec("10"), PricePerUnit: dec("3.5")}

	require.NoError(t, PrepareUpdate(tx, later))

	assert.Equal(t, testNow, tx.CreatedAt)
	assert.Equal(t, later, tx.UpdatedAt)
	assertDecimal(t, "35", tx.TotalAmount)
}

func TestPrepareCreateWrapsRecomputeError(t *testing.T) {
	sc := &SupplyChain{CropID: "CR-1", Stage: StageTransport, QuantityIn: dec("100"), QuantityOut: nullDec("120")}

	err := PrepareCreate(sc, testNow, stubGenerator{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConservation))
	assert.Contains(t, err.Error(), "supply_chains SC-0001")
}

func TestRecomputeIsIdempotent(t *testing.T) {
	for _, e := range sampleEntities() {
		t.Run(e.TableName(), func(t *testing.T) {
			require.NoError(t, PrepareCreate(e, testNow, stubGenerator{}))
			first := snapshot(t, e)

			require.NoError(t, e.Recompute(testNow))
			assert.Equal(t, first, snapshot(t, e))
		})
	}
}

func TestAllCoversEveryTable(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range All() {
		assert.NotEmpty(t, e.IDPrefix(), e.TableName())
		assert.False(t, seen[e.TableName()], "duplicate table %s", e.TableName())
		seen[e.TableName()] = true
	}
	assert.Len(t, seen, 16)
}

func TestKeepLifecycle(t *testing.T) {
	tx := &Transaction{Status: TxDelivered, StatusReason: "on time", Quantity: dec("10")}
	body := `{"status":"PAID","status_reason":"","payment_date":"2025-03-14T00:00:00Z","quantity":"5"}`

	restore := KeepLifecycle(tx)
	require.NoError(t, json.Unmarshal([]byte(body), tx))
	restore()

	assert.Equal(t, TxDelivered, tx.Status)
	assert.Equal(t, "on time", tx.StatusReason)
	assert.Nil(t, tx.PaymentDate)
	assertDecimal(t, "5", tx.Quantity)
}

func TestKeepLifecycleCopiesDates(t *testing.T) {
	paid := testNow.AddDate(0, 0, -2)
	tx := &Transaction{Status: TxPaid, PaymentDate: timePtr(paid)}

	restore := KeepLifecycle(tx)
	require.NoError(t, json.Unmarshal([]byte(`{"payment_date":"2030-01-01T00:00:00Z"}`), tx))
	restore()

	require.NotNil(t, tx.PaymentDate)
	assert.Equal(t, paid, *tx.PaymentDate)
}

func TestKeepLifecycleLeavesOtherRecordsAlone(t *testing.T) {
	farm := &Farm{Name: "Hillside"}

	restore := KeepLifecycle(farm)
	farm.Name = "Valley"
	restore()

	assert.Equal(t, "Valley", farm.Name)
}

func TestResetLifecycle(t *testing.T) {
	tests := []struct {
		name  string
		rec   Entity
		check func(t *testing.T, rec Entity)
	}{
		{
			name: "transaction",
			rec:  &Transaction{Status: TxPaid, PaymentDate: timePtr(testNow), Quantity: dec("1"), PricePerUnit: dec("1")},
			check: func(t *testing.T, rec Entity) {
				tx := rec.(*Transaction)
				assert.Equal(t, TxPending, tx.Status)
				assert.Nil(t, tx.PaymentDate)
			},
		},
		{
			name: "alert",
			rec:  &FoodSecurityAlert{Title: "Flood", EscalationLevel: 4, ResolutionStatus: ResolutionResolved, ResolutionDate: timePtr(testNow)},
			check: func(t *testing.T, rec Entity) {
				a := rec.(*FoodSecurityAlert)
				assert.True(t, a.Active)
				assert.Equal(t, 1, a.EscalationLevel)
				assert.Equal(t, ResolutionUnresolved, a.ResolutionStatus)
				assert.Nil(t, a.ResolutionDate)
			},
		},
		{
			name: "prediction",
			rec:  &ProductionPrediction{CropID: "CR-1", PredictedValue: dec("10"), ValidationStatus: ValidationValidated, Published: true, PublishedDate: timePtr(testNow)},
			check: func(t *testing.T, rec Entity) {
				p := rec.(*ProductionPrediction)
				assert.Equal(t, ValidationPending, p.ValidationStatus)
				assert.False(t, p.Published)
				assert.Nil(t, p.PublishedDate)
			},
		},
		{
			name: "recommendation",
			rec:  &ResourceRecommendation{Title: "Mulch", Status: RecImplemented, FollowUpCompleted: true},
			check: func(t *testing.T, rec Entity) {
				r := rec.(*ResourceRecommendation)
				assert.Equal(t, RecActive, r.Status)
				assert.Nil(t, r.ImplementationDate)
				assert.False(t, r.FollowUpCompleted)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetLifecycle(tt.rec)
			require.NoError(t, PrepareCreate(tt.rec, testNow, stubGenerator{}))
			tt.check(t, tt.rec)
		})
	}
}
