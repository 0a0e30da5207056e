package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

type stubGenerator struct{}

func (stubGenerator) NewID(prefix string) string { return prefix + "-0001" }

func (stubGenerator) NewCode(prefix string, now time.Time) string {
	return prefix + now.Format("060102") + "CAFE0001"
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}
