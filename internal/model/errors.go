package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrConservation is matched by every supply-chain quantity conservation failure.
var ErrConservation = errors.New("quantity conservation violated")

// ConservationError reports a stage whose outputs and losses exceed its input.
type ConservationError struct {
	QuantityIn   decimal.Decimal
	QuantityOut  decimal.Decimal
	LossQuantity decimal.Decimal
	Reason       string
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("%s: %s (in=%s out=%s loss=%s)",
		ErrConservation, e.Reason, e.QuantityIn, e.QuantityOut, e.LossQuantity)
}

func (e *ConservationError) Unwrap() error {
	return ErrConservation
}
