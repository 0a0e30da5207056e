package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus follows PENDING -> CONFIRMED -> DELIVERED -> PAID with
// CANCELLED and DISPUTED as side exits.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "PENDING"
	TxConfirmed TransactionStatus = "CONFIRMED"
	TxDelivered TransactionStatus = "DELIVERED"
	TxPaid      TransactionStatus = "PAID"
	TxCancelled TransactionStatus = "CANCELLED"
	TxDisputed  TransactionStatus = "DISPUTED"
)

func (s TransactionStatus) DisplayName() string { return displayName(string(s)) }

// PaymentMethod is how the buyer settles.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentCredit       PaymentMethod = "CREDIT"
)

func (p PaymentMethod) RequiresVerification() bool {
	return p == PaymentBankTransfer || p == PaymentCheck
}

// TransportResponsibility is who pays for moving the goods.
type TransportResponsibility string

const (
	TransportFarmer     TransportResponsibility = "FARMER"
	TransportBuyer      TransportResponsibility = "BUYER"
	TransportShared     TransportResponsibility = "SHARED"
	TransportThirdParty TransportResponsibility = "THIRD_PARTY"
)

// Transaction is a sale of produce from a farmer to a buyer.
type Transaction struct {
	Base

	TransactionCode string `gorm:"size:30;uniqueIndex" json:"transaction_code"`
	BuyerID         string `gorm:"size:64;index" json:"buyer_id" validate:"required,max=64"`
	FarmerID        string `gorm:"size:64;index" json:"farmer_id" validate:"required,max=64"`
	InventoryID     string `gorm:"size:64" json:"inventory_id,omitempty" validate:"max=64"`
	CropID          string `gorm:"size:64;index" json:"crop_id" validate:"required,max=64"`

	Quantity     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"quantity" validate:"gt=0"`
	Unit         string          `gorm:"size:20" json:"unit" validate:"max=20"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price_per_unit" validate:"gte=0"`
	Currency     string          `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`

	BrokerCommission        decimal.NullDecimal     `gorm:"type:decimal(18,2)" json:"broker_commission" validate:"omitempty,gte=0"`
	GovernmentTax           decimal.NullDecimal     `gorm:"type:decimal(18,2)" json:"government_tax" validate:"omitempty,gte=0"`
	TransportCost           decimal.NullDecimal     `gorm:"type:decimal(18,2)" json:"transport_cost" validate:"omitempty,gte=0"`
	TransportResponsibility TransportResponsibility `gorm:"size:20" json:"transport_responsibility" validate:"omitempty,oneof=FARMER BUYER SHARED THIRD_PARTY"`
	NetAmountFarmer         decimal.Decimal         `gorm:"type:decimal(18,2);not null" json:"net_amount_farmer"`

	PaymentMethod    PaymentMethod     `gorm:"size:20" json:"payment_method,omitempty" validate:"omitempty,oneof=CASH BANK_TRANSFER MOBILE_MONEY CHECK CREDIT"`
	QualityGrade     string            `gorm:"size:20" json:"quality_grade,omitempty" validate:"max=20"`
	DeliveryLocation string            `gorm:"size:200" json:"delivery_location,omitempty" validate:"max=200"`
	Status           TransactionStatus `gorm:"size:20;index" json:"status" validate:"omitempty,oneof=PENDING CONFIRMED DELIVERED PAID CANCELLED DISPUTED"`
	StatusReason     string            `gorm:"size:255" json:"status_reason,omitempty" validate:"max=255"`
	Rating           *int              `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`

	TransactionDate      *time.Time `json:"transaction_date,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date,omitempty"`
	PaymentDate          *time.Time `json:"payment_date,omitempty"`
	CompletionDate       *time.Time `json:"completion_date,omitempty"`
}

func (Transaction) TableName() string { return "transactions" }

func (Transaction) IDPrefix() string { return "TX" }

func (t *Transaction) Initialize(now time.Time, gen Generator) {
	if t.TransactionCode == "" {
		t.TransactionCode = gen.NewCode("TXN", now)
	}
	if t.Currency == "" {
		t.Currency = "XAF"
	}
	if t.Unit == "" {
		t.Unit = "KG"
	}
	if t.TransportResponsibility == "" {
		t.TransportResponsibility = TransportBuyer
	}
	if t.Status == "" {
		t.Status = TxPending
	}
	if t.TransactionDate == nil {
		t.TransactionDate = timePtr(now)
	}
}

type transactionLifecycle struct {
	status             TransactionStatus
	statusReason       string
	actualDeliveryDate *time.Time
	paymentDate        *time.Time
	completionDate     *time.Time
}

// LifecycleState captures the columns that only the status actions may change.
func (t *Transaction) LifecycleState() any {
	return transactionLifecycle{
		status:             t.Status,
		statusReason:       t.StatusReason,
		actualDeliveryDate: copyTime(t.ActualDeliveryDate),
		paymentDate:        copyTime(t.PaymentDate),
		completionDate:     copyTime(t.CompletionDate),
	}
}

func (t *Transaction) RestoreLifecycle(state any) {
	s, _ := state.(transactionLifecycle)
	t.Status = s.status
	t.StatusReason = s.statusReason
	t.ActualDeliveryDate = s.actualDeliveryDate
	t.PaymentDate = s.paymentDate
	t.CompletionDate = s.completionDate
}

// Recompute derives the gross total and the farmer's net amount.
func (t *Transaction) Recompute(time.Time) error {
	t.TotalAmount = round2(t.Quantity.Mul(t.PricePerUnit))
	t.NetAmountFarmer = round2(t.TotalAmount.
		Sub(t.BrokerCommission.Decimal).
		Sub(t.GovernmentTax.Decimal).
		Sub(t.FarmerTransportShare()))
	return nil
}

// FarmerTransportShare is the part of the transport cost borne by the farmer.
func (t *Transaction) FarmerTransportShare() decimal.Decimal {
	if !t.TransportCost.Valid {
		return decimal.Zero
	}
	switch t.TransportResponsibility {
	case TransportFarmer:
		return t.TransportCost.Decimal
	case TransportShared:
		return round2(t.TransportCost.Decimal.Div(two))
	}
	return decimal.Zero
}

func (t *Transaction) CanConfirm() bool { return t.Status == TxPending }

func (t *Transaction) CanDeliver() bool { return t.Status == TxConfirmed }

func (t *Transaction) CanMarkAsPaid() bool { return t.Status == TxDelivered }

func (t *Transaction) CanCancel() bool {
	return t.Status == TxPending || t.Status == TxConfirmed
}

func (t *Transaction) CanDispute() bool {
	return t.Status != TxCancelled && t.Status != TxDisputed
}

// Confirm moves PENDING to CONFIRMED; otherwise it does nothing.
func (t *Transaction) Confirm() {
	if t.CanConfirm() {
		t.Status = TxConfirmed
	}
}

// Deliver moves CONFIRMED to DELIVERED and records the delivery date.
func (t *Transaction) Deliver(now time.Time) {
	if t.CanDeliver() {
		t.Status = TxDelivered
		t.ActualDeliveryDate = timePtr(now)
	}
}

// MarkAsPaid moves DELIVERED to PAID and closes the transaction.
func (t *Transaction) MarkAsPaid(now time.Time) {
	if t.CanMarkAsPaid() {
		t.Status = TxPaid
		t.PaymentDate = timePtr(now)
		t.CompletionDate = timePtr(now)
	}
}

func (t *Transaction) Cancel(reason string) {
	if t.CanCancel() {
		t.Status = TxCancelled
		t.StatusReason = reason
	}
}

func (t *Transaction) Dispute(reason string) {
	if t.CanDispute() {
		t.Status = TxDisputed
		t.StatusReason = reason
	}
}

func (t *Transaction) Completed() bool { return t.Status == TxPaid }

func (t *Transaction) DeliveryOverdue(now time.Time) bool {
	return t.ExpectedDeliveryDate != nil && t.ActualDeliveryDate == nil &&
		now.After(*t.ExpectedDeliveryDate) && t.Status != TxCancelled
}

// RatingLevel names the 1..5 buyer rating.
func (t *Transaction) RatingLevel() string {
	if t.Rating == nil {
		return "Not rated"
	}
	switch *t.Rating {
	case 5:
		return "Excellent"
	case 4:
		return "Good"
	case 3:
		return "Average"
	case 2:
		return "Poor"
	default:
		return "Very Poor"
	}
}

func (t *Transaction) Summary() string {
	return fmt.Sprintf("%s - %s %s @ %s %s - %s",
		t.TransactionCode, t.Quantity.StringFixed(2), t.Unit,
		t.PricePerUnit.StringFixed(2), t.Currency, t.Status.DisplayName())
}

func (t *Transaction) FinancialSummary() string {
	return fmt.Sprintf("Total: %s %s, Net to farmer: %s %s",
		t.TotalAmount.StringFixed(2), t.Currency, t.NetAmountFarmer.StringFixed(2), t.Currency)
}
