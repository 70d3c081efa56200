// Package pricing computes line, cart and payment amounts. All amounts are
// whole currency units; the deposit percentage is the only rounding step.
package pricing

import (
	"errors"
	"math"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

var ErrOverflow = errors.New("amount out of range")

// UnitPrice is the variant price plus every selected option surcharge.
func UnitPrice(variant model.Variant, options []model.SelectedOption) int64 {
	price := variant.Price
	for _, o := range options {
		price += o.PriceExtra
	}
	return price
}

func Subtotal(lines []model.LineItem) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPrice * l.Quantity
	}
	return sum
}

func FinalTotal(subtotal, deliveryCharge int64) int64 {
	return subtotal + deliveryCharge
}

// LineTotal is UnitPrice * Quantity. It fails instead of wrapping.
func LineTotal(l model.LineItem) (int64, error) {
	if l.UnitPrice < 0 || l.Quantity < 0 {
		return 0, ErrOverflow
	}
	if l.Quantity > 0 && l.UnitPrice > math.MaxInt64/l.Quantity {
		return 0, ErrOverflow
	}
	return l.UnitPrice * l.Quantity, nil
}

func addAmounts(a, b int64) (int64, error) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedSubtotal is Subtotal for lines that have not been bounded yet.
func CheckedSubtotal(lines []model.LineItem) (int64, error) {
	var sum int64
	for _, l := range lines {
		t, err := LineTotal(l)
		if err != nil {
			return 0, err
		}
		if sum, err = addAmounts(sum, t); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

func CheckedFinalTotal(subtotal, deliveryCharge int64) (int64, error) {
	return addAmounts(subtotal, deliveryCharge)
}

// Deposit prefers a positive fixed amount, then a positive percentage of the
// final total rounded half-up. The result is clamped into [0, finalTotal].
func Deposit(cfg model.PaymentConfig, finalTotal int64) int64 {
	var d int64
	switch {
	case cfg.DepositFixedAmount > 0:
		d = cfg.DepositFixedAmount
	case cfg.DepositPercentage.IsPositive():
		d = decimal.NewFromInt(finalTotal).Mul(cfg.DepositPercentage).Div(hundred).Round(0).IntPart()
	}
	if d > finalTotal {
		d = finalTotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// DepositOffered reports whether deposit mode is legal for this total.
func DepositOffered(cfg model.PaymentConfig, finalTotal int64) bool {
	if !cfg.AcceptsDeposit {
		return false
	}
	d := Deposit(cfg, finalTotal)
	return d > 0 && d < finalTotal
}

// AmountDueNow is what the customer transfers at checkout.
func AmountDueNow(mode model.PaymentMode, finalTotal, deposit int64) int64 {
	switch mode {
	case model.PaymentCash:
		return 0
	case model.PaymentDeposit:
		return deposit
	default:
		return finalTotal
	}
}

type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	DeliveryCharge int64 `json:"delivery_charge"`
	FinalTotal     int64 `json:"final_total"`
	Deposit        int64 `json:"deposit"`
	DepositOffered bool  `json:"deposit_offered"`
	AmountDueNow   int64 `json:"amount_due_now"`
}

// Quote prices a cart for a delivery choice and payment mode. The returned
// error is only ever ErrUnknownZone; the quote is still complete in that case.
func (t ZoneTable) Quote(lines []model.LineItem, cfg model.PaymentConfig, delivery model.Delivery, mode model.PaymentMode) (Quote, error) {
	q := Quote{Subtotal: Subtotal(lines)}
	charge, err := t.DeliveryCharge(delivery.Type, delivery.ZoneKey)
	q.DeliveryCharge = charge
	q.FinalTotal = FinalTotal(q.Subtotal, charge)
	q.Deposit = Deposit(cfg, q.FinalTotal)
	q.DepositOffered = DepositOffered(cfg, q.FinalTotal)
	q.AmountDueNow = AmountDueNow(mode, q.FinalTotal, q.Deposit)
	return q, err
}
