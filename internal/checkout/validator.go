// Package checkout turns a cart into a priced pending order. The validator
// exposes each submission rule as its own predicate so callers can tell the
// customer exactly what is missing.
package checkout

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront-service/internal/availability"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
)

type Check string

const (
	CheckCartNotEmpty      Check = "cart_not_empty"
	CheckStoreOpen         Check = "store_open"
	CheckLinesInWindow     Check = "lines_in_window"
	CheckCustomerComplete  Check = "customer_complete"
	CheckDeliveryComplete  Check = "delivery_complete"
	CheckPaymentConfigured Check = "payment_configured"
)

const minAddressLength = 6

// Submission is everything a checkout decision depends on. Now must already be
// in the store's local time.
type Submission struct {
	Store       *model.Store
	Lines       []model.LineItem
	Customer    model.Customer
	Delivery    model.Delivery
	PaymentMode model.PaymentMode
	Note        string
	Now         time.Time
}

func (s Submission) minute() int { return availability.MinuteOfDay(s.Now) }

func (s Submission) windows() model.TimeWindows {
	if s.Store == nil {
		return nil
	}
	return s.Store.Windows
}

func (s Submission) payment() model.PaymentConfig {
	if s.Store == nil {
		return model.PaymentConfig{}
	}
	return s.Store.Payment
}

type Validator struct {
	zones pricing.ZoneTable
}

func NewValidator(zones pricing.ZoneTable) *Validator {
	return &Validator{zones: zones}
}

func (v *Validator) CartNotEmpty(s Submission) bool {
	return len(s.Lines) > 0
}

func (v *Validator) StoreOpen(s Submission) bool {
	return availability.StoreOpen(s.minute(), s.windows())
}

// IncompatibleLines returns the lines whose schedule-tag snapshot rules them
// out right now.
func (v *Validator) IncompatibleLines(s Submission) []model.LineItem {
	var out []model.LineItem
	m := s.minute()
	for _, l := range s.Lines {
		if !availability.TagsAvailable(m, l.ScheduleTags, s.windows()) {
			out = append(out, l)
		}
	}
	return out
}

func (v *Validator) LinesInWindow(s Submission) bool {
	return len(v.IncompatibleLines(s)) == 0
}

func (v *Validator) CustomerComplete(s Submission) bool {
	c := s.Customer
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.LastName) != "" &&
		strings.TrimSpace(c.Contact) != ""
}

func (v *Validator) DeliveryComplete(s Submission) bool {
	switch s.Delivery.Type {
	case model.DeliveryPickup:
		return true
	case model.DeliveryDelivery:
		if utf8.RuneCountInString(strings.TrimSpace(s.Delivery.Address)) < minAddressLength {
			return false
		}
		z, ok := v.zones.Lookup(s.Delivery.ZoneKey)
		return ok && z.Price > 0
	}
	return false
}

func (v *Validator) PaymentConfigured(s Submission) bool {
	if !s.PaymentMode.Valid() {
		return false
	}
	if s.PaymentMode == model.PaymentCash {
		return true
	}
	p := s.payment()
	if strings.TrimSpace(p.Alias) == "" || strings.TrimSpace(p.BankAccountID) == "" {
		return false
	}
	if s.PaymentMode == model.PaymentDeposit {
		return pricing.DepositOffered(p, v.finalTotal(s))
	}
	return true
}

func (v *Validator) finalTotal(s Submission) int64 {
	charge, _ := v.zones.DeliveryCharge(s.Delivery.Type, s.Delivery.ZoneKey)
	return pricing.FinalTotal(pricing.Subtotal(s.Lines), charge)
}

// Evaluate runs every check and returns the failures, or nil when the
// submission may proceed.
func (v *Validator) Evaluate(s Submission) *ValidationError {
	e := &ValidationError{}
	if !v.CartNotEmpty(s) {
		e.Failed = append(e.Failed, CheckCartNotEmpty)
	}
	if !v.StoreOpen(s) {
		e.Failed = append(e.Failed, CheckStoreOpen)
	}
	if bad := v.IncompatibleLines(s); len(bad) > 0 {
		e.Failed = append(e.Failed, CheckLinesInWindow)
		for _, l := range bad {
			e.Incompatible = append(e.Incompatible, cart.KeyOf(l))
		}
	}
	if !v.CustomerComplete(s) {
		e.Failed = append(e.Failed, CheckCustomerComplete)
	}
	if !v.DeliveryComplete(s) {
		e.Failed = append(e.Failed, CheckDeliveryComplete)
	}
	if !v.PaymentConfigured(s) {
		e.Failed = append(e.Failed, CheckPaymentConfigured)
	}
	if len(e.Failed) == 0 {
		return nil
	}
	return e
}

func (v *Validator) CanSubmit(s Submission) bool {
	return v.Evaluate(s) == nil
}
