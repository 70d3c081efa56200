package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
)

// Build validates s and returns the pending order it describes. ID and
// idempotency key are left for the persistence layer. A non-nil warning
// reports a fail-open data issue (unknown zone) that the caller should log.
func (v *Validator) Build(s Submission) (o *model.Order, warning error, err error) {
	if s.Store == nil {
		return nil, nil, fmt.Errorf("%w: missing store", ErrInvalidInput)
	}
	if !s.PaymentMode.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, s.PaymentMode)
	}
	if !s.Delivery.Type.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown delivery type %q", ErrInvalidInput, s.Delivery.Type)
	}
	c, err := cart.New(s.Lines)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	s.Lines = c.Lines()
	charge, _ := v.zones.DeliveryCharge(s.Delivery.Type, s.Delivery.ZoneKey)
	if _, err := pricing.CheckedFinalTotal(c.Subtotal(), charge); err != nil {
		return nil, nil, fmt.Errorf("%w: final total %w", ErrInvalidInput, err)
	}

	if verr := v.Evaluate(s); verr != nil {
		return nil, nil, verr
	}

	delivery := model.Delivery{Type: s.Delivery.Type}
	if s.Delivery.Type == model.DeliveryDelivery {
		delivery.Address = strings.TrimSpace(s.Delivery.Address)
		delivery.ZoneKey = strings.TrimSpace(s.Delivery.ZoneKey)
		if z, ok := v.zones.Lookup(delivery.ZoneKey); ok {
			delivery.ZoneName = z.Name
		}
	}

	q, warning := v.zones.Quote(s.Lines, s.Store.Payment, delivery, s.PaymentMode)
	delivery.Price = q.DeliveryCharge

	o = &model.Order{
		StoreID: s.Store.ID,
		Status:  model.StatusPending,
		Customer: model.Customer{
			Name:     strings.TrimSpace(s.Customer.Name),
			LastName: strings.TrimSpace(s.Customer.LastName),
			Contact:  strings.TrimSpace(s.Customer.Contact),
		},
		Note:          strings.TrimSpace(s.Note),
		Delivery:      delivery,
		Items:         s.Lines,
		Subtotal:      q.Subtotal,
		FinalTotal:    q.FinalTotal,
		PaymentMode:   s.PaymentMode,
		AmountPaidNow: q.AmountDueNow,
		CreatedAt:     s.Now,
		UpdatedAt:     s.Now,
	}
	if s.PaymentMode == model.PaymentDeposit {
		o.DepositAmount = q.Deposit
	}
	return o, warning, nil
}

// IdempotencyKey fingerprints a submission so a retry inside the same time
// bucket maps to the same order. Line order does not matter.
func IdempotencyKey(storeID string, c model.Customer, lines []model.LineItem, now time.Time, window time.Duration) string {
	keys := make([]string, 0, len(lines))
	for _, l := range lines {
		keys = append(keys, cart.KeyOf(l)+"#"+strconv.FormatInt(l.Quantity, 10))
	}
	sort.Strings(keys)

	bucket := now.UTC()
	if window > 0 {
		bucket = bucket.Truncate(window)
	}

	h := sha256.New()
	for _, part := range []string{
		storeID,
		strings.ToLower(strings.TrimSpace(c.Name)),
		strings.ToLower(strings.TrimSpace(c.LastName)),
		strings.TrimSpace(c.Contact),
		strconv.FormatInt(bucket.Unix(), 10),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
