// Package summary folds today's closed orders into the owner's daily totals.
package summary

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type ModeTotals struct {
	Count   int   `json:"count"`
	Revenue int64 `json:"revenue"`
}

type Summary struct {
	Count               int                              `json:"count"`
	Revenue             int64                            `json:"revenue"`
	DepositsCollected   int64                            `json:"deposits_collected"`
	DepositsOutstanding int64                            `json:"deposits_outstanding"`
	CashExpected        int64                            `json:"cash_expected"`
	ByMode              map[model.PaymentMode]ModeTotals `json:"by_mode"`
}

// SameDay reports whether t falls on the calendar day of today, in today's
// location. A zero t has not been stamped yet and counts as today.
func SameDay(t, today time.Time) bool {
	if t.IsZero() {
		return true
	}
	y1, m1, d1 := t.In(today.Location()).Date()
	y2, m2, d2 := today.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay returns local midnight of today's calendar day.
func StartOfDay(today time.Time) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location())
}

// Summarize only counts delivered orders created today. Ready or accepted
// orders are left out even when they already carry payments.
func Summarize(orders []*model.Order, today time.Time) Summary {
	s := Summary{ByMode: map[model.PaymentMode]ModeTotals{}}
	for _, o := range orders {
		if o == nil || o.Status != model.StatusDelivered || !SameDay(o.CreatedAt, today) {
			continue
		}
		s.Count++
		s.Revenue += o.FinalTotal

		switch o.PaymentMode {
		case model.PaymentDeposit:
			s.DepositsCollected += o.AmountPaidNow
			if rest := o.FinalTotal - o.AmountPaidNow; rest > 0 {
				s.DepositsOutstanding += rest
			}
		case model.PaymentCash:
			s.CashExpected += o.FinalTotal
		}

		m := s.ByMode[o.PaymentMode]
		m.Count++
		m.Revenue += o.FinalTotal
		s.ByMode[o.PaymentMode] = m
	}
	return s
}
