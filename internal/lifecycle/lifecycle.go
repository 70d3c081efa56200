// Package lifecycle is the order state machine. It never reads the clock and
// never mutates an order on failure; it returns the patch a store adapter
// applies.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var (
	ErrInvalidTransition    = errors.New("invalid order transition")
	ErrConfirmationRequired = errors.New("order deletion requires explicit confirmation")
)

type Event string

const (
	EventAccept        Event = "accept"
	EventReject        Event = "reject"
	EventMarkPreparing Event = "mark_preparing_eta5"
	EventMarkReady     Event = "mark_ready"
	EventMarkDelivered Event = "mark_delivered"
	EventDelete        Event = "delete"
)

// PreparingETAMinutes is the estimate announced by EventMarkPreparing.
const PreparingETAMinutes = 5

type TransitionError struct {
	From  model.OrderStatus
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order that is %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Patch is the write produced by a transition. From is the status the order
// must still have when the patch is applied.
type Patch struct {
	From             model.OrderStatus
	Status           model.OrderStatus
	EstimatedMinutes *int
	DecisionAt       *time.Time
	ReadyAt          *time.Time
	ClosedAt         *time.Time
	UpdatedAt        time.Time
	Delete           bool
}

// ApplyTo copies the patch onto o. Deletion patches leave o untouched.
func (p Patch) ApplyTo(o *model.Order) {
	if p.Delete {
		return
	}
	o.Status = p.Status
	if p.EstimatedMinutes != nil {
		o.EstimatedMinutes = *p.EstimatedMinutes
	}
	if p.DecisionAt != nil {
		o.DecisionAt = p.DecisionAt
	}
	if p.ReadyAt != nil {
		o.ReadyAt = p.ReadyAt
	}
	if p.ClosedAt != nil {
		o.ClosedAt = p.ClosedAt
	}
	o.UpdatedAt = p.UpdatedAt
}

type rule struct {
	from  []model.OrderStatus
	to    model.OrderStatus
	stamp func(p *Patch, now time.Time)
}

func minutes(n int) *int { return &n }

var rules = map[Event]rule{
	EventAccept: {
		from: []model.OrderStatus{model.StatusPending},
		to:   model.StatusAccepted,
		stamp: func(p *Patch, now time.Time) {
			p.DecisionAt = &now
			p.EstimatedMinutes = minutes(0)
		},
	},
	EventReject: {
		from: []model.OrderStatus{model.StatusPending},
		to:   model.StatusRejected,
		stamp: func(p *Patch, now time.Time) {
			p.DecisionAt = &now
			p.ClosedAt = &now
		},
	},
	EventMarkPreparing: {
		from: []model.OrderStatus{model.StatusAccepted, model.StatusPreparing},
		to:   model.StatusPreparing,
		stamp: func(p *Patch, _ time.Time) {
			p.EstimatedMinutes = minutes(PreparingETAMinutes)
		},
	},
	EventMarkReady: {
		from: []model.OrderStatus{model.StatusAccepted, model.StatusPreparing},
		to:   model.StatusReady,
		stamp: func(p *Patch, now time.Time) {
			p.ReadyAt = &now
			p.EstimatedMinutes = minutes(0)
		},
	},
	EventMarkDelivered: {
		from: []model.OrderStatus{model.StatusReady},
		to:   model.StatusDelivered,
		stamp: func(p *Patch, now time.Time) {
			p.ClosedAt = &now
		},
	},
	EventDelete: {
		from: []model.OrderStatus{model.StatusRejected, model.StatusDelivered},
	},
}

func permits(r rule, from model.OrderStatus) bool {
	for _, s := range r.from {
		if s == from {
			return true
		}
	}
	return false
}

// Apply computes the patch for ev on an order currently in from, stamped at
// now. Deletion goes through Delete.
func Apply(from model.OrderStatus, ev Event, now time.Time) (Patch, error) {
	r, ok := rules[ev]
	if !ok || !permits(r, from) {
		return Patch{}, &TransitionError{From: from, Event: ev}
	}
	if ev == EventDelete {
		return Patch{}, ErrConfirmationRequired
	}
	p := Patch{From: from, Status: r.to, UpdatedAt: now}
	r.stamp(&p, now)
	return p, nil
}

// Delete allows removing a closed order once the owner has confirmed it.
func Delete(from model.OrderStatus, confirmed bool) (Patch, error) {
	if !permits(rules[EventDelete], from) {
		return Patch{}, &TransitionError{From: from, Event: EventDelete}
	}
	if !confirmed {
		return Patch{}, ErrConfirmationRequired
	}
	return Patch{From: from, Delete: true}, nil
}

// Allowed lists the events that apply from status, in a stable order.
func Allowed(status model.OrderStatus) []Event {
	var out []Event
	for _, ev := range []Event{EventAccept, EventReject, EventMarkPreparing, EventMarkReady, EventMarkDelivered, EventDelete} {
		if permits(rules[ev], status) {
			out = append(out, ev)
		}
	}
	return out
}

// NotificationKind names the customer message an external composer sends
// after ev, or "" when none is sent.
func NotificationKind(ev Event) string {
	switch ev {
	case EventAccept:
		return "confirmation"
	case EventMarkPreparing:
		return "preparing_eta5"
	case EventMarkReady:
		return "ready"
	}
	return ""
}
