package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 21, 15, 0, 0, time.UTC)

var allStatuses = []model.OrderStatus{
	model.StatusPending,
	model.StatusAccepted,
	model.StatusPreparing,
	model.StatusReady,
	model.StatusRejected,
	model.StatusDelivered,
}

var lifecycleEvents = []Event{EventAccept, EventReject, EventMarkPreparing, EventMarkReady, EventMarkDelivered}

func TestAccept(t *testing.T) {
	p, err := Apply(model.StatusPending, EventAccept, now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, p.Status)
	assert.Equal(t, model.StatusPending, p.From)
	require.NotNil(t, p.DecisionAt)
	assert.Equal(t, now, *p.DecisionAt)
	require.NotNil(t, p.EstimatedMinutes)
	assert.Equal(t, 0, *p.EstimatedMinutes)
	assert.Nil(t, p.ClosedAt)
}

func TestReject(t *testing.T) {
	p, err := Apply(model.StatusPending, EventReject, now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, p.Status)
	require.NotNil(t, p.DecisionAt)
	require.NotNil(t, p.ClosedAt)
	assert.Equal(t, now, *p.ClosedAt)
}

func TestPreparingFromAcceptedAndPreparing(t *testing.T) {
	for _, from := range []model.OrderStatus{model.StatusAccepted, model.StatusPreparing} {
		p, err := Apply(from, EventMarkPreparing, now)
		require.NoError(t, err)
		assert.Equal(t, model.StatusPreparing, p.Status)
		require.NotNil(t, p.EstimatedMinutes)
		assert.Equal(t, PreparingETAMinutes, *p.EstimatedMinutes)
	}
}

func TestReadyAndDelivered(t *testing.T) {
	p, err := Apply(model.StatusPreparing, EventMarkReady, now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, p.Status)
	require.NotNil(t, p.ReadyAt)
	assert.Equal(t, 0, *p.EstimatedMinutes)

	p, err = Apply(model.StatusReady, EventMarkDelivered, now)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, p.Status)
	require.NotNil(t, p.ClosedAt)
}

func TestMarkReadyFromPendingIsRejected(t *testing.T) {
	o := &model.Order{Status: model.StatusPending}
	p, err := Apply(o.Status, EventMarkReady, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, model.StatusPending, terr.From)
	assert.Equal(t, EventMarkReady, terr.Event)

	assert.Equal(t, Patch{}, p)
	assert.Equal(t, model.StatusPending, o.Status)
}

func TestNoShortcutsFromPending(t *testing.T) {
	for _, ev := range []Event{EventMarkReady, EventMarkDelivered, EventMarkPreparing} {
		_, err := Apply(model.StatusPending, ev, now)
		assert.ErrorIs(t, err, ErrInvalidTransition, "event %s", ev)
	}
}

func TestTerminalStatesOnlyAllowDelete(t *testing.T) {
	for _, from := range []model.OrderStatus{model.StatusRejected, model.StatusDelivered} {
		for _, ev := range lifecycleEvents {
			_, err := Apply(from, ev, now)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", ev, from)
		}
		assert.Equal(t, []Event{EventDelete}, Allowed(from))
	}
}

func TestEveryTransitionMatchesTable(t *testing.T) {
	valid := map[Event]map[model.OrderStatus]bool{
		EventAccept:        {model.StatusPending: true},
		EventReject:        {model.StatusPending: true},
		EventMarkPreparing: {model.StatusAccepted: true, model.StatusPreparing: true},
		EventMarkReady:     {model.StatusAccepted: true, model.StatusPreparing: true},
		EventMarkDelivered: {model.StatusReady: true},
	}
	for _, ev := range lifecycleEvents {
		for _, from := range allStatuses {
			_, err := Apply(from, ev, now)
			if valid[ev][from] {
				assert.NoError(t, err, "%s from %s", ev, from)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s from %s", ev, from)
			}
		}
	}
}

func TestUnknownEvent(t *testing.T) {
	_, err := Apply(model.StatusPending, Event("teleport"), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete(t *testing.T) {
	_, err := Delete(model.StatusDelivered, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)

	p, err := Delete(model.StatusRejected, true)
	require.NoError(t, err)
	assert.True(t, p.Delete)

	_, err = Delete(model.StatusReady, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Apply(model.StatusDelivered, EventDelete, now)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = Apply(model.StatusPending, EventDelete, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyTo(t *testing.T) {
	o := &model.Order{Status: model.StatusAccepted, EstimatedMinutes: 0}

	p, err := Apply(o.Status, EventMarkPreparing, now)
	require.NoError(t, err)
	p.ApplyTo(o)
	assert.Equal(t, model.StatusPreparing, o.Status)
	assert.Equal(t, 5, o.EstimatedMinutes)
	assert.Nil(t, o.ReadyAt)

	later := now.Add(4 * time.Minute)
	p, err = Apply(o.Status, EventMarkReady, later)
	require.NoError(t, err)
	p.ApplyTo(o)
	assert.Equal(t, model.StatusReady, o.Status)
	assert.Equal(t, 0, o.EstimatedMinutes)
	require.NotNil(t, o.ReadyAt)
	assert.Equal(t, later, *o.ReadyAt)
	assert.Equal(t, later, o.UpdatedAt)
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, []Event{EventAccept, EventReject}, Allowed(model.StatusPending))
	assert.Equal(t, []Event{EventMarkPreparing, EventMarkReady}, Allowed(model.StatusAccepted))
	assert.Equal(t, []Event{EventMarkDelivered}, Allowed(model.StatusReady))
}

func TestNotificationKind(t *testing.T) {
	assert.Equal(t, "confirmation", NotificationKind(EventAccept))
	assert.Equal(t, "preparing_eta5", NotificationKind(EventMarkPreparing))
	assert.Equal(t, "ready", NotificationKind(EventMarkReady))
	assert.Empty(t, NotificationKind(EventReject))
}
