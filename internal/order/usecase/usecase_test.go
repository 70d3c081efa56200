package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/feed"
	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	mu     sync.Mutex
	orders map[string]model.Order
	// stale makes the next conditional write miss, as if another request won.
	stale     model.OrderStatus
	createErr error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{orders: map[string]model.Order{}} }

func (r *fakeRepo) Create(ctx context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.orders {
		if existing.StoreID == o.StoreID && existing.IdempotencyKey == o.IdempotencyKey {
			return order.ErrIdempotencyConflict
		}
	}
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, storeID, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.StoreID != storeID {
		return nil, nil
	}
	return &o, nil
}

func (r *fakeRepo) FindByIdempotencyKey(ctx context.Context, storeID, key string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.StoreID == storeID && o.IdempotencyKey == key {
			cp := o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindByStatuses(ctx context.Context, storeID string, statuses []model.OrderStatus, ascending bool, limit int) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.StoreID != storeID {
			continue
		}
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) FindClosedSince(ctx context.Context, storeID string, since time.Time) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.StoreID == storeID && o.Status.Terminal() && !o.CreatedAt.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeRepo) ApplyTransition(ctx context.Context, storeID, id string, p lifecycle.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if r.stale != "" {
		o.Status = r.stale
		r.orders[id] = o
		r.stale = ""
	}
	if !ok || o.StoreID != storeID || o.Status != p.From {
		return false, nil
	}
	p.ApplyTo(&o)
	r.orders[id] = o
	return true, nil
}

func (r *fakeRepo) Delete(ctx context.Context, storeID, id string, from model.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.StoreID != storeID || o.Status != from {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func (r *fakeRepo) MarkStockProcessed(ctx context.Context, storeID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.orders[id]
	o.StockProcessed = true
	r.orders[id] = o
	return nil
}

func (r *fakeRepo) put(o model.Order) {
	r.mu.Lock()
	r.orders[o.ID] = o
	r.mu.Unlock()
}

type fakeStores map[string]*model.Store

func (f fakeStores) Store(ctx context.Context, id string) (*model.Store, error) {
	s, ok := f[id]
	if !ok {
		return nil, catalog.ErrStoreNotFound
	}
	return s, nil
}

type fakeReserver struct {
	held     map[string]string
	released []string
	err      error
}

func newFakeReserver() *fakeReserver { return &fakeReserver{held: map[string]string{}} }

func (f *fakeReserver) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.held[key]; ok {
		return false, nil
	}
	f.held[key] = value
	return true, nil
}

func (f *fakeReserver) ReleaseLock(ctx context.Context, key, value string) error {
	if f.held[key] == value {
		delete(f.held, key)
		f.released = append(f.released, key)
	}
	return nil
}

func (f *fakeReserver) Owner(ctx context.Context, key string) (string, error) {
	return f.held[key], nil
}

type fakePublisher struct {
	events []order.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, key string, value []byte) error {
	if f.err != nil {
		return f.err
	}
	var ev order.Event
	if err := json.Unmarshal(value, &ev); err != nil {
		return err
	}
	f.events = append(f.events, ev)
	return nil
}

var local = time.FixedZone("ART", -3*60*60)

var sealer = cart.NewSealer([]byte("test-seal-key"))

type harness struct {
	uc        order.UseCase
	repo      *fakeRepo
	reserver  *fakeReserver
	publisher *fakePublisher
	hub       *feed.Hub
	logs      *observer.ObservedLogs
	clock     *time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	now := time.Date(2026, 5, 4, 21, 0, 0, 0, local)
	h := &harness{
		repo:      newFakeRepo(),
		reserver:  newFakeReserver(),
		publisher: &fakePublisher{},
		hub:       feed.NewHub(4),
		logs:      logs,
		clock:     &now,
	}
	stores := fakeStores{
		"la-esquina": {
			BaseModel: model.BaseModel{ID: "la-esquina"},
			Name:      "La Esquina",
			IsActive:  true,
			Payment:   model.PaymentConfig{Alias: "la.esquina", BankAccountID: "0001"},
			Windows:   model.TimeWindows{"dinner": {From: "20:00", To: "01:00"}},
		},
		"baja": {BaseModel: model.BaseModel{ID: "baja"}, Name: "Baja"},
	}
	h.uc = NewOrderUseCase(h.repo, stores, h.reserver, h.publisher, h.hub, logger.Wrap(zap.New(core)), Options{
		Location: local,
		Clock:    func() time.Time { return *h.clock },
		Sealer:   sealer,
	})
	return h
}

func (h *harness) advance(d time.Duration) { *h.clock = h.clock.Add(d) }

func submission() *dto.SubmitInput {
	return &dto.SubmitInput{
		StoreID: "la-esquina",
		Lines: sealer.SealAll("la-esquina", []model.LineItem{
			{ProductID: "pizza", ProductName: "Pizza", VariantKey: "grande", UnitPrice: 9000, Quantity: 1, ScheduleTags: []string{"dinner"}},
		}),
		Customer:    model.Customer{Name: "Ana", LastName: "Pérez", Contact: "+54 11 5555"},
		Delivery:    model.Delivery{Type: model.DeliveryDelivery, Address: "San Martín 1234", ZoneKey: "barrio2"},
		PaymentMode: model.PaymentFull,
	}
}

func TestSubmitPersistsPendingOrder(t *testing.T) {
	h := newHarness(t)

	o, err := h.uc.Submit(context.Background(), submission())
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, model.StatusPending, o.Status)
	assert.Equal(t, int64(9000), o.Subtotal)
	assert.Equal(t, int64(1200), o.Delivery.Price)
	assert.Equal(t, int64(10200), o.FinalTotal)
	assert.Equal(t, int64(10200), o.AmountPaidNow)
	assert.NotEmpty(t, o.IdempotencyKey)
	require.Len(t, o.Items, 1)
	assert.Empty(t, o.Items[0].Signature)

	stored, _ := h.repo.FindByID(context.Background(), "la-esquina", o.ID)
	require.NotNil(t, stored)

	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, order.EventOrderCreated, h.publisher.events[0].EventType)
	assert.Equal(t, o.ID, h.publisher.events[0].OrderID)
}

func TestSubmitRejectsInvalidOrder(t *testing.T) {
	h := newHarness(t)
	in := submission()
	in.Customer.Contact = ""
	in.Delivery.Address = "x"

	_, err := h.uc.Submit(context.Background(), in)
	var verr *checkout.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(checkout.CheckCustomerComplete))
	assert.True(t, verr.Has(checkout.CheckDeliveryComplete))
	assert.Empty(t, h.publisher.events)
}

func TestSubmitRejectsForgedLines(t *testing.T) {
	cases := map[string]func(l *model.LineItem){
		"repriced":      func(l *model.LineItem) { l.UnitPrice = 1 },
		"tags stripped": func(l *model.LineItem) { l.ScheduleTags = nil },
		"unsigned":      func(l *model.LineItem) { l.Signature = "" },
		"free extra": func(l *model.LineItem) {
			l.Options = append(l.Options, model.SelectedOption{GroupKey: "extras", ItemKey: "jamon"})
		},
	}
	for name, forge := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			in := submission()
			forge(&in.Lines[0])

			_, err := h.uc.Submit(context.Background(), in)
			assert.ErrorIs(t, err, checkout.ErrInvalidInput)
			assert.ErrorIs(t, err, cart.ErrUnsealedLine)
			assert.Empty(t, h.repo.orders)
			assert.Empty(t, h.publisher.events)
			assert.Equal(t, 1, h.logs.FilterMessage("rejected tampered cart line").Len())
		})
	}
}

func TestSubmitRejectsLinesSealedForAnotherStore(t *testing.T) {
	h := newHarness(t)
	in := submission()
	in.Lines = sealer.SealAll("otra", []model.LineItem{
		{ProductID: "pizza", VariantKey: "grande", UnitPrice: 9000, Quantity: 1},
	})

	_, err := h.uc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, checkout.ErrInvalidInput)
}

func TestSubmitRejectsOverflowingQuantity(t *testing.T) {
	h := newHarness(t)
	in := submission()
	in.Lines[0].Quantity = 1 << 30

	_, err := h.uc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, checkout.ErrInvalidInput)
	assert.ErrorIs(t, err, cart.ErrInvalidLine)
	assert.Empty(t, h.repo.orders)
}

func TestSubmitClosedStore(t *testing.T) {
	h := newHarness(t)
	*h.clock = time.Date(2026, 5, 4, 15, 0, 0, 0, local)

	_, err := h.uc.Submit(context.Background(), submission())
	var verr *checkout.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(checkout.CheckStoreOpen))
}

func TestSubmitInactiveStore(t *testing.T) {
	h := newHarness(t)
	in := submission()
	in.StoreID = "baja"

	_, err := h.uc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, catalog.ErrStoreNotFound)
}

func TestSubmitRetryReturnsExistingOrder(t *testing.T) {
	h := newHarness(t)

	first, err := h.uc.Submit(context.Background(), submission())
	require.NoError(t, err)

	h.advance(10 * time.Second)
	_, err = h.uc.Submit(context.Background(), submission())
	var dup *order.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.OrderID)
	assert.ErrorIs(t, err, order.ErrIdempotencyConflict)
	assert.Len(t, h.repo.orders, 1)
}

func TestSubmitDuplicateCaughtByIndexWhenRedisIsDown(t *testing.T) {
	h := newHarness(t)
	h.reserver.err = errors.New("connection refused")

	in := submission()
	in.RequestID = "client-1"
	first, err := h.uc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "req:client-1", first.IdempotencyKey)

	_, err = h.uc.Submit(context.Background(), in)
	var dup *order.DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.OrderID)
	assert.Equal(t, 2, h.logs.FilterMessage("idempotency reservation unavailable").Len())
}

func TestSubmitReleasesReservationOnFailure(t *testing.T) {
	h := newHarness(t)
	h.repo.createErr = errors.New("db down")

	_, err := h.uc.Submit(context.Background(), submission())
	require.Error(t, err)
	assert.Len(t, h.reserver.released, 1)
	assert.Empty(t, h.reserver.held)

	h.repo.createErr = nil
	_, err = h.uc.Submit(context.Background(), submission())
	assert.NoError(t, err)
}

func TestSubmitPickupIgnoresZone(t *testing.T) {
	h := newHarness(t)
	in := submission()
	in.Delivery = model.Delivery{Type: model.DeliveryPickup, ZoneKey: "barrio9"}
	in.PaymentMode = model.PaymentCash

	o, err := h.uc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, o.Delivery.ZoneKey)
	assert.Zero(t, o.Delivery.Price)
	assert.Equal(t, int64(9000), o.FinalTotal)
}

func pending(id string, created time.Time) model.Order {
	return model.Order{
		ID:          id,
		StoreID:     "la-esquina",
		Status:      model.StatusPending,
		PaymentMode: model.PaymentFull,
		FinalTotal:  5000,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestTransitionLifecycle(t *testing.T) {
	h := newHarness(t)
	h.repo.put(pending("o1", h.clock.Add(-5*time.Minute)))
	ctx := context.Background()

	o, err := h.uc.Transition(ctx, "la-esquina", "o1", lifecycle.EventAccept)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, o.Status)
	require.NotNil(t, o.DecisionAt)
	assert.True(t, o.DecisionAt.Equal(*h.clock))

	o, err = h.uc.Transition(ctx, "la-esquina", "o1", lifecycle.EventMarkPreparing)
	require.NoError(t, err)
	assert.Equal(t, 5, o.EstimatedMinutes)

	_, err = h.uc.Transition(ctx, "la-esquina", "o1", lifecycle.EventMarkReady)
	require.NoError(t, err)
	o, err = h.uc.Transition(ctx, "la-esquina", "o1", lifecycle.EventMarkDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, o.Status)
	assert.NotNil(t, o.ClosedAt)

	require.Len(t, h.publisher.events, 4)
	assert.Equal(t, "confirmation", h.publisher.events[0].NotificationKind)
	assert.Equal(t, "preparing_eta5", h.publisher.events[1].NotificationKind)
	assert.Equal(t, "ready", h.publisher.events[2].NotificationKind)
	assert.Empty(t, h.publisher.events[3].NotificationKind)
	assert.Equal(t, model.StatusReady, h.publisher.events[3].Previous)
}

func TestTransitionInvalidIsLoggedAndNothingChanges(t *testing.T) {
	h := newHarness(t)
	h.repo.put(pending("o1", *h.clock))

	_, err := h.uc.Transition(context.Background(), "la-esquina", "o1", lifecycle.EventMarkDelivered)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	stored, _ := h.repo.FindByID(context.Background(), "la-esquina", "o1")
	assert.Equal(t, model.StatusPending, stored.Status)
	assert.Empty(t, h.publisher.events)

	entries := h.logs.FilterMessage("invalid order transition").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
}

func TestTransitionLostRaceIsConflict(t *testing.T) {
	h := newHarness(t)
	h.repo.put(pending("o1", *h.clock))
	h.repo.stale = model.StatusRejected

	_, err := h.uc.Transition(context.Background(), "la-esquina", "o1", lifecycle.EventAccept)
	var conflict *order.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, model.StatusRejected, conflict.Current)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	assert.Equal(t, 1, h.logs.FilterMessage("order changed concurrently").Len())
}

func TestTransitionOtherStoreIsNotFound(t *testing.T) {
	h := newHarness(t)
	h.repo.put(pending("o1", *h.clock))

	_, err := h.uc.Transition(context.Background(), "otra", "o1", lifecycle.EventAccept)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestDeleteNeedsConfirmationAndClosedOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.repo.put(pending("o1", *h.clock))

	err := h.uc.Delete(ctx, "la-esquina", "o1", true)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	_, err = h.uc.Transition(ctx, "la-esquina", "o1", lifecycle.EventReject)
	require.NoError(t, err)

	err = h.uc.Delete(ctx, "la-esquina", "o1", false)
	assert.ErrorIs(t, err, lifecycle.ErrConfirmationRequired)

	require.NoError(t, h.uc.Delete(ctx, "la-esquina", "o1", true))
	_, err = h.uc.Get(ctx, "la-esquina", "o1")
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.Equal(t, order.EventOrderDeleted, h.publisher.events[len(h.publisher.events)-1].EventType)
}

func TestListBuckets(t *testing.T) {
	h := newHarness(t)
	base := *h.clock
	h.repo.put(pending("p-old", base.Add(-20*time.Minute)))
	h.repo.put(pending("p-new", base.Add(-1*time.Minute)))
	accepted := pending("a1", base.Add(-30*time.Minute))
	accepted.Status = model.StatusAccepted
	h.repo.put(accepted)

	orders, err := h.uc.List(context.Background(), "la-esquina", model.BucketPending)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "p-old", orders[0].ID)

	orders, err = h.uc.List(context.Background(), "la-esquina", model.BucketActive)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	_, err = h.uc.List(context.Background(), "la-esquina", model.Bucket("archived"))
	assert.ErrorIs(t, err, order.ErrInvalidBucket)
}

func TestDailySummary(t *testing.T) {
	h := newHarness(t)
	today := *h.clock

	cash := pending("c1", today.Add(-time.Hour))
	cash.Status = model.StatusDelivered
	cash.PaymentMode = model.PaymentCash
	cash.FinalTotal = 4000
	h.repo.put(cash)

	deposit := pending("d1", today.Add(-2*time.Hour))
	deposit.Status = model.StatusDelivered
	deposit.PaymentMode = model.PaymentDeposit
	deposit.FinalTotal = 10000
	deposit.AmountPaidNow = 5000
	h.repo.put(deposit)

	rejected := pending("r1", today.Add(-time.Hour))
	rejected.Status = model.StatusRejected
	h.repo.put(rejected)

	yesterday := pending("y1", today.Add(-30*time.Hour))
	yesterday.Status = model.StatusDelivered
	h.repo.put(yesterday)

	s, err := h.uc.DailySummary(context.Background(), "la-esquina")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04", s.Date)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, int64(14000), s.Revenue)
	assert.Equal(t, int64(5000), s.DepositsCollected)
	assert.Equal(t, int64(5000), s.DepositsOutstanding)
	assert.Equal(t, int64(4000), s.CashExpected)
}

func TestWatchPendingAnnouncesNewOrdersOnce(t *testing.T) {
	h := newHarness(t)
	h.uc = NewOrderUseCase(h.repo, fakeStores{}, nil, nil, h.hub, logger.NewNop(), Options{
		Location: local,
		Clock:    func() time.Time { return *h.clock },
	})
	h.repo.put(pending("a", h.clock.Add(-time.Minute)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps := make(chan dto.Snapshot, 8)
	done := make(chan error, 1)
	go func() {
		done <- h.uc.Watch(ctx, "la-esquina", model.BucketPending, func(s dto.Snapshot) error {
			snaps <- s
			return nil
		})
	}()

	first := <-snaps
	require.Len(t, first.Orders, 1)
	assert.Empty(t, first.NewOrderIDs)

	h.repo.put(pending("b", *h.clock))
	h.hub.Publish(feed.Notice{StoreID: "la-esquina", OrderID: "b", Type: order.EventOrderCreated})
	second := <-snaps
	assert.Equal(t, []string{"b"}, second.NewOrderIDs)

	h.hub.Publish(feed.Notice{StoreID: "la-esquina", OrderID: "b", Type: order.EventOrderStatusChanged})
	third := <-snaps
	assert.Len(t, third.Orders, 2)
	assert.Empty(t, third.NewOrderIDs)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchStopsWhenSendFails(t *testing.T) {
	h := newHarness(t)
	gone := errors.New("stream closed")

	err := h.uc.Watch(context.Background(), "la-esquina", model.BucketActive, func(dto.Snapshot) error {
		return gone
	})
	assert.ErrorIs(t, err, gone)
	assert.Zero(t, h.hub.Subscribers("la-esquina"))
}

func TestPublishFailureNotifiesLocalPanels(t *testing.T) {
	h := newHarness(t)
	h.publisher.err = errors.New("broker down")
	sub := h.hub.Subscribe("la-esquina")
	defer sub.Close()

	o, err := h.uc.Submit(context.Background(), submission())
	require.NoError(t, err)

	select {
	case n := <-sub.C:
		assert.Equal(t, o.ID, n.OrderID)
	default:
		t.Fatal("expected a local notice")
	}
	assert.Equal(t, 1, h.logs.FilterMessage("failed to publish order event").Len())
}
