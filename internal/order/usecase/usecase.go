package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
	"github.com/fekuna/omnipos-storefront-service/internal/summary"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Options struct {
	Zones    pricing.ZoneTable
	Location *time.Location
	Clock    func() time.Time

	// IdempotencyWindow buckets the creation time in the derived key.
	IdempotencyWindow time.Duration
	// IdempotencyTTL is how long a reservation is held in Redis.
	IdempotencyTTL time.Duration
	ListLimit      int
	// Sealer verifies the lines the catalog signed. It must be shared with
	// the catalog use case.
	Sealer         *cart.Sealer
}

type orderUseCase struct {
	repo      order.Repository
	stores    order.StoreReader
	reserver  order.Reserver
	publisher order.Publisher
	hub       *feed.Hub
	validator *checkout.Validator
	sealer    *cart.Sealer
	logger    logger.ZapLogger

	loc       *time.Location
	now       func() time.Time
	idemWin   time.Duration
	idemTTL   time.Duration
	listLimit int
}

// NewOrderUseCase wires the order flows. reserver and publisher may be nil:
// without a reservation store the unique index alone deduplicates, and
// without a publisher change notices go straight to hub.
func NewOrderUseCase(
	repo order.Repository,
	stores order.StoreReader,
	reserver order.Reserver,
	publisher order.Publisher,
	hub *feed.Hub,
	log logger.ZapLogger,
	opts Options,
) order.UseCase {
	uc := &orderUseCase{
		repo:      repo,
		stores:    stores,
		reserver:  reserver,
		publisher: publisher,
		hub:       hub,
		sealer:    opts.Sealer,
		logger:    log,
		loc:       opts.Location,
		now:       opts.Clock,
		idemWin:   opts.IdempotencyWindow,
		idemTTL:   opts.IdempotencyTTL,
		listLimit: opts.ListLimit,
	}
	zones := opts.Zones
	if zones == nil {
		zones = pricing.DefaultZones
	}
	uc.validator = checkout.NewValidator(zones)
	if uc.hub == nil {
		uc.hub = feed.NewHub(8)
	}
	if uc.loc == nil {
		uc.loc = time.UTC
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.idemWin <= 0 {
		uc.idemWin = 2 * time.Minute
	}
	if uc.idemTTL <= 0 {
		uc.idemTTL = 10 * time.Minute
	}
	if uc.listLimit <= 0 {
		uc.listLimit = 120
	}
	if uc.sealer == nil {
		uc.sealer = cart.NewSealer(nil)
	}
	return uc
}

func reservationKey(storeID, key string) string {
	return fmt.Sprintf("idem:%s:%s", storeID, key)
}

func (uc *orderUseCase) Submit(ctx context.Context, input *dto.SubmitInput) (*model.Order, error) {
	store, err := uc.stores.Store(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	if !store.IsActive {
		return nil, catalog.ErrStoreNotFound
	}

	lines, err := uc.sealer.Open(store.ID, input.Lines)
	if err != nil {
		uc.logger.Warn("rejected tampered cart line", zap.String("store_id", store.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", checkout.ErrInvalidInput, err)
	}

	now := uc.now().In(uc.loc)
	o, warning, err := uc.validator.Build(checkout.Submission{
		Store:       store,
		Lines:       lines,
		Customer:    input.Customer,
		Delivery:    input.Delivery,
		PaymentMode: input.PaymentMode,
		Note:        input.Note,
		Now:         now,
	})
	if err != nil {
		return nil, err
	}
	if warning != nil {
		uc.logger.Warn("unknown delivery zone, charging 0",
			zap.String("store_id", store.ID),
			zap.String("zone_key", o.Delivery.ZoneKey),
		)
	}

	if reqID := strings.TrimSpace(input.RequestID); reqID != "" {
		o.IdempotencyKey = "req:" + reqID
	} else {
		o.IdempotencyKey = checkout.IdempotencyKey(store.ID, o.Customer, o.Items, now, uc.idemWin)
	}
	o.ID = uuid.New().String()

	lockKey := reservationKey(store.ID, o.IdempotencyKey)
	reserved, err := uc.reserve(ctx, lockKey, o.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		if reserved {
			if rerr := uc.reserver.ReleaseLock(ctx, lockKey, o.ID); rerr != nil {
				uc.logger.Warn("failed to release idempotency reservation", zap.String("key", lockKey), zap.Error(rerr))
			}
		}
		if errors.Is(err, order.ErrIdempotencyConflict) {
			return nil, uc.duplicate(ctx, store.ID, o.IdempotencyKey)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	uc.logger.Info("order placed",
		zap.String("store_id", o.StoreID),
		zap.String("order_id", o.ID),
		zap.Int64("final_total", o.FinalTotal),
		zap.String("payment_mode", string(o.PaymentMode)),
	)
	uc.publish(ctx, order.Event{
		EventType: order.EventOrderCreated,
		StoreID:   o.StoreID,
		OrderID:   o.ID,
		Status:    o.Status,
		Order:     o,
	})
	return o, nil
}

// reserve takes the idempotency reservation. It reports false without error
// when there is no reservation store or Redis is unreachable, leaving the
// unique index to catch duplicates.
func (uc *orderUseCase) reserve(ctx context.Context, lockKey, orderID string) (bool, error) {
	if uc.reserver == nil {
		return false, nil
	}
	ok, err := uc.reserver.AcquireLock(ctx, lockKey, orderID, uc.idemTTL)
	if err != nil {
		uc.logger.Warn("idempotency reservation unavailable", zap.String("key", lockKey), zap.Error(err))
		return false, nil
	}
	if ok {
		return true, nil
	}

	owner, err := uc.reserver.Owner(ctx, lockKey)
	if err != nil {
		uc.logger.Warn("failed to read idempotency reservation", zap.String("key", lockKey), zap.Error(err))
	}
	return false, &order.DuplicateError{OrderID: owner}
}

func (uc *orderUseCase) duplicate(ctx context.Context, storeID, key string) error {
	existing, err := uc.repo.FindByIdempotencyKey(ctx, storeID, key)
	if err != nil {
		uc.logger.Error("failed to load duplicated order", zap.String("store_id", storeID), zap.Error(err))
		return &order.DuplicateError{}
	}
	if existing == nil {
		return &order.DuplicateError{}
	}
	return &order.DuplicateError{OrderID: existing.ID}
}

func (uc *orderUseCase) find(ctx context.Context, storeID, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (uc *orderUseCase) Get(ctx context.Context, storeID, id string) (*model.Order, error) {
	return uc.find(ctx, storeID, id)
}

func (uc *orderUseCase) List(ctx context.Context, storeID string, bucket model.Bucket) ([]model.Order, error) {
	if !bucket.Valid() {
		return nil, fmt.Errorf("%w: %q", order.ErrInvalidBucket, bucket)
	}
	orders, err := uc.repo.FindByStatuses(ctx, storeID, bucket.Statuses(), bucket.Ascending(), uc.listLimit)
	if err != nil {
		return nil, fmt.Errorf("list %s orders: %w", bucket, err)
	}
	return orders, nil
}

func (uc *orderUseCase) Transition(ctx context.Context, storeID, id string, ev lifecycle.Event) (*model.Order, error) {
	o, err := uc.find(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	p, err := lifecycle.Apply(o.Status, ev, uc.now())
	if err != nil {
		uc.rejected(o, ev, err)
		return nil, err
	}

	ok, err := uc.repo.ApplyTransition(ctx, storeID, id, p)
	if err != nil {
		return nil, fmt.Errorf("apply %s to order %s: %w", ev, id, err)
	}
	if !ok {
		return nil, uc.conflict(ctx, storeID, id, ev)
	}
	p.ApplyTo(o)

	uc.logger.Info("order transitioned",
		zap.String("order_id", o.ID),
		zap.String("from", string(p.From)),
		zap.String("to", string(o.Status)),
	)
	uc.publish(ctx, order.Event{
		EventType:        order.EventOrderStatusChanged,
		StoreID:          o.StoreID,
		OrderID:          o.ID,
		Status:           o.Status,
		Previous:         p.From,
		Transition:       ev,
		NotificationKind: lifecycle.NotificationKind(ev),
		Order:            o,
	})
	return o, nil
}

func (uc *orderUseCase) Delete(ctx context.Context, storeID, id string, confirmed bool) error {
	o, err := uc.find(ctx, storeID, id)
	if err != nil {
		return err
	}

	p, err := lifecycle.Delete(o.Status, confirmed)
	if err != nil {
		uc.rejected(o, lifecycle.EventDelete, err)
		return err
	}

	ok, err := uc.repo.Delete(ctx, storeID, id, p.From)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if !ok {
		return uc.conflict(ctx, storeID, id, lifecycle.EventDelete)
	}

	uc.logger.Info("order deleted", zap.String("order_id", id), zap.String("status", string(p.From)))
	uc.publish(ctx, order.Event{
		EventType:  order.EventOrderDeleted,
		StoreID:    storeID,
		OrderID:    id,
		Previous:   p.From,
		Transition: lifecycle.EventDelete,
	})
	return nil
}

func (uc *orderUseCase) rejected(o *model.Order, ev lifecycle.Event, err error) {
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		return
	}
	uc.logger.Warn("invalid order transition",
		zap.String("order_id", o.ID),
		zap.String("status", string(o.Status)),
		zap.String("event", string(ev)),
	)
}

// conflict explains a write that matched no row: the order was deleted or
// moved to another status since it was read.
func (uc *orderUseCase) conflict(ctx context.Context, storeID, id string, ev lifecycle.Event) error {
	current, err := uc.find(ctx, storeID, id)
	if err != nil {
		return err
	}
	uc.logger.Warn("order changed concurrently",
		zap.String("order_id", id),
		zap.String("status", string(current.Status)),
		zap.String("event", string(ev)),
	)
	return &order.ConflictError{OrderID: id, Current: current.Status, Event: ev}
}

func (uc *orderUseCase) DailySummary(ctx context.Context, storeID string) (*dto.DailySummary, error) {
	today := uc.now().In(uc.loc)
	closed, err := uc.repo.FindClosedSince(ctx, storeID, summary.StartOfDay(today))
	if err != nil {
		return nil, fmt.Errorf("load closed orders: %w", err)
	}

	orders := make([]*model.Order, len(closed))
	for i := range closed {
		orders[i] = &closed[i]
	}
	return &dto.DailySummary{
		Date:    today.Format("2006-01-02"),
		Summary: summary.Summarize(orders, today),
	}, nil
}

func (uc *orderUseCase) Watch(ctx context.Context, storeID string, bucket model.Bucket, send func(dto.Snapshot) error) error {
	if !bucket.Valid() {
		return fmt.Errorf("%w: %q", order.ErrInvalidBucket, bucket)
	}

	sub := uc.hub.Subscribe(storeID)
	defer sub.Close()

	var detector *feed.Detector
	if bucket == model.BucketPending {
		detector = feed.NewDetector()
	}

	push := func() error {
		orders, err := uc.List(ctx, storeID, bucket)
		if err != nil {
			return err
		}
		snap := dto.Snapshot{Bucket: bucket, Orders: orders}
		if detector != nil {
			ids := make([]string, len(orders))
			for i := range orders {
				ids[i] = orders[i].ID
			}
			snap.NewOrderIDs = detector.Observe(ids)
		}
		return send(snap)
	}

	if err := push(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.C:
			if !ok {
				return nil
			}
			// One snapshot covers every notice already queued.
		drain:
			for {
				select {
				case _, ok := <-sub.C:
					if !ok {
						return nil
					}
				default:
					break drain
				}
			}
			if err := push(); err != nil {
				return err
			}
		}
	}
}

func (uc *orderUseCase) MarkStockProcessed(ctx context.Context, storeID, id string) error {
	return uc.repo.MarkStockProcessed(ctx, storeID, id)
}

// publish writes ev to the orders topic. Live panels on this replica are
// notified directly when there is no broker or the write fails; otherwise
// the feed listener does it on consumption.
func (uc *orderUseCase) publish(ctx context.Context, ev order.Event) {
	ev.EventID = uuid.New().String()
	ev.Timestamp = uc.now()
	notice := feed.Notice{StoreID: ev.StoreID, OrderID: ev.OrderID, Type: ev.EventType}

	if uc.publisher == nil {
		uc.hub.Publish(notice)
		return
	}

	data, err := json.Marshal(ev)
	if err == nil {
		err = uc.publisher.Publish(ctx, ev.StoreID, data)
	}
	if err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("event_type", ev.EventType),
			zap.String("order_id", ev.OrderID),
			zap.Error(err),
		)
		uc.hub.Publish(notice)
	}
}
