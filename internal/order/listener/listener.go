package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/feed"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the consuming side of the orders topic.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type CatalogInvalidator interface {
	InvalidateStore(ctx context.Context, storeID string) error
}

// FeedListener turns events on the orders topic into panel refreshes on this
// replica. It also flags stock processing for new orders and drops cached
// catalog entries after catalog edits.
type FeedListener struct {
	consumer Reader
	uc       order.UseCase
	catalog  CatalogInvalidator
	hub      *feed.Hub
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewFeedListener(consumer Reader, uc order.UseCase, catalog CatalogInvalidator, hub *feed.Hub, logger logger.ZapLogger) *FeedListener {
	return &FeedListener{
		consumer: consumer,
		uc:       uc,
		catalog:  catalog,
		hub:      hub,
		logger:   logger,
		backoff:  time.Second,
	}
}

func (l *FeedListener) Start(ctx context.Context) {
	l.logger.Info("Starting order feed Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order feed Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *FeedListener) processMessage(ctx context.Context, value []byte) {
	var event order.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.StoreID == "" {
		l.logger.Warn("Dropping event without store", zap.String("event_type", event.EventType))
		return
	}

	switch event.EventType {
	case order.EventOrderCreated:
		l.notify(event)
		if err := l.uc.MarkStockProcessed(ctx, event.StoreID, event.OrderID); err != nil {
			l.logger.Error("Failed to mark stock processed",
				zap.String("order_id", event.OrderID),
				zap.Error(err),
			)
		}
	case order.EventOrderStatusChanged, order.EventOrderDeleted:
		l.notify(event)
	case order.EventCatalogUpdated:
		if l.catalog == nil {
			return
		}
		if err := l.catalog.InvalidateStore(ctx, event.StoreID); err != nil {
			l.logger.Error("Failed to invalidate catalog cache",
				zap.String("store_id", event.StoreID),
				zap.Error(err),
			)
		}
	default:
		l.logger.Debug("Ignoring event", zap.String("event_type", event.EventType))
	}
}

func (l *FeedListener) notify(event order.Event) {
	n := l.hub.Publish(feed.Notice{StoreID: event.StoreID, OrderID: event.OrderID, Type: event.EventType})
	l.logger.Debug("Order change fanned out",
		zap.String("store_id", event.StoreID),
		zap.String("event_type", event.EventType),
		zap.Int("panels", n),
	)
}
