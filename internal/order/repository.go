package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// Create fails with ErrIdempotencyConflict when the store already has an
	// order with the same idempotency key.
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, storeID, id string) (*model.Order, error)
	FindByIdempotencyKey(ctx context.Context, storeID, key string) (*model.Order, error)
	FindByStatuses(ctx context.Context, storeID string, statuses []model.OrderStatus, ascending bool, limit int) ([]model.Order, error)
	FindClosedSince(ctx context.Context, storeID string, since time.Time) ([]model.Order, error)

	// ApplyTransition writes p only while the order still has status p.From.
	// It reports false when no row matched.
	ApplyTransition(ctx context.Context, storeID, id string, p lifecycle.Patch) (bool, error)
	Delete(ctx context.Context, storeID, id string, from model.OrderStatus) (bool, error)
	MarkStockProcessed(ctx context.Context, storeID, id string) error
}

// Reserver holds short-lived idempotency reservations.
type Reserver interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
	Owner(ctx context.Context, key string) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// StoreReader loads the store an order is placed against.
type StoreReader interface {
	Store(ctx context.Context, storeID string) (*model.Store, error)
}
