package catalog

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	FindStoreByID(ctx context.Context, id string) (*model.Store, error)
	FindActiveStores(ctx context.Context) ([]model.Store, error)
	FindProductsByStore(ctx context.Context, storeID string) ([]model.Product, error)
}

// Cache is the read-through cache in front of the repository.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}
