package catalog

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	GetStore(ctx context.Context, slug string) (*dto.StoreView, error)
	ListStores(ctx context.Context) ([]dto.StoreView, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductView, error)
	InvalidateStore(ctx context.Context, storeID string) error

	// Cart ops. The cart itself lives with the client.
	AddItems(ctx context.Context, input *dto.AddItemsInput) (*dto.CartView, error)
	RemoveItem(ctx context.Context, input *dto.RemoveItemInput) (*dto.CartView, error)
	Quote(ctx context.Context, input *dto.QuoteInput) (*dto.QuoteView, error)

	// Store returns the raw store for checkout, bypassing the active filter.
	Store(ctx context.Context, storeID string) (*model.Store, error)
}
