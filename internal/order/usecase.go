package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

type UseCase interface {
	Submit(ctx context.Context, input *dto.SubmitInput) (*model.Order, error)
	Get(ctx context.Context, storeID, id string) (*model.Order, error)
	List(ctx context.Context, storeID string, bucket model.Bucket) ([]model.Order, error)
	Transition(ctx context.Context, storeID, id string, ev lifecycle.Event) (*model.Order, error)
	Delete(ctx context.Context, storeID, id string, confirmed bool) error
	DailySummary(ctx context.Context, storeID string) (*dto.DailySummary, error)

	// Watch sends a bucket snapshot now and again after every change notice
	// for the store, until ctx ends or send fails.
	Watch(ctx context.Context, storeID string, bucket model.Bucket, send func(dto.Snapshot) error) error

	MarkStockProcessed(ctx context.Context, storeID, id string) error
}
