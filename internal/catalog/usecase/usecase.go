package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/availability"
	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
	"go.uber.org/zap"
)

type Options struct {
	Zones    pricing.ZoneTable
	Location *time.Location
	CacheTTL time.Duration
	Clock    func() time.Time
	// Sealer signs the lines AddItems hands back. Checkout must share it.
	Sealer   *cart.Sealer
}

type catalogUseCase struct {
	repo   catalog.Repository
	cache  catalog.Cache
	zones  pricing.ZoneTable
	loc    *time.Location
	ttl    time.Duration
	now    func() time.Time
	sealer *cart.Sealer
	logger logger.ZapLogger
}

// NewCatalogUseCase wires the catalog reads. cache may be nil.
func NewCatalogUseCase(repo catalog.Repository, c catalog.Cache, log logger.ZapLogger, opts Options) catalog.UseCase {
	uc := &catalogUseCase{
		repo:   repo,
		cache:  c,
		zones:  opts.Zones,
		loc:    opts.Location,
		ttl:    opts.CacheTTL,
		now:    opts.Clock,
		sealer: opts.Sealer,
		logger: log,
	}
	if uc.zones == nil {
		uc.zones = pricing.DefaultZones
	}
	if uc.loc == nil {
		uc.loc = time.UTC
	}
	if uc.ttl <= 0 {
		uc.ttl = 5 * time.Minute
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.sealer == nil {
		uc.sealer = cart.NewSealer(nil)
	}
	return uc
}

func storeKey(id string) string    { return "catalog:store:" + id }
func productsKey(id string) string { return "catalog:products:" + id }

const storesKey = "catalog:stores"

func (uc *catalogUseCase) minute() int {
	return availability.MinuteOfDay(uc.now().In(uc.loc))
}

// cached runs load on a cache miss and stores the result. Cache failures only
// cost a database round trip.
func (uc *catalogUseCase) cached(ctx context.Context, key string, dst interface{}, load func() (bool, error)) error {
	if uc.cache != nil {
		err := uc.cache.GetJSON(ctx, key, dst)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	found, err := load()
	if err != nil || !found {
		return err
	}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, dst, uc.ttl); err != nil {
			uc.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (uc *catalogUseCase) Store(ctx context.Context, storeID string) (*model.Store, error) {
	id := strings.TrimSpace(storeID)
	if id == "" {
		return nil, catalog.ErrStoreNotFound
	}

	var store *model.Store
	err := uc.cached(ctx, storeKey(id), &store, func() (bool, error) {
		s, err := uc.repo.FindStoreByID(ctx, id)
		if err != nil {
			return false, fmt.Errorf("find store %s: %w", id, err)
		}
		store = s
		return s != nil, nil
	})
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, catalog.ErrStoreNotFound
	}

	if bad := availability.Malformed(store.Windows); len(bad) > 0 {
		uc.logger.Warn("store has malformed time windows, treating them as open",
			zap.String("store_id", store.ID),
			zap.Strings("window", bad),
		)
	}
	return store, nil
}

func (uc *catalogUseCase) view(s model.Store) dto.StoreView {
	m := uc.minute()
	return dto.StoreView{
		Store:         s,
		OpenNow:       availability.StoreOpen(m, s.Windows),
		ActiveWindows: availability.ActiveWindows(m, s.Windows),
	}
}

func (uc *catalogUseCase) activeStore(ctx context.Context, slug string) (*model.Store, error) {
	s, err := uc.Store(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, catalog.ErrStoreNotFound
	}
	return s, nil
}

func (uc *catalogUseCase) GetStore(ctx context.Context, slug string) (*dto.StoreView, error) {
	s, err := uc.activeStore(ctx, slug)
	if err != nil {
		return nil, err
	}
	v := uc.view(*s)
	return &v, nil
}

func (uc *catalogUseCase) ListStores(ctx context.Context) ([]dto.StoreView, error) {
	var stores []model.Store
	err := uc.cached(ctx, storesKey, &stores, func() (bool, error) {
		s, err := uc.repo.FindActiveStores(ctx)
		if err != nil {
			return false, fmt.Errorf("find active stores: %w", err)
		}
		stores = s
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	views := make([]dto.StoreView, 0, len(stores))
	for _, s := range stores {
		views = append(views, uc.view(s))
	}
	return views, nil
}

func (uc *catalogUseCase) products(ctx context.Context, storeID string) ([]model.Product, error) {
	var products []model.Product
	err := uc.cached(ctx, productsKey(storeID), &products, func() (bool, error) {
		p, err := uc.repo.FindProductsByStore(ctx, storeID)
		if err != nil {
			return false, fmt.Errorf("find products of %s: %w", storeID, err)
		}
		products = p
		return true, nil
	})
	return products, err
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]dto.ProductView, error) {
	store, err := uc.activeStore(ctx, filters.StoreID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	m := uc.minute()
	views := make([]dto.ProductView, 0, len(products))
	for i := range products {
		p := &products[i]
		if filters.Category != "" && !strings.EqualFold(p.Category, filters.Category) {
			continue
		}
		views = append(views, dto.ProductView{
			Product:      *p,
			AvailableNow: availability.ProductAvailable(m, p, store.Windows),
		})
	}
	return views, nil
}

// InvalidateStore drops every cached entry of storeID after a catalog edit.
func (uc *catalogUseCase) InvalidateStore(ctx context.Context, storeID string) error {
	if uc.cache == nil {
		return nil
	}
	if err := uc.cache.DeletePattern(ctx, "catalog:*:"+storeID); err != nil {
		return err
	}
	return uc.cache.DeletePattern(ctx, storesKey)
}
