package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/cart"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pricing"
	"go.uber.org/zap"
)

func cartView(c *cart.Cart) *dto.CartView {
	return &dto.CartView{Lines: c.Lines(), Subtotal: c.Subtotal(), Units: c.Units()}
}

func (uc *catalogUseCase) AddItems(ctx context.Context, input *dto.AddItemsInput) (*dto.CartView, error) {
	c, err := cart.New(input.Cart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
	}
	if len(input.Selections) == 0 {
		return cartView(c), nil
	}

	store, err := uc.activeStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	products, err := uc.products(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	m := uc.minute()
	lines := make([]model.LineItem, 0, len(input.Selections))
	for _, sel := range input.Selections {
		p, ok := byID[sel.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, sel.ProductID)
		}
		line, err := catalog.Resolve(p, sel, m, store.Windows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, uc.sealer.Seal(store.ID, line))
	}

	if err := c.AddAll(lines...); err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
	}
	return cartView(c), nil
}

func (uc *catalogUseCase) RemoveItem(ctx context.Context, input *dto.RemoveItemInput) (*dto.CartView, error) {
	c, err := cart.New(input.Cart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
	}
	c.Remove(input.Key)
	return cartView(c), nil
}

func (uc *catalogUseCase) Quote(ctx context.Context, input *dto.QuoteInput) (*dto.QuoteView, error) {
	if !input.PaymentMode.Valid() {
		return nil, fmt.Errorf("%w: unknown payment mode %q", catalog.ErrInvalidSelection, input.PaymentMode)
	}
	if !input.Delivery.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown delivery type %q", catalog.ErrInvalidSelection, input.Delivery.Type)
	}
	c, err := cart.New(input.Cart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrInvalidSelection, err)
	}
	store, err := uc.activeStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}

	q, err := uc.zones.Quote(c.Lines(), store.Payment, input.Delivery, input.PaymentMode)
	if errors.Is(err, pricing.ErrUnknownZone) {
		uc.logger.Warn("unknown delivery zone, charging 0",
			zap.String("store_id", store.ID),
			zap.String("zone_key", input.Delivery.ZoneKey),
		)
	}

	view := &dto.QuoteView{
		Subtotal:       q.Subtotal,
		DeliveryCharge: q.DeliveryCharge,
		FinalTotal:     q.FinalTotal,
		Deposit:        q.Deposit,
		DepositOffered: q.DepositOffered,
		AmountDueNow:   q.AmountDueNow,
	}
	if input.Delivery.Type == model.DeliveryDelivery {
		if z, ok := uc.zones.Lookup(input.Delivery.ZoneKey); ok {
			view.ZoneName = z.Name
		}
	}
	return view, nil
}
