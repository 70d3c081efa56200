package handler

import (
	"context"
	"errors"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/convert"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CatalogHandler struct {
	storefrontv1.UnimplementedCatalogServiceServer
	storefrontv1.UnimplementedCartServiceServer

	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrStoreNotFound), errors.Is(err, catalog.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, catalog.ErrProductUnavailable):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, catalog.ErrInvalidSelection):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.Error("catalog call failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

// --- CatalogService ---

func (h *CatalogHandler) GetStore(ctx context.Context, req *storefrontv1.GetStoreRequest) (*storefrontv1.StoreResponse, error) {
	v, err := h.uc.GetStore(ctx, req.Slug)
	if err != nil {
		return nil, h.toStatus("GetStore", err)
	}
	return &storefrontv1.StoreResponse{Store: convert.StoreToProto(v.Store, v.OpenNow, v.ActiveWindows)}, nil
}

func (h *CatalogHandler) ListStores(ctx context.Context, req *storefrontv1.ListStoresRequest) (*storefrontv1.ListStoresResponse, error) {
	views, err := h.uc.ListStores(ctx)
	if err != nil {
		return nil, h.toStatus("ListStores", err)
	}

	stores := make([]*storefrontv1.Store, len(views))
	for i, v := range views {
		stores[i] = convert.StoreToProto(v.Store, v.OpenNow, v.ActiveWindows)
	}
	return &storefrontv1.ListStoresResponse{Stores: stores}, nil
}

func (h *CatalogHandler) ListProducts(ctx context.Context, req *storefrontv1.ListProductsRequest) (*storefrontv1.ListProductsResponse, error) {
	views, err := h.uc.ListProducts(ctx, &dto.ProductFilters{StoreID: req.StoreId, Category: req.Category})
	if err != nil {
		return nil, h.toStatus("ListProducts", err)
	}

	products := make([]*storefrontv1.Product, len(views))
	for i, v := range views {
		products[i] = convert.ProductToProto(v.Product, v.AvailableNow)
	}
	return &storefrontv1.ListProductsResponse{Products: products}, nil
}

// --- CartService ---

func cartResponse(v *dto.CartView) *storefrontv1.CartResponse {
	return &storefrontv1.CartResponse{
		Cart:     convert.LineItemsToProto(v.Lines),
		Subtotal: v.Subtotal,
		Units:    v.Units,
	}
}

func (h *CatalogHandler) AddItems(ctx context.Context, req *storefrontv1.AddItemsRequest) (*storefrontv1.CartResponse, error) {
	selections := make([]dto.Selection, 0, len(req.Selections))
	for _, s := range req.Selections {
		if s == nil {
			continue
		}
		selections = append(selections, dto.Selection{
			ProductID:  s.ProductId,
			VariantKey: s.VariantKey,
			Options:    s.Options,
			Quantity:   s.Quantity,
		})
	}

	v, err := h.uc.AddItems(ctx, &dto.AddItemsInput{
		StoreID:    req.StoreId,
		Cart:       convert.LineItemsFromProto(req.Cart),
		Selections: selections,
	})
	if err != nil {
		return nil, h.toStatus("AddItems", err)
	}
	return cartResponse(v), nil
}

func (h *CatalogHandler) RemoveItem(ctx context.Context, req *storefrontv1.RemoveItemRequest) (*storefrontv1.CartResponse, error) {
	v, err := h.uc.RemoveItem(ctx, &dto.RemoveItemInput{
		Cart: convert.LineItemsFromProto(req.Cart),
		Key:  req.Key,
	})
	if err != nil {
		return nil, h.toStatus("RemoveItem", err)
	}
	return cartResponse(v), nil
}

func (h *CatalogHandler) Quote(ctx context.Context, req *storefrontv1.QuoteRequest) (*storefrontv1.QuoteResponse, error) {
	q, err := h.uc.Quote(ctx, &dto.QuoteInput{
		StoreID:     req.StoreId,
		Cart:        convert.LineItemsFromProto(req.Cart),
		Delivery:    convert.DeliveryFromProto(req.Delivery),
		PaymentMode: model.PaymentMode(req.PaymentMode),
	})
	if err != nil {
		return nil, h.toStatus("Quote", err)
	}
	return &storefrontv1.QuoteResponse{
		Subtotal:       q.Subtotal,
		DeliveryCharge: q.DeliveryCharge,
		ZoneName:       q.ZoneName,
		FinalTotal:     q.FinalTotal,
		Deposit:        q.Deposit,
		DepositOffered: q.DepositOffered,
		AmountDueNow:   q.AmountDueNow,
	}, nil
}
