package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	storefrontv1 "github.com/fekuna/omnipos-storefront-service/api/storefront/v1"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/convert"
	"github.com/fekuna/omnipos-storefront-service/internal/lifecycle"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type OrderHandler struct {
	storefrontv1.UnimplementedOrderServiceServer

	uc     order.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger, clock func() time.Time) *OrderHandler {
	if clock == nil {
		clock = time.Now
	}
	return &OrderHandler{
		uc:     uc,
		logger: log,
		now:    clock,
	}
}

var errMissingScope = status.Error(codes.Unauthenticated, "missing store scope")

func scope(ctx context.Context) (string, error) {
	storeID := auth.GetStoreID(ctx)
	if storeID == "" {
		return "", errMissingScope
	}
	return storeID, nil
}

func (h *OrderHandler) toStatus(method string, err error) error {
	var dup *order.DuplicateError
	switch {
	case errors.Is(err, checkout.ErrValidationFailed),
		errors.Is(err, checkout.ErrInvalidInput),
		errors.Is(err, order.ErrInvalidBucket):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, order.ErrConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrConfirmationRequired):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &dup):
		return status.Error(codes.AlreadyExists, dup.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, catalog.ErrStoreNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	h.logger.Error("order call failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}

func (h *OrderHandler) toProto(o *model.Order, now time.Time) *storefrontv1.Order {
	allowed := lifecycle.Allowed(o.Status)
	events := make([]string, len(allowed))
	for i, ev := range allowed {
		events[i] = string(ev)
	}

	return &storefrontv1.Order{
		Id:               o.ID,
		StoreId:          o.StoreID,
		Status:           string(o.Status),
		Customer:         convert.CustomerToProto(o.Customer),
		Note:             o.Note,
		Delivery:         convert.DeliveryToProto(o.Delivery),
		Items:            convert.LineItemsToProto(o.Items),
		Subtotal:         o.Subtotal,
		FinalTotal:       o.FinalTotal,
		PaymentMode:      string(o.PaymentMode),
		AmountPaidNow:    o.AmountPaidNow,
		DepositAmount:    o.DepositAmount,
		EstimatedMinutes: int32(o.EstimatedMinutes),
		StockProcessed:   o.StockProcessed,
		CreatedAt:        convert.Timestamp(o.CreatedAt),
		DecisionAt:       convert.TimestampPtr(o.DecisionAt),
		ReadyAt:          convert.TimestampPtr(o.ReadyAt),
		ClosedAt:         convert.TimestampPtr(o.ClosedAt),
		UpdatedAt:        convert.Timestamp(o.UpdatedAt),
		WaitingMinutes:   order.WaitingMinutes(o, now),
		Waiting:          order.Waiting(o, now),
		AllowedEvents:    events,
	}
}

func (h *OrderHandler) toProtoList(orders []model.Order) []*storefrontv1.Order {
	now := h.now()
	out := make([]*storefrontv1.Order, len(orders))
	for i := range orders {
		out[i] = h.toProto(&orders[i], now)
	}
	return out
}

func bucketOf(s string) model.Bucket {
	if s == "" {
		return model.BucketPending
	}
	return model.Bucket(strings.ToLower(strings.TrimSpace(s)))
}

// --- customer side ---

func (h *OrderHandler) SubmitOrder(ctx context.Context, req *storefrontv1.SubmitOrderRequest) (*storefrontv1.OrderResponse, error) {
	o, err := h.uc.Submit(ctx, &dto.SubmitInput{
		StoreID:     strings.TrimSpace(req.StoreId),
		RequestID:   req.RequestId,
		Lines:       convert.LineItemsFromProto(req.Cart),
		Customer:    convert.CustomerFromProto(req.Customer),
		Note:        req.Note,
		Delivery:    convert.DeliveryFromProto(req.Delivery),
		PaymentMode: model.PaymentMode(req.PaymentMode),
	})
	if err != nil {
		return nil, h.toStatus("SubmitOrder", err)
	}
	return &storefrontv1.OrderResponse{Order: h.toProto(o, h.now())}, nil
}

// GetOrder is the customer's tracking view. Owners may omit the store and
// rely on their scope.
func (h *OrderHandler) GetOrder(ctx context.Context, req *storefrontv1.GetOrderRequest) (*storefrontv1.OrderResponse, error) {
	storeID := strings.TrimSpace(req.StoreId)
	if storeID == "" {
		var err error
		if storeID, err = scope(ctx); err != nil {
			return nil, err
		}
	}

	o, err := h.uc.Get(ctx, storeID, req.OrderId)
	if err != nil {
		return nil, h.toStatus("GetOrder", err)
	}
	return &storefrontv1.OrderResponse{Order: h.toProto(o, h.now())}, nil
}

// --- owner side ---

func (h *OrderHandler) ListOrders(ctx context.Context, req *storefrontv1.ListOrdersRequest) (*storefrontv1.ListOrdersResponse, error) {
	storeID, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := h.uc.List(ctx, storeID, bucketOf(req.Bucket))
	if err != nil {
		return nil, h.toStatus("ListOrders", err)
	}
	return &storefrontv1.ListOrdersResponse{Orders: h.toProtoList(orders)}, nil
}

func (h *OrderHandler) transition(ctx context.Context, method string, req *storefrontv1.TransitionRequest, ev lifecycle.Event) (*storefrontv1.OrderResponse, error) {
	storeID, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	o, err := h.uc.Transition(ctx, storeID, req.OrderId, ev)
	if err != nil {
		return nil, h.toStatus(method, err)
	}
	return &storefrontv1.OrderResponse{Order: h.toProto(o, h.now())}, nil
}

func (h *OrderHandler) AcceptOrder(ctx context.Context, req *storefrontv1.TransitionRequest) (*storefrontv1.OrderResponse, error) {
	return h.transition(ctx, "AcceptOrder", req, lifecycle.EventAccept)
}

func (h *OrderHandler) RejectOrder(ctx context.Context, req *storefrontv1.TransitionRequest) (*storefrontv1.OrderResponse, error) {
	return h.transition(ctx, "RejectOrder", req, lifecycle.EventReject)
}

func (h *OrderHandler) MarkPreparing(ctx context.Context, req *storefrontv1.TransitionRequest) (*storefrontv1.OrderResponse, error) {
	return h.transition(ctx, "MarkPreparing", req, lifecycle.EventMarkPreparing)
}

func (h *OrderHandler) MarkReady(ctx context.Context, req *storefrontv1.TransitionRequest) (*storefrontv1.OrderResponse, error) {
	return h.transition(ctx, "MarkReady", req, lifecycle.EventMarkReady)
}

func (h *OrderHandler) MarkDelivered(ctx context.Context, req *storefrontv1.TransitionRequest) (*storefrontv1.OrderResponse, error) {
	return h.transition(ctx, "MarkDelivered", req, lifecycle.EventMarkDelivered)
}

func (h *OrderHandler) DeleteOrder(ctx context.Context, req *storefrontv1.DeleteOrderRequest) (*emptypb.Empty, error) {
	storeID, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Delete(ctx, storeID, req.OrderId, req.Confirm); err != nil {
		return nil, h.toStatus("DeleteOrder", err)
	}
	return &emptypb.Empty{}, nil
}

func (h *OrderHandler) GetDailySummary(ctx context.Context, req *storefrontv1.GetDailySummaryRequest) (*storefrontv1.DailySummaryResponse, error) {
	storeID, err := scope(ctx)
	if err != nil {
		return nil, err
	}

	s, err := h.uc.DailySummary(ctx, storeID)
	if err != nil {
		return nil, h.toStatus("GetDailySummary", err)
	}

	byMode := make(map[string]storefrontv1.ModeTotals, len(s.ByMode))
	for mode, t := range s.ByMode {
		byMode[string(mode)] = storefrontv1.ModeTotals{Count: int32(t.Count), Revenue: t.Revenue}
	}
	return &storefrontv1.DailySummaryResponse{
		Date:                s.Date,
		Count:               int32(s.Count),
		Revenue:             s.Revenue,
		DepositsCollected:   s.DepositsCollected,
		DepositsOutstanding: s.DepositsOutstanding,
		CashExpected:        s.CashExpected,
		ByMode:              byMode,
	}, nil
}

func (h *OrderHandler) WatchOrders(req *storefrontv1.WatchOrdersRequest, stream grpc.ServerStreamingServer[storefrontv1.OrdersSnapshot]) error {
	ctx := stream.Context()
	storeID, err := scope(ctx)
	if err != nil {
		return err
	}

	bucket := bucketOf(req.Bucket)
	h.logger.Debug("owner panel subscribed", zap.String("store_id", storeID), zap.String("bucket", string(bucket)))

	err = h.uc.Watch(ctx, storeID, bucket, func(s dto.Snapshot) error {
		return stream.Send(&storefrontv1.OrdersSnapshot{
			Bucket:      string(s.Bucket),
			Orders:      h.toProtoList(s.Orders),
			NewOrderIds: s.NewOrderIDs,
		})
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return status.FromContextError(ctx.Err()).Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return h.toStatus("WatchOrders", err)
}
