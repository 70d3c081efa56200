package storefrontv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const OrderServiceName = "storefront.v1.OrderService"

const (
	OrderService_SubmitOrder_FullMethodName     = "/" + OrderServiceName + "/SubmitOrder"
	OrderService_GetOrder_FullMethodName        = "/" + OrderServiceName + "/GetOrder"
	OrderService_ListOrders_FullMethodName      = "/" + OrderServiceName + "/ListOrders"
	OrderService_AcceptOrder_FullMethodName     = "/" + OrderServiceName + "/AcceptOrder"
	OrderService_RejectOrder_FullMethodName     = "/" + OrderServiceName + "/RejectOrder"
	OrderService_MarkPreparing_FullMethodName   = "/" + OrderServiceName + "/MarkPreparing"
	OrderService_MarkReady_FullMethodName       = "/" + OrderServiceName + "/MarkReady"
	OrderService_MarkDelivered_FullMethodName   = "/" + OrderServiceName + "/MarkDelivered"
	OrderService_DeleteOrder_FullMethodName     = "/" + OrderServiceName + "/DeleteOrder"
	OrderService_GetDailySummary_FullMethodName = "/" + OrderServiceName + "/GetDailySummary"
	OrderService_WatchOrders_FullMethodName     = "/" + OrderServiceName + "/WatchOrders"
)

type OrderServiceServer interface {
	SubmitOrder(context.Context, *SubmitOrderRequest) (*OrderResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
	AcceptOrder(context.Context, *TransitionRequest) (*OrderResponse, error)
	RejectOrder(context.Context, *TransitionRequest) (*OrderResponse, error)
	MarkPreparing(context.Context, *TransitionRequest) (*OrderResponse, error)
	MarkReady(context.Context, *TransitionRequest) (*OrderResponse, error)
	MarkDelivered(context.Context, *TransitionRequest) (*OrderResponse, error)
	DeleteOrder(context.Context, *DeleteOrderRequest) (*emptypb.Empty, error)
	GetDailySummary(context.Context, *GetDailySummaryRequest) (*DailySummaryResponse, error)
	WatchOrders(*WatchOrdersRequest, grpc.ServerStreamingServer[OrdersSnapshot]) error
}

type UnimplementedOrderServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedOrderServiceServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*OrderResponse, error) {
	return nil, unimplemented("SubmitOrder")
}
func (UnimplementedOrderServiceServer) GetOrder(context.Context, *GetOrderRequest) (*OrderResponse, error) {
	return nil, unimplemented("GetOrder")
}
func (UnimplementedOrderServiceServer) ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error) {
	return nil, unimplemented("ListOrders")
}
func (UnimplementedOrderServiceServer) AcceptOrder(context.Context, *TransitionRequest) (*OrderResponse, error) {
	return nil, unimplemented("AcceptOrder")
}
func (UnimplementedOrderServiceServer) RejectOrder(context.Context, *TransitionRequest) (*OrderResponse, error) {
	return nil, unimplemented("RejectOrder")
}
func (UnimplementedOrderServiceServer) MarkPreparing(context.Context, *TransitionRequest) (*OrderResponse, error) {
	return nil, unimplemented("MarkPreparing")
}
func (UnimplementedOrderServiceServer) MarkReady(context.Context, *TransitionRequest) (*OrderResponse, error) {
	return nil, unimplemented("MarkReady")
}
func (UnimplementedOrderServiceServer) MarkDelivered(context.Context, *TransitionRequest) (*OrderResponse, error) {
	return nil, unimplemented("MarkDelivered")
}
func (UnimplementedOrderServiceServer) DeleteOrder(context.Context, *DeleteOrderRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteOrder")
}
func (UnimplementedOrderServiceServer) GetDailySummary(context.Context, *GetDailySummaryRequest) (*DailySummaryResponse, error) {
	return nil, unimplemented("GetDailySummary")
}
func (UnimplementedOrderServiceServer) WatchOrders(*WatchOrdersRequest, grpc.ServerStreamingServer[OrdersSnapshot]) error {
	return unimplemented("WatchOrders")
}

func transition(method string, call func(OrderServiceServer, context.Context, *TransitionRequest) (*OrderResponse, error)) grpc.MethodDesc {
	return unary(OrderServiceName, method, func(srv interface{}, ctx context.Context, in *TransitionRequest) (*OrderResponse, error) {
		return call(srv.(OrderServiceServer), ctx, in)
	})
}

func _OrderService_WatchOrders_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(WatchOrdersRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(OrderServiceServer).WatchOrders(m, &grpc.GenericServerStream[WatchOrdersRequest, OrdersSnapshot]{ServerStream: stream})
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OrderServiceName, "SubmitOrder", func(srv interface{}, ctx context.Context, in *SubmitOrderRequest) (*OrderResponse, error) {
			return srv.(OrderServiceServer).SubmitOrder(ctx, in)
		}),
		unary(OrderServiceName, "GetOrder", func(srv interface{}, ctx context.Context, in *GetOrderRequest) (*OrderResponse, error) {
			return srv.(OrderServiceServer).GetOrder(ctx, in)
		}),
		unary(OrderServiceName, "ListOrders", func(srv interface{}, ctx context.Context, in *ListOrdersRequest) (*ListOrdersResponse, error) {
			return srv.(OrderServiceServer).ListOrders(ctx, in)
		}),
		transition("AcceptOrder", OrderServiceServer.AcceptOrder),
		transition("RejectOrder", OrderServiceServer.RejectOrder),
		transition("MarkPreparing", OrderServiceServer.MarkPreparing),
		transition("MarkReady", OrderServiceServer.MarkReady),
		transition("MarkDelivered", OrderServiceServer.MarkDelivered),
		unary(OrderServiceName, "DeleteOrder", func(srv interface{}, ctx context.Context, in *DeleteOrderRequest) (*emptypb.Empty, error) {
			return srv.(OrderServiceServer).DeleteOrder(ctx, in)
		}),
		unary(OrderServiceName, "GetDailySummary", func(srv interface{}, ctx context.Context, in *GetDailySummaryRequest) (*DailySummaryResponse, error) {
			return srv.(OrderServiceServer).GetDailySummary(ctx, in)
		}),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchOrders",
			Handler:       _OrderService_WatchOrders_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "storefront/v1/order",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

type OrderServiceClient interface {
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	AcceptOrder(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	RejectOrder(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	MarkPreparing(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	MarkReady(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	MarkDelivered(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetDailySummary(ctx context.Context, in *GetDailySummaryRequest, opts ...grpc.CallOption) (*DailySummaryResponse, error)
	WatchOrders(ctx context.Context, in *WatchOrdersRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[OrdersSnapshot], error)
}

type orderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) OrderServiceClient {
	return &orderServiceClient{cc}
}

func (c *orderServiceClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_SubmitOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_GetOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, OrderService_ListOrders_FullMethodName, in, opts)
}

func (c *orderServiceClient) AcceptOrder(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_AcceptOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) RejectOrder(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_RejectOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) MarkPreparing(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_MarkPreparing_FullMethodName, in, opts)
}

func (c *orderServiceClient) MarkReady(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_MarkReady_FullMethodName, in, opts)
}

func (c *orderServiceClient) MarkDelivered(ctx context.Context, in *TransitionRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderService_MarkDelivered_FullMethodName, in, opts)
}

func (c *orderServiceClient) DeleteOrder(ctx context.Context, in *DeleteOrderRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, OrderService_DeleteOrder_FullMethodName, in, opts)
}

func (c *orderServiceClient) GetDailySummary(ctx context.Context, in *GetDailySummaryRequest, opts ...grpc.CallOption) (*DailySummaryResponse, error) {
	return invoke[DailySummaryResponse](ctx, c.cc, OrderService_GetDailySummary_FullMethodName, in, opts)
}

func (c *orderServiceClient) WatchOrders(ctx context.Context, in *WatchOrdersRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[OrdersSnapshot], error) {
	stream, err := c.cc.NewStream(ctx, &OrderService_ServiceDesc.Streams[0], OrderService_WatchOrders_FullMethodName, withJSON(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchOrdersRequest, OrdersSnapshot]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
