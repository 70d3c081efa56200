package storefrontv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CartServiceName = "storefront.v1.CartService"

const (
	CartService_AddItems_FullMethodName   = "/" + CartServiceName + "/AddItems"
	CartService_RemoveItem_FullMethodName = "/" + CartServiceName + "/RemoveItem"
	CartService_Quote_FullMethodName      = "/" + CartServiceName + "/Quote"
)

type CartServiceServer interface {
	AddItems(context.Context, *AddItemsRequest) (*CartResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error)
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
}

type UnimplementedCartServiceServer struct{}

func (UnimplementedCartServiceServer) AddItems(context.Context, *AddItemsRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItems not implemented")
}
func (UnimplementedCartServiceServer) RemoveItem(context.Context, *RemoveItemRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItem not implemented")
}
func (UnimplementedCartServiceServer) Quote(context.Context, *QuoteRequest) (*QuoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Quote not implemented")
}

var CartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CartServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CartServiceName, "AddItems", func(srv interface{}, ctx context.Context, in *AddItemsRequest) (*CartResponse, error) {
			return srv.(CartServiceServer).AddItems(ctx, in)
		}),
		unary(CartServiceName, "RemoveItem", func(srv interface{}, ctx context.Context, in *RemoveItemRequest) (*CartResponse, error) {
			return srv.(CartServiceServer).RemoveItem(ctx, in)
		}),
		unary(CartServiceName, "Quote", func(srv interface{}, ctx context.Context, in *QuoteRequest) (*QuoteResponse, error) {
			return srv.(CartServiceServer).Quote(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/cart",
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartService_ServiceDesc, srv)
}

type CartServiceClient interface {
	AddItems(ctx context.Context, in *AddItemsRequest, opts ...grpc.CallOption) (*CartResponse, error)
	RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartResponse, error)
	Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error)
}

type cartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) CartServiceClient {
	return &cartServiceClient{cc}
}

func (c *cartServiceClient) AddItems(ctx context.Context, in *AddItemsRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.cc, CartService_AddItems_FullMethodName, in, opts)
}

func (c *cartServiceClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.cc, CartService_RemoveItem_FullMethodName, in, opts)
}

func (c *cartServiceClient) Quote(ctx context.Context, in *QuoteRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return invoke[QuoteResponse](ctx, c.cc, CartService_Quote_FullMethodName, in, opts)
}
