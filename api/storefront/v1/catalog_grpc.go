package storefrontv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CatalogServiceName = "storefront.v1.CatalogService"

const (
	CatalogService_GetStore_FullMethodName     = "/" + CatalogServiceName + "/GetStore"
	CatalogService_ListStores_FullMethodName   = "/" + CatalogServiceName + "/ListStores"
	CatalogService_ListProducts_FullMethodName = "/" + CatalogServiceName + "/ListProducts"
)

type CatalogServiceServer interface {
	GetStore(context.Context, *GetStoreRequest) (*StoreResponse, error)
	ListStores(context.Context, *ListStoresRequest) (*ListStoresResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
}

type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) GetStore(context.Context, *GetStoreRequest) (*StoreResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStore not implemented")
}
func (UnimplementedCatalogServiceServer) ListStores(context.Context, *ListStoresRequest) (*ListStoresResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListStores not implemented")
}
func (UnimplementedCatalogServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "GetStore", func(srv interface{}, ctx context.Context, in *GetStoreRequest) (*StoreResponse, error) {
			return srv.(CatalogServiceServer).GetStore(ctx, in)
		}),
		unary(CatalogServiceName, "ListStores", func(srv interface{}, ctx context.Context, in *ListStoresRequest) (*ListStoresResponse, error) {
			return srv.(CatalogServiceServer).ListStores(ctx, in)
		}),
		unary(CatalogServiceName, "ListProducts", func(srv interface{}, ctx context.Context, in *ListProductsRequest) (*ListProductsResponse, error) {
			return srv.(CatalogServiceServer).ListProducts(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/catalog",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

type CatalogServiceClient interface {
	GetStore(ctx context.Context, in *GetStoreRequest, opts ...grpc.CallOption) (*StoreResponse, error)
	ListStores(ctx context.Context, in *ListStoresRequest, opts ...grpc.CallOption) (*ListStoresResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc}
}

func (c *catalogServiceClient) GetStore(ctx context.Context, in *GetStoreRequest, opts ...grpc.CallOption) (*StoreResponse, error) {
	return invoke[StoreResponse](ctx, c.cc, CatalogService_GetStore_FullMethodName, in, opts)
}

func (c *catalogServiceClient) ListStores(ctx context.Context, in *ListStoresRequest, opts ...grpc.CallOption) (*ListStoresResponse, error) {
	return invoke[ListStoresResponse](ctx, c.cc, CatalogService_ListStores_FullMethodName, in, opts)
}

func (c *catalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, CatalogService_ListProducts_FullMethodName, in, opts)
}
