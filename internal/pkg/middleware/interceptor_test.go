package middleware

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/storefront.v1.OrderService/AcceptOrder"}

func TestContextInterceptorCopiesScope(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(auth.StoreHeader, "store-1"))

	var seen string
	_, err := ContextInterceptor()(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = auth.GetStoreID(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "store-1", seen)
}

func TestLoggingInterceptorRecovers(t *testing.T) {
	_, err := LoggingInterceptor(logger.NewNop())(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	resp, err := LoggingInterceptor(logger.NewNop())(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return req, status.Error(codes.NotFound, "order not found")
	})
	assert.Equal(t, "req", resp)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
