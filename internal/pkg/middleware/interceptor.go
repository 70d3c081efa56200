package middleware

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ContextInterceptor copies the store scope header into the context. Calls
// without it pass through; owner handlers reject them.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		return handler(scoped(ctx), req)
	}
}

func StreamContextInterceptor() grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &scopedStream{ServerStream: ss, ctx: scoped(ss.Context())})
	}
}

func scoped(ctx context.Context) context.Context {
	if id := auth.GetStoreID(ctx); id != "" {
		return auth.WithStoreID(ctx, id)
	}
	return ctx
}

type scopedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *scopedStream) Context() context.Context { return s.ctx }

// LoggingInterceptor logs every unary call with its status code and latency,
// and turns handler panics into Internal errors.
func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in grpc handler", zap.String("method", info.FullMethod), zap.Any("panic", r))
				err = status.Error(codes.Internal, "internal error")
			}
			code := status.Code(err)
			fields := []zap.Field{
				zap.String("method", info.FullMethod),
				zap.String("code", code.String()),
				zap.Duration("latency", time.Since(start)),
			}
			if id := auth.GetStoreID(ctx); id != "" {
				fields = append(fields, zap.String("store_id", id))
			}
			if code == codes.Internal || code == codes.Unknown {
				log.Error("grpc call failed", append(fields, zap.Error(err))...)
				return
			}
			log.Debug("grpc call", fields...)
		}()
		return handler(ctx, req)
	}
}
