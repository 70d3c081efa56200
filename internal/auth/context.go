package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
)

// StoreHeader carries the owner's store scope on owner-side calls.
const StoreHeader = "x-store-id"

type ctxKey struct{}

func WithStoreID(ctx context.Context, storeID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, storeID)
}

// GetStoreID returns the store scope set by the interceptor, falling back to
// the incoming metadata. It returns "" when the call is unscoped.
func GetStoreID(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok && val != "" {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(StoreHeader); len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	}
	return ""
}
