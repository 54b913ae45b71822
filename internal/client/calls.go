package client

import (
	"context"

	"github.com/MKhiriev/t4-api/internal/querycache"
	"github.com/MKhiriev/t4-api/internal/rpc"
)

// Query calls the query p with in through the client in ctx. Results are
// served from the query cache while fresh.
func Query[I, O any](ctx context.Context, p rpc.Procedure[I, O], in I) (O, error) {
	var zero O

	rpcCtx, ok := FromContext(ctx)
	if !ok {
		return zero, ErrNoProvider
	}

	key, err := querycache.Key(p.Path, in)
	if err != nil {
		return zero, err
	}

	return querycache.Fetch(ctx, rpcCtx.Cache, key, func(ctx context.Context) (O, error) {
		return p.Call(ctx, rpcCtx.RPC, in)
	})
}

// Mutate calls the mutation p with in through the client in ctx. On success
// the cached results of the invalidates paths are dropped.
func Mutate[I, O any](ctx context.Context, p rpc.Procedure[I, O], in I, invalidates ...string) (O, error) {
	var zero O

	rpcCtx, ok := FromContext(ctx)
	if !ok {
		return zero, ErrNoProvider
	}

	out, err := p.Call(ctx, rpcCtx.RPC, in)
	if err != nil {
		return zero, err
	}

	if len(invalidates) > 0 {
		rpcCtx.Cache.Invalidate(invalidates...)
	}
	return out, nil
}
