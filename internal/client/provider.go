package client

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/querycache"
	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/MKhiriev/t4-api/models"
)

// Context is the pair a [Provider] hands to its callers.
type Context struct {
	RPC   *rpc.Client
	Cache *querycache.Cache
}

// Provider lazily builds the RPC client and query cache of one process.
// It is safe for concurrent use.
type Provider struct {
	cfg      config.ClientConfig
	endpoint string
	logger   *logger.Logger

	once   sync.Once
	rpcCtx *Context
	err    error
	closed atomic.Bool

	// builds counts constructions; it never exceeds one.
	builds atomic.Int32
}

// NewProvider returns a provider for cfg. Nothing is dialled or allocated
// until [Provider.Context] is first called.
func NewProvider(cfg config.ClientConfig, logger *logger.Logger) *Provider {
	return &Provider{
		cfg:      cfg,
		endpoint: rpc.EndpointURL(cfg.APIURL, cfg.DevHost, models.Platform(cfg.Platform)),
		logger:   logger,
	}
}

// Endpoint is the RPC URL the client sends to: the API URL with localhost
// substituted for the configured device and "/trpc" appended.
func (p *Provider) Endpoint() string {
	return p.endpoint
}

// Context returns the provider's client and cache, building them on the
// first call. Later calls return the same pointers, or the same error when
// the first build failed.
func (p *Provider) Context() (*Context, error) {
	if p.closed.Load() {
		return nil, ErrProviderClosed
	}

	p.once.Do(func() {
		p.rpcCtx, p.err = p.build()
	})
	if p.rpcCtx == nil && p.err == nil {
		// Close won the race for the first call
		return nil, ErrProviderClosed
	}
	return p.rpcCtx, p.err
}

func (p *Provider) build() (*Context, error) {
	p.builds.Add(1)

	link, err := rpc.NewHTTPBatchLink(rpc.HTTPBatchLinkConfig{
		URL:      p.endpoint,
		MaxWait:  p.cfg.BatchWait,
		MaxCalls: p.cfg.BatchMaxCalls,
		Timeout:  p.cfg.RequestTimeout,
		Platform: models.Platform(p.cfg.Platform),
	}, p.logger)
	if err != nil {
		return nil, fmt.Errorf("error creating rpc link: %w", err)
	}

	p.logger.Debug().Str("endpoint", p.endpoint).Msg("rpc client created")

	return &Context{
		RPC:   rpc.NewClient(link, rpc.StructuredTransformer{}),
		Cache: querycache.New(querycache.Config{TTL: p.cfg.CacheTTL}),
	}, nil
}

// Wrap returns a child of ctx carrying the provider's client and cache.
func (p *Provider) Wrap(ctx context.Context) (context.Context, error) {
	rpcCtx, err := p.Context()
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, contextKey{}, rpcCtx), nil
}

// Close stops the batch link after flushing pending calls. It is a no-op
// when the client was never built.
func (p *Provider) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	// settle a concurrent first build before looking at the result
	p.once.Do(func() {})
	if p.rpcCtx == nil {
		return nil
	}
	return p.rpcCtx.RPC.Close()
}

type contextKey struct{}

// FromContext returns the client and cache attached by [Provider.Wrap].
func FromContext(ctx context.Context) (*Context, bool) {
	rpcCtx, ok := ctx.Value(contextKey{}).(*Context)
	return rpcCtx, ok && rpcCtx != nil
}

// RPCFromContext returns the RPC client attached by [Provider.Wrap].
func RPCFromContext(ctx context.Context) (*rpc.Client, bool) {
	rpcCtx, ok := FromContext(ctx)
	if !ok {
		return nil, false
	}
	return rpcCtx.RPC, true
}

// CacheFromContext returns the query cache attached by [Provider.Wrap].
func CacheFromContext(ctx context.Context) (*querycache.Cache, bool) {
	rpcCtx, ok := FromContext(ctx)
	if !ok {
		return nil, false
	}
	return rpcCtx.Cache, true
}
