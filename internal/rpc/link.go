package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
)

// Batch link defaults applied to zero config values.
const (
	DefaultBatchWait = 10 * time.Millisecond
	DefaultMaxCalls  = 50
	DefaultTimeout   = 15 * time.Second
)

// HTTPBatchLinkConfig configures an [HTTPBatchLink].
type HTTPBatchLinkConfig struct {
	// URL is the RPC endpoint, e.g. http://10.0.2.2:8080/trpc.
	URL string
	// MaxWait is how long the first call of a batch waits for company.
	MaxWait time.Duration
	// MaxCalls flushes a batch early once it holds this many calls.
	MaxCalls int
	// Timeout bounds one batched HTTP request.
	Timeout time.Duration
	// Platform, when set, is sent in the X-Platform header.
	Platform models.Platform
}

type linkResult struct {
	resp Response
	err  error
}

type pendingCall struct {
	ctx  context.Context
	op   Operation
	done chan linkResult
}

type batch struct {
	calls []*pendingCall
	timer *time.Timer
}

// HTTPBatchLink coalesces calls of the same [OpType] issued within MaxWait
// into one HTTP request. Queries travel as GET with the inputs in the query
// string, mutations as POST with the inputs in the body.
type HTTPBatchLink struct {
	client *utils.HTTPClient
	url    string
	cfg    HTTPBatchLinkConfig
	logger *logger.Logger

	mu      sync.Mutex
	pending map[OpType]*batch
	closed  bool
	wg      sync.WaitGroup
}

// NewHTTPBatchLink returns a link posting to cfg.URL.
func NewHTTPBatchLink(cfg HTTPBatchLinkConfig, log *logger.Logger) (*HTTPBatchLink, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid rpc url %q", cfg.URL)
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultBatchWait
	}
	if cfg.MaxCalls <= 0 {
		cfg.MaxCalls = DefaultMaxCalls
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []utils.HTTPClientOption{utils.WithTimeout(cfg.Timeout)}
	if cfg.Platform != "" {
		opts = append(opts, utils.WithHeader(models.PlatformHeader, string(cfg.Platform)))
	}

	return &HTTPBatchLink{
		client:  utils.NewHTTPClient(opts...),
		url:     strings.TrimRight(cfg.URL, "/"),
		cfg:     cfg,
		logger:  log,
		pending: make(map[OpType]*batch),
	}, nil
}

// URL returns the endpoint the link sends to.
func (l *HTTPBatchLink) URL() string {
	return l.url
}

// Do implements [Link]. It blocks until the batch carrying op is answered or
// ctx is done.
func (l *HTTPBatchLink) Do(ctx context.Context, op Operation) (Response, error) {
	call := &pendingCall{ctx: ctx, op: op, done: make(chan linkResult, 1)}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return Response{}, ErrLinkClosed
	}

	b, ok := l.pending[op.Type]
	if !ok {
		b = &batch{}
		l.pending[op.Type] = b
		b.timer = time.AfterFunc(l.cfg.MaxWait, func() { l.flush(op.Type, b) })
	}
	b.calls = append(b.calls, call)

	if len(b.calls) >= l.cfg.MaxCalls {
		b.timer.Stop()
		delete(l.pending, op.Type)
		l.wg.Add(1)
		go l.send(op.Type, b.calls)
	}
	l.mu.Unlock()

	select {
	case res := <-call.done:
		return res.resp, res.err
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Close sends every pending batch and waits for in-flight requests. Calls
// made after Close fail with [ErrLinkClosed].
func (l *HTTPBatchLink) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	for opType, b := range l.pending {
		b.timer.Stop()
		delete(l.pending, opType)
		l.wg.Add(1)
		go l.send(opType, b.calls)
	}
	l.mu.Unlock()

	l.wg.Wait()
	return nil
}

func (l *HTTPBatchLink) flush(opType OpType, b *batch) {
	l.mu.Lock()
	if l.pending[opType] != b {
		l.mu.Unlock()
		return
	}
	delete(l.pending, opType)
	l.wg.Add(1)
	l.mu.Unlock()

	l.send(opType, b.calls)
}

func (l *HTTPBatchLink) send(opType OpType, calls []*pendingCall) {
	defer l.wg.Done()

	live := calls[:0:0]
	for _, c := range calls {
		if c.ctx.Err() == nil {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return
	}

	responses, err := l.roundTrip(opType, live)
	if err != nil {
		for _, c := range live {
			c.done <- linkResult{err: err}
		}
		return
	}
	for i, c := range live {
		c.done <- linkResult{resp: responses[i]}
	}
}

type batchItem struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

func (l *HTTPBatchLink) roundTrip(opType OpType, calls []*pendingCall) ([]Response, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(calls[0].ctx), l.cfg.Timeout)
	defer cancel()

	paths := make([]string, len(calls))
	inputs := make(map[string]json.RawMessage, len(calls))
	for i, c := range calls {
		paths[i] = url.PathEscape(c.op.Path)
		if c.op.Input != nil {
			inputs[strconv.Itoa(i)] = c.op.Input
		}
	}
	encodedInputs, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("error encoding batch inputs: %w", err)
	}

	req := l.client.R().
		SetContext(ctx).
		SetQueryParam("batch", "1")
	endpoint := l.url + "/" + strings.Join(paths, ",")

	var (
		status int
		body   []byte
	)
	switch opType {
	case OpQuery:
		resp, err := req.SetQueryParam("input", string(encodedInputs)).Get(endpoint)
		if err != nil {
			return nil, fmt.Errorf("rpc batch request: %w", err)
		}
		status, body = resp.StatusCode(), resp.Body()
	default:
		resp, err := req.SetHeader("Content-Type", "application/json").SetBody(encodedInputs).Post(endpoint)
		if err != nil {
			return nil, fmt.Errorf("rpc batch request: %w", err)
		}
		status, body = resp.StatusCode(), resp.Body()
	}

	var items []batchItem
	if err = json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: http %d: %w", ErrBadResponse, status, err)
	}
	if len(items) != len(calls) {
		return nil, fmt.Errorf("%w: %d results for %d calls", ErrBadResponse, len(items), len(calls))
	}

	responses := make([]Response, len(items))
	for i, item := range items {
		switch {
		case item.Error != nil:
			responses[i] = Response{Error: item.Error}
		case item.Result != nil:
			responses[i] = Response{Data: item.Result.Data}
		default:
			return nil, fmt.Errorf("%w: item %d has neither result nor error", ErrBadResponse, i)
		}
	}

	l.logger.Debug().
		Str("type", string(opType)).
		Int("calls", len(calls)).
		Int("status", status).
		Msg("rpc batch sent")

	return responses, nil
}
