package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/t4-api/internal/logger"
)

type procedureFunc func(ctx context.Context, input json.RawMessage) (any, error)

type registered struct {
	opType OpType
	call   procedureFunc
}

// CallObserver is notified after every procedure call with the call's path,
// type and result code ("OK" on success).
type CallObserver func(path string, opType OpType, code string)

// BatchObserver is notified with the size of every batch served.
type BatchObserver func(size int)

// RouterOption customises a [Router].
type RouterOption func(r *Router)

// WithCallObserver installs a call observer.
func WithCallObserver(o CallObserver) RouterOption {
	return func(r *Router) {
		r.onCall = o
	}
}

// WithBatchObserver installs a batch observer.
func WithBatchObserver(o BatchObserver) RouterOption {
	return func(r *Router) {
		r.onBatch = o
	}
}

// Router dispatches decoded calls to registered procedures. Register every
// procedure before serving; the registry is not guarded for concurrent
// writes.
type Router struct {
	transformer Transformer
	procedures  map[string]registered
	onCall      CallObserver
	onBatch     BatchObserver
}

// NewRouter returns an empty router encoding with transformer.
func NewRouter(transformer Transformer, opts ...RouterOption) *Router {
	r := &Router{
		transformer: transformer,
		procedures:  make(map[string]registered),
		onCall:      func(string, OpType, string) {},
		onBatch:     func(int) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle registers fn as the implementation of p. Registering a path twice
// replaces the earlier handler.
func Handle[I, O any](r *Router, p Procedure[I, O], fn func(ctx context.Context, in I) (O, error)) {
	r.procedures[p.Path] = registered{
		opType: p.Type,
		call: func(ctx context.Context, input json.RawMessage) (any, error) {
			var in I
			if input != nil {
				if err := r.transformer.Deserialize(input, &in); err != nil {
					return nil, Errorf(CodeBadRequest, "invalid input: %v", err)
				}
			}
			return fn(ctx, in)
		},
	}
}

// Paths lists the registered procedure paths.
func (r *Router) Paths() []string {
	paths := make([]string, 0, len(r.procedures))
	for p := range r.procedures {
		paths = append(paths, p)
	}
	return paths
}

// Call runs one operation and returns its wire item.
func (r *Router) Call(ctx context.Context, op Operation) ResultItem {
	proc, ok := r.procedures[op.Path]
	if !ok {
		return r.errorItem(ctx, op, Errorf(CodeNotFound, "no procedure on path %q", op.Path))
	}
	if proc.opType != op.Type {
		return r.errorItem(ctx, op, Errorf(CodeMethodNotSupported, "%s is a %s, called as %s", op.Path, proc.opType, op.Type))
	}

	out, err := proc.call(ctx, op.Input)
	if err != nil {
		return r.errorItem(ctx, op, err)
	}

	data, err := r.transformer.Serialize(out)
	if err != nil {
		return r.errorItem(ctx, op, fmt.Errorf("error encoding output: %w", err))
	}

	r.onCall(op.Path, op.Type, "OK")
	return ResultItem{Result: &ResultData{Data: data}, status: http.StatusOK}
}

func (r *Router) errorItem(ctx context.Context, op Operation, err error) ResultItem {
	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		logger.FromContext(ctx).Err(err).Str("path", op.Path).Msg("procedure failed")
		rpcErr = NewError(CodeInternalError, "internal server error")
	}

	shaped := *rpcErr
	shaped.Data.Path = op.Path
	r.onCall(op.Path, op.Type, string(shaped.Data.Code))

	encoded, encErr := r.transformer.Serialize(shaped)
	if encErr != nil {
		encoded, _ = json.Marshal(shaped)
	}
	return ResultItem{Error: encoded, status: shaped.Data.HTTPStatus}
}

// ServeBatch answers one HTTP request carrying the comma separated
// procedure paths in paths.
func (r *Router) ServeBatch(w http.ResponseWriter, req *http.Request, paths string) {
	ctx := req.Context()

	batchReq, err := ParseBatchRequest(req, paths)
	if err != nil {
		var rpcErr *Error
		if !errors.As(err, &rpcErr) {
			rpcErr = NewError(CodeParseError, err.Error())
		}
		logger.FromContext(ctx).Debug().Err(err).Msg("rejected rpc request")
		op := Operation{Path: strings.Split(paths, ",")[0]}
		writeBatchResponse(w, []ResultItem{r.errorItem(ctx, op, rpcErr)}, req.URL.Query().Get("batch") == "1")
		return
	}

	items := make([]ResultItem, len(batchReq.Operations))
	for i, op := range batchReq.Operations {
		items[i] = r.Call(ctx, op)
	}
	if batchReq.Batched {
		r.onBatch(len(items))
	}

	writeBatchResponse(w, items, batchReq.Batched)
}
