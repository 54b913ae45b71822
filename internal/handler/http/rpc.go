package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/t4-api/internal/api"
	"github.com/MKhiriev/t4-api/internal/metrics"
	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/MKhiriev/t4-api/internal/service"
	"github.com/MKhiriev/t4-api/models"
	"github.com/go-chi/chi/v5"
)

func newRPCRouter(services *service.Services, m *metrics.Metrics) *rpc.Router {
	var opts []rpc.RouterOption
	if m != nil {
		opts = append(opts,
			rpc.WithCallObserver(func(path string, opType rpc.OpType, code string) {
				m.ObserveRPCCall(path, string(opType), code)
			}),
			rpc.WithBatchObserver(m.ObserveRPCBatch),
		)
	}

	router := rpc.NewRouter(rpc.StructuredTransformer{}, opts...)

	rpc.Handle(router, api.Version, func(ctx context.Context, _ rpc.Void) (models.VersionInfo, error) {
		return services.AppInfoService.GetVersionInfo(ctx), nil
	})
	rpc.Handle(router, api.Greeting, func(ctx context.Context, in models.GreetingRequest) (models.Greeting, error) {
		out, err := services.GreetingService.Greet(ctx, in)
		return out, rpcError(err)
	})
	rpc.Handle(router, api.RequestPasswordReset, func(ctx context.Context, in models.PasswordResetRequest) (rpc.Void, error) {
		return rpc.Void{}, rpcError(services.AuthService.RequestPasswordReset(ctx, in))
	})

	return router
}

func (h *Handler) serveRPC(w http.ResponseWriter, r *http.Request) {
	h.rpc.ServeBatch(w, r, chi.URLParam(r, "procedures"))
}

// rpcError turns client errors into procedure errors the caller can see.
// Everything else is passed through and reported as an internal error.
func rpcError(err error) error {
	if err == nil {
		return nil
	}

	switch statusFromError(err) {
	case http.StatusBadRequest:
		return rpc.NewError(rpc.CodeBadRequest, err.Error())
	case http.StatusNotFound:
		return rpc.NewError(rpc.CodeNotFound, err.Error())
	}
	return err
}
