package http

import (
	"net/http"

	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withRequestContext)
	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	// auth API, mounted where the auth settings say it lives
	router.Route(h.apiBasePath, func(r chi.Router) {
		r.Get("/loginmethods", h.loginMethods)
		r.Get("/authorisationurl", h.authorisationURL)
		r.Post("/user/password/reset/token", h.passwordResetToken)
	})

	router.Get(rpc.EndpointPath+"/{procedures}", h.serveRPC)
	router.Post(rpc.EndpointPath+"/{procedures}", h.serveRPC)

	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	return router
}
