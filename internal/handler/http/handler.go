package http

import (
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/metrics"
	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/MKhiriev/t4-api/internal/service"
)

type Handler struct {
	services *service.Services
	rpc      *rpc.Router
	metrics  *metrics.Metrics

	apiBasePath string

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. m may be nil, in which case no
// metrics are collected and /metrics is not served.
func NewHandler(services *service.Services, m *metrics.Metrics, apiBasePath string, logger *logger.Logger) *Handler {
	h := &Handler{
		services:    services,
		rpc:         newRPCRouter(services, m),
		metrics:     m,
		apiBasePath: apiBasePath,
		logger:      logger,
	}

	logger.Info().Str("auth_base_path", apiBasePath).Strs("procedures", h.rpc.Paths()).Msg("http handler created")
	return h
}
