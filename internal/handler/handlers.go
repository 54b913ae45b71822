package handler

import (
	"strings"

	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/handler/http"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/metrics"
	"github.com/MKhiriev/t4-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. apiBasePath is
// where the auth API is mounted, as configured in the auth settings.
func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, apiBasePath string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if !strings.HasPrefix(apiBasePath, "/") {
		return nil, errInvalidAPIBasePath
	}

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, m, strings.TrimRight(apiBasePath, "/"), logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
