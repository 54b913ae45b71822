package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/t4-api/internal/adapter"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/service"
	"github.com/MKhiriev/t4-api/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody:    http.StatusBadRequest,
	ErrMissingQueryParameter: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,

	adapter.ErrRateLimited:         http.StatusServiceUnavailable,
	adapter.ErrServiceUnavailable:  http.StatusServiceUnavailable,
	adapter.ErrBadGateway:          http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,
	adapter.ErrUnauthorized:        http.StatusBadGateway,
	adapter.ErrForbidden:           http.StatusBadGateway,
	adapter.ErrBadRequest:          http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// respondError writes err as a JSON error. Messages of server side failures
// are logged and replaced by the status text.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
		message = http.StatusText(status)
	}

	utils.WriteJSON(w, errorResponse{Status: "GENERAL_ERROR", Message: message}, status)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, errorResponse{Status: "GENERAL_ERROR", Message: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
