package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/t4-api/internal/auth"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
)

const statusOK = "OK"

type statusResponse struct {
	Status string `json:"status"`
}

type loginMethodsResponse struct {
	Status string `json:"status"`
	auth.LoginMethods
}

type authorisationURLResponse struct {
	Status string `json:"status"`
	auth.AuthorisationURL
}

func (h *Handler) loginMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.services.AuthService.LoginMethods(r.Context(), r.URL.Query().Get("clientType"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, loginMethodsResponse{Status: statusOK, LoginMethods: methods}, http.StatusOK)
}

func (h *Handler) authorisationURL(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	thirdPartyID := query.Get("thirdPartyId")
	if thirdPartyID == "" {
		h.respondError(w, r, fmt.Errorf("%w: thirdPartyId", ErrMissingQueryParameter))
		return
	}
	redirectURI := query.Get("redirectURIOnProviderDashboard")
	if redirectURI == "" {
		h.respondError(w, r, fmt.Errorf("%w: redirectURIOnProviderDashboard", ErrMissingQueryParameter))
		return
	}

	authURL, err := h.services.AuthService.AuthorisationURL(r.Context(), thirdPartyID, query.Get("clientType"), redirectURI)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, authorisationURLResponse{Status: statusOK, AuthorisationURL: authURL}, http.StatusOK)
}

// passwordResetToken always answers OK once the request is valid, so the
// response does not tell which addresses have accounts.
func (h *Handler) passwordResetToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.PasswordResetRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		h.respondError(w, r, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req); err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Str("platform", string(models.ParsePlatform(r.Header.Get(models.PlatformHeader)))).Msg("password reset email sent")
	utils.WriteJSON(w, statusResponse{Status: statusOK}, http.StatusOK)
}
