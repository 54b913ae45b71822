package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/t4-api/internal/adapter"
	"github.com/MKhiriev/t4-api/internal/auth"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/metrics"
	"github.com/MKhiriev/t4-api/internal/service"
	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

type fakeAppInfoService struct {
	name    string
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string { return f.version }

func (f *fakeAppInfoService) GetVersionInfo(context.Context) models.VersionInfo {
	return models.VersionInfo{Name: f.name, Version: f.version}
}

type fakeAuthService struct {
	methods    auth.LoginMethods
	authURL    auth.AuthorisationURL
	err        error
	clientType string

	mu       sync.Mutex
	resets   []models.PasswordResetRequest
	platform string
}

func (f *fakeAuthService) LoginMethods(_ context.Context, clientType string) (auth.LoginMethods, error) {
	f.clientType = clientType
	return f.methods, f.err
}

func (f *fakeAuthService) AuthorisationURL(_ context.Context, _, clientType, _ string) (auth.AuthorisationURL, error) {
	f.clientType = clientType
	return f.authURL, f.err
}

func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resets = append(f.resets, req)
	if r, ok := utils.GetRequestFromContext(ctx); ok {
		f.platform = r.Header.Get(models.PlatformHeader)
	}
	return f.err
}

func (f *fakeAuthService) sentResets() ([]models.PasswordResetRequest, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PasswordResetRequest(nil), f.resets...), f.platform
}

type fakeGreetingService struct{}

func (fakeGreetingService) Greet(_ context.Context, req models.GreetingRequest) (models.Greeting, error) {
	if len(req.Name) > 5 {
		return models.Greeting{}, fmt.Errorf("%w: name too long", service.ErrInvalidDataProvided)
	}
	return models.Greeting{
		Message:    "Hello, " + req.Name + "!",
		ServerTime: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

func newTestHandler(t *testing.T, authSvc *fakeAuthService) (*Handler, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	h := NewHandler(&service.Services{
		AppInfoService:  &fakeAppInfoService{name: "t4", version: "1.2.3"},
		AuthService:     authSvc,
		GreetingService: fakeGreetingService{},
	}, m, "/api/auth", logger.Nop())
	return h, m
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ─────────────────────────────────────────────
// Auth API
// ─────────────────────────────────────────────

func TestLoginMethods(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "providers listed",
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"status":        "OK",
				"emailPassword": true,
				"thirdParty":    []any{map[string]any{"id": "google", "name": "Google"}},
			},
		},
		{
			name:       "unknown client type",
			err:        fmt.Errorf("%w: unknown client type", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]any{
				"status":  "GENERAL_ERROR",
				"message": "invalid data provided: unknown client type",
			},
		},
		{
			name:       "internal failure is not exposed",
			err:        errors.New("recipe is broken"),
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"status":  "GENERAL_ERROR",
				"message": "Internal Server Error",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := &fakeAuthService{
				methods: auth.LoginMethods{
					EmailPassword: true,
					ThirdParty:    []auth.ThirdPartyLoginMethod{{ID: "google", Name: "Google"}},
				},
				err: tt.err,
			}
			h, _ := newTestHandler(t, authSvc)

			rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/auth/loginmethods?clientType=ios", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
			assert.Equal(t, "ios", authSvc.clientType)
		})
	}
}

func TestAuthorisationURL(t *testing.T) {
	authSvc := &fakeAuthService{authURL: auth.AuthorisationURL{
		URLWithQueryParams: "https://discord.com/oauth2/authorize?client_id=d",
		PKCECodeVerifier:   "verifier",
	}}
	h, _ := newTestHandler(t, authSvc)

	t.Run("ok", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet,
			"/api/auth/authorisationurl?thirdPartyId=discord&clientType=web-and-android&redirectURIOnProviderDashboard=https%3A%2F%2Fapp.t4.dev%2Fcallback", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"status":             "OK",
			"urlWithQueryParams": "https://discord.com/oauth2/authorize?client_id=d",
			"pkceCodeVerifier":   "verifier",
		}, decodeBody(t, rec))
		assert.Equal(t, "web-and-android", authSvc.clientType)
	})

	t.Run("missing parameters", func(t *testing.T) {
		for _, target := range []string{
			"/api/auth/authorisationurl?redirectURIOnProviderDashboard=https%3A%2F%2Fapp.t4.dev",
			"/api/auth/authorisationurl?thirdPartyId=discord",
		} {
			rec := serve(h, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Contains(t, decodeBody(t, rec)["message"], "missing query parameter")
		}
	})
}

func TestPasswordResetToken(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		platform     string
		err          error
		wantStatus   int
		wantResets   int
		wantPlatform string
	}{
		{
			name:         "web caller",
			body:         `{"email":"jane@t4.dev"}`,
			wantStatus:   http.StatusOK,
			wantResets:   1,
			wantPlatform: "",
		},
		{
			name:         "ios caller reaches the email override",
			body:         `{"email":"jane@t4.dev"}`,
			platform:     "ios",
			wantStatus:   http.StatusOK,
			wantResets:   1,
			wantPlatform: "ios",
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       `{"email":"nope"}`,
			err:        fmt.Errorf("%w: invalid email", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantResets: 1,
		},
		{
			name:       "email relay down",
			body:       `{"email":"jane@t4.dev"}`,
			err:        fmt.Errorf("error sending email: %w", adapter.ErrBadGateway),
			wantStatus: http.StatusBadGateway,
			wantResets: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := &fakeAuthService{err: tt.err}
			h, _ := newTestHandler(t, authSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/user/password/reset/token", strings.NewReader(tt.body))
			if tt.platform != "" {
				req.Header.Set(models.PlatformHeader, tt.platform)
			}
			rec := serve(h, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			resets, platform := authSvc.sentResets()
			assert.Len(t, resets, tt.wantResets)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
				assert.Equal(t, tt.wantPlatform, platform)
			}
		})
	}
}

// ─────────────────────────────────────────────
// Version, metrics, unknown routes
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAuthService{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"t4","version":"1.2.3"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAuthService{})

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMetricsEndpoint_DisabledWithoutMetrics(t *testing.T) {
	h := NewHandler(&service.Services{AppInfoService: &fakeAppInfoService{}}, nil, "/api/auth", logger.Nop())

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_UnknownAndWrongMethod(t *testing.T) {
	h, _ := newTestHandler(t, &fakeAuthService{})

	tests := []struct {
		name   string
		method string
		target string
	}{
		{name: "unknown path", method: http.MethodGet, target: "/api/unknown"},
		{name: "wrong method on version", method: http.MethodPost, target: "/api/version"},
		{name: "wrong method on login methods", method: http.MethodDelete, target: "/api/auth/loginmethods"},
		{name: "wrong method on password reset", method: http.MethodGet, target: "/api/auth/user/password/reset/token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Not Found", decodeBody(t, rec)["message"])
		})
	}
}
