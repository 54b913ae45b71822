package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/mock"
	"github.com/MKhiriev/t4-api/internal/utils"
	"github.com/MKhiriev/t4-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newAppleKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

func testEnv(t *testing.T) (authconfig.Env, *ecdsa.PrivateKey) {
	t.Helper()
	key, pemKey := newAppleKey(t)
	return authconfig.Env{
		ConnectionURI:      "https://core.t4.app",
		APIKey:             "core-key",
		AppName:            "T4",
		APIURL:             "https://api.t4.app",
		AppURL:             "https://t4.app",
		DiscordClientID:    "discord-id",
		GoogleClientID:     "google-id",
		GoogleClientSecret: "google-secret",
		AppleClientID:      "com.t4.web",
		AppleClientIDIOS:   "com.t4.ios",
		AppleKeyID:         "KEY",
		ApplePrivateKey:    pemKey,
		AppleTeamID:        "TEAM",
	}, key
}

func newTestAuth(t *testing.T, delivery authconfig.EmailDelivery) (*Auth, *ecdsa.PrivateKey) {
	t.Helper()
	env, key := testEnv(t)
	a, err := Init(authconfig.Build(env), delivery, logger.Nop(), WithIDGenerator(fixedID("tok-123")))
	require.NoError(t, err)
	return a, key
}

func TestInit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()

	a, _ := newTestAuth(t, delivery)

	assert.Equal(t, []string{"thirdpartyemailpassword", "session", "dashboard", "userroles"}, a.RecipeIDs())
	assert.Equal(t, "/api/auth", a.AppInfo().APIBasePath)
	assert.Equal(t, "log", a.EmailDelivery().Name())
	assert.NotSame(t, delivery, a.EmailDelivery())
}

func TestInit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *authconfig.Settings)
		wantErr error
	}{
		{
			name:    "unsupported framework",
			mutate:  func(s *authconfig.Settings) { s.Framework = "express" },
			wantErr: ErrUnsupportedFramework,
		},
		{
			name:    "missing connection uri",
			mutate:  func(s *authconfig.Settings) { s.Backend.ConnectionURI = "" },
			wantErr: ErrMissingConnectionURI,
		},
		{
			name:    "relative connection uri",
			mutate:  func(s *authconfig.Settings) { s.Backend.ConnectionURI = "core:3567" },
			wantErr: ErrMissingConnectionURI,
		},
		{
			name:    "empty app name",
			mutate:  func(s *authconfig.Settings) { s.AppInfo.AppName = " " },
			wantErr: ErrInvalidAppInfo,
		},
		{
			name:    "missing api domain",
			mutate:  func(s *authconfig.Settings) { s.AppInfo.APIDomain = "" },
			wantErr: ErrInvalidAppInfo,
		},
		{
			name:    "missing website domain",
			mutate:  func(s *authconfig.Settings) { s.AppInfo.WebsiteDomain = "" },
			wantErr: ErrInvalidAppInfo,
		},
		{
			name:    "relative api base path",
			mutate:  func(s *authconfig.Settings) { s.AppInfo.APIBasePath = "api/auth" },
			wantErr: ErrInvalidAppInfo,
		},
		{
			name:    "duplicate recipe",
			mutate:  func(s *authconfig.Settings) { s.Recipes = append(s.Recipes, authconfig.Session{}) },
			wantErr: ErrDuplicateRecipe,
		},
		{
			name: "empty discord client id",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[0].Clients[0].ClientID = ""
			},
			wantErr: ErrInvalidProvider,
		},
		{
			name: "google without secret",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[1].Clients[1].ClientSecret = ""
			},
			wantErr: ErrInvalidProvider,
		},
		{
			name: "apple without team id",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[2].Clients[0].AdditionalConfig[authconfig.AppleTeamID] = ""
			},
			wantErr: ErrInvalidProvider,
		},
		{
			name: "apple with malformed key",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[2].Clients[1].AdditionalConfig[authconfig.ApplePrivateKey] = "garbage"
			},
			wantErr: utils.ErrInvalidPrivateKey,
		},
		{
			name: "unsupported provider",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[0].ThirdPartyID = "github"
			},
			wantErr: ErrInvalidProvider,
		},
		{
			name: "duplicate client type",
			mutate: func(s *authconfig.Settings) {
				recipe := s.Recipes[0].(authconfig.ThirdPartyEmailPassword)
				recipe.Providers[0].Clients[1].ClientType = authconfig.ClientTypeWebAndAndroid
			},
			wantErr: ErrInvalidProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := testEnv(t)
			settings := authconfig.Build(env)
			tt.mutate(&settings)

			ctrl := gomock.NewController(t)
			_, err := Init(settings, mock.NewMockEmailDelivery(ctrl), logger.Nop())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInit_NilDelivery(t *testing.T) {
	env, _ := testEnv(t)

	_, err := Init(authconfig.Build(env), nil, logger.Nop())

	assert.ErrorIs(t, err, ErrMissingEmailDelivery)
}

func TestLoginMethods(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()
	a, _ := newTestAuth(t, delivery)

	want := LoginMethods{
		EmailPassword: true,
		ThirdParty: []ThirdPartyLoginMethod{
			{ID: "discord", Name: "Discord"},
			{ID: "google", Name: "Google"},
			{ID: "apple", Name: "Apple"},
		},
	}

	for _, clientType := range []string{"", authconfig.ClientTypeWebAndAndroid, authconfig.ClientTypeIOS} {
		got, err := a.LoginMethods(clientType)
		require.NoError(t, err, clientType)
		assert.Equal(t, want, got, clientType)
	}

	_, err := a.LoginMethods("desktop")
	assert.ErrorIs(t, err, ErrUnknownClientType)
}

func TestOAuth2Config(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()
	a, key := newTestAuth(t, delivery)
	now := time.Now()
	a.now = func() time.Time { return now }

	t.Run("google keeps its secret", func(t *testing.T) {
		cfg, err := a.OAuth2Config("google", authconfig.ClientTypeIOS, "https://t4.app/cb")
		require.NoError(t, err)
		assert.Equal(t, "google-id", cfg.ClientID)
		assert.Equal(t, "google-secret", cfg.ClientSecret)
		assert.Equal(t, "https://t4.app/cb", cfg.RedirectURL)
	})

	t.Run("apple signs a client secret per variant", func(t *testing.T) {
		cfg, err := a.OAuth2Config("apple", authconfig.ClientTypeIOS, "")
		require.NoError(t, err)
		assert.Equal(t, "com.t4.ios", cfg.ClientID)

		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(cfg.ClientSecret, claims, func(*jwt.Token) (any, error) {
			return &key.PublicKey, nil
		}, jwt.WithIssuer("TEAM"), jwt.WithAudience(utils.AppleAudience))
		require.NoError(t, err)
		assert.Equal(t, "com.t4.ios", claims.Subject)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := a.OAuth2Config("github", "", "")
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("unknown client type", func(t *testing.T) {
		_, err := a.OAuth2Config("google", "desktop", "")
		assert.ErrorIs(t, err, ErrUnknownClientType)
	})
}

func TestAuthorisationURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()
	a, _ := newTestAuth(t, delivery)

	tests := []struct {
		name         string
		thirdPartyID string
		wantHost     string
		wantParams   map[string]string
		wantVerifier bool
	}{
		{
			name:         "discord uses pkce",
			thirdPartyID: "discord",
			wantHost:     "discord.com",
			wantParams:   map[string]string{"code_challenge_method": "S256", "client_id": "discord-id"},
			wantVerifier: true,
		},
		{
			name:         "google asks for offline access",
			thirdPartyID: "google",
			wantHost:     "accounts.google.com",
			wantParams:   map[string]string{"access_type": "offline", "include_granted_scopes": "true"},
		},
		{
			name:         "apple posts the response",
			thirdPartyID: "apple",
			wantHost:     "appleid.apple.com",
			wantParams:   map[string]string{"response_mode": "form_post", "client_id": "com.t4.web"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.AuthorisationURL(context.Background(), tt.thirdPartyID, "", "https://t4.app/auth/callback")
			require.NoError(t, err)

			u, err := url.Parse(got.URLWithQueryParams)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, u.Host)
			assert.Equal(t, "tok-123", u.Query().Get("state"))
			assert.Equal(t, "https://t4.app/auth/callback", u.Query().Get("redirect_uri"))
			for k, v := range tt.wantParams {
				assert.Equal(t, v, u.Query().Get(k), k)
			}
			assert.Equal(t, tt.wantVerifier, got.PKCECodeVerifier != "")
		})
	}
}

func TestSendPasswordResetEmail(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		wantLink string
	}{
		{
			name:     "web",
			platform: "",
			wantLink: "https://t4.app/password-reset/update-password?token=tok-123&rid=thirdpartyemailpassword",
		},
		{
			name:     "ios",
			platform: "ios",
			wantLink: "t4://password-reset/update-password?token=tok-123&rid=thirdpartyemailpassword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			delivery := mock.NewMockEmailDelivery(ctrl)
			delivery.EXPECT().Name().Return("log").AnyTimes()
			a, _ := newTestAuth(t, delivery)

			r := httptest.NewRequest(http.MethodPost, "/api/auth/user/password/reset/token", nil)
			if tt.platform != "" {
				r.Header.Set(models.PlatformHeader, tt.platform)
			}
			ctx := utils.WithRequest(context.Background(), r)
			user := models.User{ID: "u1", Email: "jane@t4.app"}

			delivery.EXPECT().SendEmail(ctx, models.EmailInput{
				Type:              models.EmailTypePasswordReset,
				User:              user,
				PasswordResetLink: tt.wantLink,
				TenantID:          DefaultTenantID,
			}).Return(nil)

			require.NoError(t, a.SendPasswordResetEmail(ctx, user))
		})
	}
}

func TestSendPasswordResetEmail_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()
	a, _ := newTestAuth(t, delivery)

	err := a.SendPasswordResetEmail(context.Background(), models.User{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	relayErr := errors.New("relay down")
	delivery.EXPECT().SendEmail(gomock.Any(), gomock.Any()).Return(relayErr)
	err = a.SendPasswordResetEmail(context.Background(), models.User{Email: "jane@t4.app"})
	assert.ErrorIs(t, err, relayErr)
}

func TestRecipeNotInitialised(t *testing.T) {
	env, _ := testEnv(t)
	settings := authconfig.Build(env)
	settings.Recipes = []authconfig.Recipe{authconfig.Session{}}

	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()

	a, err := Init(settings, delivery, logger.Nop())
	require.NoError(t, err)
	assert.Same(t, delivery, a.EmailDelivery())

	_, err = a.LoginMethods("")
	assert.ErrorIs(t, err, ErrRecipeNotInitialised)
	err = a.SendPasswordResetEmail(context.Background(), models.User{Email: "jane@t4.app"})
	assert.ErrorIs(t, err, ErrRecipeNotInitialised)
}

func TestPasswordResetLink_EscapesToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	delivery := mock.NewMockEmailDelivery(ctrl)
	delivery.EXPECT().Name().Return("log").AnyTimes()
	a, _ := newTestAuth(t, delivery)

	assert.Equal(t,
		"https://t4.app/auth/reset-password?token=a%2Bb&rid=thirdpartyemailpassword",
		a.PasswordResetLink("a+b"),
	)
}
