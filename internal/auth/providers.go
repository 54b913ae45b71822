package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// appleClientSecretTTL is how long a generated Apple client secret stays valid.
const appleClientSecretTTL = 24 * time.Hour

var (
	discordEndpoint = oauth2.Endpoint{
		AuthURL:   "https://discord.com/oauth2/authorize",
		TokenURL:  "https://discord.com/api/oauth2/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	appleEndpoint = oauth2.Endpoint{
		AuthURL:   "https://appleid.apple.com/auth/authorize",
		TokenURL:  "https://appleid.apple.com/auth/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
)

type providerKind struct {
	name        string
	endpoint    oauth2.Endpoint
	scopes      []string
	pkce        bool
	authOptions []oauth2.AuthCodeOption
	validate    func(c authconfig.ProviderClient) error
}

var providerKinds = map[string]providerKind{
	authconfig.ThirdPartyDiscord: {
		name:     "Discord",
		endpoint: discordEndpoint,
		scopes:   []string{"identify", "email"},
		pkce:     true,
		validate: func(authconfig.ProviderClient) error { return nil },
	},
	authconfig.ThirdPartyGoogle: {
		name:     "Google",
		endpoint: google.Endpoint,
		scopes:   []string{"openid", "email"},
		authOptions: []oauth2.AuthCodeOption{
			oauth2.AccessTypeOffline,
			oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		},
		validate: func(c authconfig.ProviderClient) error {
			if c.ClientSecret == "" {
				return errors.New("client secret is empty")
			}
			return nil
		},
	},
	authconfig.ThirdPartyApple: {
		name:     "Apple",
		endpoint: appleEndpoint,
		scopes:   []string{"openid", "email"},
		authOptions: []oauth2.AuthCodeOption{
			oauth2.SetAuthURLParam("response_mode", "form_post"),
		},
		validate: func(c authconfig.ProviderClient) error {
			for _, key := range []string{authconfig.AppleKeyID, authconfig.AppleTeamID} {
				if c.AdditionalConfig[key] == "" {
					return fmt.Errorf("%s is empty", key)
				}
			}
			_, err := utils.ParseECPrivateKey(c.AdditionalConfig[authconfig.ApplePrivateKey])
			return err
		},
	},
}

// LoginMethods lists what a front-end of one client type can offer.
type LoginMethods struct {
	EmailPassword bool                    `json:"emailPassword"`
	ThirdParty    []ThirdPartyLoginMethod `json:"thirdParty"`
}

// ThirdPartyLoginMethod is a provider as shown to users. It never carries
// credentials.
type ThirdPartyLoginMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthorisationURL is where the front-end sends the user to sign in with a
// provider.
type AuthorisationURL struct {
	URLWithQueryParams string `json:"urlWithQueryParams"`
	PKCECodeVerifier   string `json:"pkceCodeVerifier,omitempty"`
}

// LoginMethods returns the providers that have a client for clientType. An
// empty clientType selects the web-and-android variant.
func (a *Auth) LoginMethods(clientType string) (LoginMethods, error) {
	recipe, err := a.thirdPartyEmailPassword()
	if err != nil {
		return LoginMethods{}, err
	}
	if clientType == "" {
		clientType = authconfig.ClientTypeWebAndAndroid
	}

	methods := LoginMethods{EmailPassword: true, ThirdParty: []ThirdPartyLoginMethod{}}
	for _, p := range recipe.Providers {
		if _, ok := p.Client(clientType); !ok {
			continue
		}
		methods.ThirdParty = append(methods.ThirdParty, ThirdPartyLoginMethod{
			ID:   p.ThirdPartyID,
			Name: providerKinds[p.ThirdPartyID].name,
		})
	}

	if len(methods.ThirdParty) == 0 && len(recipe.Providers) > 0 {
		return LoginMethods{}, fmt.Errorf("%w: %q", ErrUnknownClientType, clientType)
	}

	return methods, nil
}

// OAuth2Config returns the OAuth2 client of thirdPartyID for clientType.
// Apple clients get a freshly signed client secret.
func (a *Auth) OAuth2Config(thirdPartyID, clientType, redirectURI string) (*oauth2.Config, error) {
	recipe, err := a.thirdPartyEmailPassword()
	if err != nil {
		return nil, err
	}

	provider, ok := recipe.Provider(thirdPartyID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, thirdPartyID)
	}
	if clientType == "" {
		clientType = authconfig.ClientTypeWebAndAndroid
	}
	client, ok := provider.Client(clientType)
	if !ok {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnknownClientType, clientType, thirdPartyID)
	}

	kind := providerKinds[thirdPartyID]
	secret := client.ClientSecret
	if thirdPartyID == authconfig.ThirdPartyApple {
		secret, err = utils.GenerateAppleClientSecret(utils.AppleClientSecretParams{
			TeamID:     client.AdditionalConfig[authconfig.AppleTeamID],
			KeyID:      client.AdditionalConfig[authconfig.AppleKeyID],
			ClientID:   client.ClientID,
			PrivateKey: client.AdditionalConfig[authconfig.ApplePrivateKey],
			TTL:        appleClientSecretTTL,
		}, a.now())
		if err != nil {
			return nil, fmt.Errorf("error generating apple client secret: %w", err)
		}
	}

	return &oauth2.Config{
		ClientID:     client.ClientID,
		ClientSecret: secret,
		Endpoint:     kind.endpoint,
		RedirectURL:  redirectURI,
		Scopes:       kind.scopes,
	}, nil
}

// AuthorisationURL builds the provider consent URL. PKCE providers also get a
// code verifier the front-end must present when exchanging the code.
func (a *Auth) AuthorisationURL(ctx context.Context, thirdPartyID, clientType, redirectURI string) (AuthorisationURL, error) {
	cfg, err := a.OAuth2Config(thirdPartyID, clientType, redirectURI)
	if err != nil {
		return AuthorisationURL{}, err
	}

	kind := providerKinds[thirdPartyID]
	opts := append([]oauth2.AuthCodeOption{}, kind.authOptions...)

	var verifier string
	if kind.pkce {
		verifier = oauth2.GenerateVerifier()
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	logger.FromContext(ctx).Debug().
		Str("third_party_id", thirdPartyID).
		Str("client_type", clientType).
		Bool("pkce", kind.pkce).
		Msg("authorisation url issued")

	return AuthorisationURL{
		URLWithQueryParams: cfg.AuthCodeURL(a.ids.Generate(), opts...),
		PKCECodeVerifier:   verifier,
	}, nil
}
