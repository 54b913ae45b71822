package auth

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/utils"
)

// Auth is the initialised auth runtime. It is safe for concurrent use.
type Auth struct {
	settings      authconfig.Settings
	recipe        authconfig.ThirdPartyEmailPassword
	hasRecipe     bool
	emailDelivery authconfig.EmailDelivery

	ids utils.IDGenerator
	now func() time.Time
}

// Option customises [Init].
type Option func(a *Auth)

// WithIDGenerator replaces the generator of reset tokens and OAuth state.
func WithIDGenerator(g utils.IDGenerator) Option {
	return func(a *Auth) {
		a.ids = g
	}
}

// WithClock replaces the time source used to sign client secrets.
func WithClock(now func() time.Time) Option {
	return func(a *Auth) {
		a.now = now
	}
}

// Init validates settings and builds the runtime. defaultDelivery is the
// delivery the recipe's email override receives as its original.
func Init(settings authconfig.Settings, defaultDelivery authconfig.EmailDelivery, log *logger.Logger, opts ...Option) (*Auth, error) {
	if defaultDelivery == nil {
		return nil, ErrMissingEmailDelivery
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	a := &Auth{
		settings: settings,
		ids:      utils.NewUUIDGenerator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.recipe, a.hasRecipe = settings.ThirdPartyEmailPassword()
	a.emailDelivery = defaultDelivery
	if a.hasRecipe {
		a.emailDelivery = a.recipe.EmailDelivery.Apply(defaultDelivery)
	}

	log.Info().
		Strs("recipes", settings.RecipeIDs()).
		Str("api_base_path", settings.AppInfo.APIBasePath).
		Str("email_delivery", a.emailDelivery.Name()).
		Msg("auth runtime initialised")

	return a, nil
}

// RecipeIDs lists the initialised recipes in order.
func (a *Auth) RecipeIDs() []string {
	return a.settings.RecipeIDs()
}

// AppInfo returns the application metadata the runtime was initialised with.
func (a *Auth) AppInfo() authconfig.AppInfo {
	return a.settings.AppInfo
}

// EmailDelivery returns the resolved delivery (override applied).
func (a *Auth) EmailDelivery() authconfig.EmailDelivery {
	return a.emailDelivery
}

func (a *Auth) thirdPartyEmailPassword() (authconfig.ThirdPartyEmailPassword, error) {
	if !a.hasRecipe {
		return authconfig.ThirdPartyEmailPassword{}, fmt.Errorf("%w: %s", ErrRecipeNotInitialised, authconfig.RecipeThirdPartyEmailPassword)
	}
	return a.recipe, nil
}

func validateSettings(s authconfig.Settings) error {
	if s.Framework != authconfig.FrameworkCustom {
		return fmt.Errorf("%w: %q", ErrUnsupportedFramework, s.Framework)
	}
	if !isAbsoluteURL(s.Backend.ConnectionURI) {
		return ErrMissingConnectionURI
	}
	if err := validateAppInfo(s.AppInfo); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(s.Recipes))
	for _, r := range s.Recipes {
		id := r.RecipeID()
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRecipe, id)
		}
		seen[id] = struct{}{}
	}

	if recipe, ok := s.ThirdPartyEmailPassword(); ok {
		for _, p := range recipe.Providers {
			if err := validateProvider(p); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateAppInfo(info authconfig.AppInfo) error {
	switch {
	case strings.TrimSpace(info.AppName) == "":
		return fmt.Errorf("%w: app name is empty", ErrInvalidAppInfo)
	case !isAbsoluteURL(info.APIDomain):
		return fmt.Errorf("%w: api domain %q is not an absolute URL", ErrInvalidAppInfo, info.APIDomain)
	case !isAbsoluteURL(info.WebsiteDomain):
		return fmt.Errorf("%w: website domain %q is not an absolute URL", ErrInvalidAppInfo, info.WebsiteDomain)
	case !strings.HasPrefix(info.APIBasePath, "/"):
		return fmt.Errorf("%w: api base path %q must start with /", ErrInvalidAppInfo, info.APIBasePath)
	case !strings.HasPrefix(info.WebsiteBasePath, "/"):
		return fmt.Errorf("%w: website base path %q must start with /", ErrInvalidAppInfo, info.WebsiteBasePath)
	}
	return nil
}

func validateProvider(p authconfig.Provider) error {
	kind, ok := providerKinds[p.ThirdPartyID]
	if !ok {
		return fmt.Errorf("%w: %q is not supported", ErrInvalidProvider, p.ThirdPartyID)
	}
	if len(p.Clients) == 0 {
		return fmt.Errorf("%w: %s has no clients", ErrInvalidProvider, p.ThirdPartyID)
	}

	types := make(map[string]struct{}, len(p.Clients))
	for _, c := range p.Clients {
		if _, dup := types[c.ClientType]; dup {
			return fmt.Errorf("%w: %s declares client type %q twice", ErrInvalidProvider, p.ThirdPartyID, c.ClientType)
		}
		types[c.ClientType] = struct{}{}

		if c.ClientID == "" {
			return fmt.Errorf("%w: %s/%s client id is empty", ErrInvalidProvider, p.ThirdPartyID, c.ClientType)
		}
		if err := kind.validate(c); err != nil {
			return fmt.Errorf("%w: %s/%s: %w", ErrInvalidProvider, p.ThirdPartyID, c.ClientType, err)
		}
	}

	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
