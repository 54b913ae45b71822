package authconfig

const (
	// FrameworkCustom tells the auth runtime that requests are adapted by
	// this server rather than by a framework specific middleware.
	FrameworkCustom = "custom"

	// DefaultAPIBasePath is where the auth API is mounted on the API domain.
	DefaultAPIBasePath = "/api/auth"

	// DefaultWebsiteBasePath is where the auth UI lives on the website domain.
	DefaultWebsiteBasePath = "/auth"
)

// Recipe identifiers, in the order [Build] declares them.
const (
	RecipeThirdPartyEmailPassword = "thirdpartyemailpassword"
	RecipeSession                 = "session"
	RecipeDashboard               = "dashboard"
	RecipeUserRoles               = "userroles"
)

// Settings is the complete auth runtime configuration.
type Settings struct {
	Framework string
	Backend   Backend
	AppInfo   AppInfo
	Recipes   []Recipe
}

// Backend is the auth core connection.
type Backend struct {
	ConnectionURI string
	APIKey        string
}

// AppInfo describes the application the auth runtime serves.
type AppInfo struct {
	AppName         string
	APIDomain       string
	WebsiteDomain   string
	APIBasePath     string
	WebsiteBasePath string
}

// Recipe is one feature module of the auth runtime.
type Recipe interface {
	RecipeID() string
}

// ThirdPartyEmailPassword enables social login next to email/password
// accounts.
type ThirdPartyEmailPassword struct {
	Providers     []Provider
	EmailDelivery EmailDeliveryConfig
}

// RecipeID implements [Recipe].
func (ThirdPartyEmailPassword) RecipeID() string { return RecipeThirdPartyEmailPassword }

// Provider returns the provider registered under thirdPartyID.
func (r ThirdPartyEmailPassword) Provider(thirdPartyID string) (Provider, bool) {
	for _, p := range r.Providers {
		if p.ThirdPartyID == thirdPartyID {
			return p, true
		}
	}
	return Provider{}, false
}

// Session enables session handling with the runtime's defaults.
type Session struct{}

// RecipeID implements [Recipe].
func (Session) RecipeID() string { return RecipeSession }

// Dashboard enables the user management dashboard.
type Dashboard struct{}

// RecipeID implements [Recipe].
func (Dashboard) RecipeID() string { return RecipeDashboard }

// UserRoles enables role and permission management.
type UserRoles struct{}

// RecipeID implements [Recipe].
func (UserRoles) RecipeID() string { return RecipeUserRoles }

// RecipeIDs lists the configured recipe identifiers in declaration order.
func (s Settings) RecipeIDs() []string {
	ids := make([]string, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		ids = append(ids, r.RecipeID())
	}
	return ids
}

// ThirdPartyEmailPassword returns the third-party/email-password recipe if
// it is configured.
func (s Settings) ThirdPartyEmailPassword() (ThirdPartyEmailPassword, bool) {
	for _, r := range s.Recipes {
		switch recipe := r.(type) {
		case ThirdPartyEmailPassword:
			return recipe, true
		case *ThirdPartyEmailPassword:
			return *recipe, true
		}
	}
	return ThirdPartyEmailPassword{}, false
}
