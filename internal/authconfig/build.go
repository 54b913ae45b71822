package authconfig

// Build returns the auth settings for env.
//
// The recipe order is significant to the runtime: third-party/email-password
// first, then sessions, the dashboard and user roles.
func Build(env Env) Settings {
	return Settings{
		Framework: FrameworkCustom,
		Backend: Backend{
			ConnectionURI: env.ConnectionURI,
			APIKey:        env.APIKey,
		},
		AppInfo: AppInfo{
			AppName:         env.AppName,
			APIDomain:       env.APIURL,
			WebsiteDomain:   env.AppURL,
			APIBasePath:     DefaultAPIBasePath,
			WebsiteBasePath: DefaultWebsiteBasePath,
		},
		Recipes: []Recipe{
			ThirdPartyEmailPassword{
				Providers: buildProviders(env),
				EmailDelivery: EmailDeliveryConfig{
					Override: PasswordResetLinkOverride(env.AppURL),
				},
			},
			Session{},
			Dashboard{},
			UserRoles{},
		},
	}
}
