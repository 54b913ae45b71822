package authconfig

// Client types. The auth runtime selects the credential variant from the
// clientType the front-end sends.
const (
	ClientTypeWebAndAndroid = "web-and-android"
	ClientTypeIOS           = "ios"
)

// Third-party identifiers.
const (
	ThirdPartyDiscord = "discord"
	ThirdPartyGoogle  = "google"
	ThirdPartyApple   = "apple"
)

// Keys of [ProviderClient.AdditionalConfig] for Sign in with Apple.
const (
	AppleKeyID      = "keyId"
	ApplePrivateKey = "privateKey"
	AppleTeamID     = "teamId"
)

// Provider is one federated identity provider with its client variants.
type Provider struct {
	ThirdPartyID string
	Clients      []ProviderClient
}

// Client returns the variant registered for clientType.
func (p Provider) Client(clientType string) (ProviderClient, bool) {
	for _, c := range p.Clients {
		if c.ClientType == clientType {
			return c, true
		}
	}
	return ProviderClient{}, false
}

// ProviderClient is the credential set of one client variant.
type ProviderClient struct {
	ClientType       string
	ClientID         string
	ClientSecret     string
	AdditionalConfig map[string]string
}

// Each variant gets its own copy of the shared values; the runtime keys
// credentials by client type and does not fall back between variants.
func buildProviders(env Env) []Provider {
	return []Provider{
		{
			ThirdPartyID: ThirdPartyDiscord,
			// Discord uses PKCE, no secret.
			Clients: []ProviderClient{
				{ClientType: ClientTypeWebAndAndroid, ClientID: env.DiscordClientID},
				{ClientType: ClientTypeIOS, ClientID: env.DiscordClientID},
			},
		},
		{
			ThirdPartyID: ThirdPartyGoogle,
			Clients: []ProviderClient{
				{ClientType: ClientTypeWebAndAndroid, ClientID: env.GoogleClientID, ClientSecret: env.GoogleClientSecret},
				{ClientType: ClientTypeIOS, ClientID: env.GoogleClientID, ClientSecret: env.GoogleClientSecret},
			},
		},
		{
			ThirdPartyID: ThirdPartyApple,
			Clients: []ProviderClient{
				{ClientType: ClientTypeWebAndAndroid, ClientID: env.AppleClientID, AdditionalConfig: appleSigning(env)},
				{ClientType: ClientTypeIOS, ClientID: env.AppleClientIDIOS, AdditionalConfig: appleSigning(env)},
			},
		},
	}
}

func appleSigning(env Env) map[string]string {
	return map[string]string{
		AppleKeyID:      env.AppleKeyID,
		ApplePrivateKey: env.ApplePrivateKey,
		AppleTeamID:     env.AppleTeamID,
	}
}
