package authconfig

// Env is the environment record the settings are built from. Every field is
// read-only input sourced from process configuration.
type Env struct {
	ConnectionURI string
	APIKey        string

	AppName string
	APIURL  string
	AppURL  string

	DiscordClientID string

	GoogleClientID     string
	GoogleClientSecret string

	AppleClientID    string
	AppleClientIDIOS string
	AppleKeyID       string
	ApplePrivateKey  string
	AppleTeamID      string
}
