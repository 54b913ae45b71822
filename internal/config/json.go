package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON config files.
// Durations accept both Go duration strings ("30s") and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Name     string `json:"name"`
		URL      string `json:"url"`
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		ConnectionURI string `json:"connection_uri"`
		APIKey        string `json:"api_key"`
		APIURL        string `json:"api_url"`
		Discord       struct {
			ClientID string `json:"client_id"`
		} `json:"discord,omitempty"`
		Google struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
		} `json:"google,omitempty"`
		Apple struct {
			ClientID    string `json:"client_id"`
			ClientIDIOS string `json:"client_id_ios"`
			KeyID       string `json:"key_id"`
			PrivateKey  string `json:"private_key"`
			TeamID      string `json:"team_id"`
		} `json:"apple,omitempty"`
	} `json:"auth,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Email struct {
		RelayURL string   `json:"relay_url"`
		APIKey   string   `json:"api_key"`
		Timeout  Duration `json:"timeout"`
	} `json:"email,omitempty"`

	Client struct {
		APIURL         string   `json:"api_url"`
		DevHost        string   `json:"dev_host"`
		Platform       string   `json:"platform"`
		BatchWait      Duration `json:"batch_wait"`
		BatchMaxCalls  int      `json:"batch_max_calls"`
		RequestTimeout Duration `json:"request_timeout"`
		CacheTTL       Duration `json:"cache_ttl"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:     jsonCfg.App.Name,
			URL:      jsonCfg.App.URL,
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			ConnectionURI: jsonCfg.Auth.ConnectionURI,
			APIKey:        jsonCfg.Auth.APIKey,
			APIURL:        jsonCfg.Auth.APIURL,
			Discord:       Discord{ClientID: jsonCfg.Auth.Discord.ClientID},
			Google: Google{
				ClientID:     jsonCfg.Auth.Google.ClientID,
				ClientSecret: jsonCfg.Auth.Google.ClientSecret,
			},
			Apple: Apple{
				ClientID:    jsonCfg.Auth.Apple.ClientID,
				ClientIDIOS: jsonCfg.Auth.Apple.ClientIDIOS,
				KeyID:       jsonCfg.Auth.Apple.KeyID,
				PrivateKey:  jsonCfg.Auth.Apple.PrivateKey,
				TeamID:      jsonCfg.Auth.Apple.TeamID,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Email: Email{
			RelayURL: jsonCfg.Email.RelayURL,
			APIKey:   jsonCfg.Email.APIKey,
			Timeout:  time.Duration(jsonCfg.Email.Timeout),
		},
		Client: Client{
			APIURL:         jsonCfg.Client.APIURL,
			DevHost:        jsonCfg.Client.DevHost,
			Platform:       jsonCfg.Client.Platform,
			BatchWait:      time.Duration(jsonCfg.Client.BatchWait),
			BatchMaxCalls:  jsonCfg.Client.BatchMaxCalls,
			RequestTimeout: time.Duration(jsonCfg.Client.RequestTimeout),
			CacheTTL:       time.Duration(jsonCfg.Client.CacheTTL),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
