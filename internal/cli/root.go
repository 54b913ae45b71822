package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/t4-api/internal/client"
	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/models"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	apiURL     string
	platform   string
	devHost    string
	timeout    time.Duration
	logLevel   string
}

// app is the state a command run builds in PersistentPreRunE.
type app struct {
	opts     globalOptions
	build    models.AppBuildInfo
	logger   *logger.Logger
	provider *client.Provider
}

// NewRootCommand returns the t4 root command with all subcommands attached.
func NewRootCommand(build models.AppBuildInfo, log *logger.Logger) *cobra.Command {
	a := &app{build: build, logger: log}

	cmd := &cobra.Command{
		Use:   "t4",
		Short: "Command-line client of the t4 API",
		Long: `t4 calls the procedures of a t4 API server over its batched RPC endpoint.

The API URL is read from EXPO_PUBLIC_API_URL or --api-url. A localhost URL is
pointed at CLIENT_DEV_HOST (or --dev-host) when set, and at the Android
emulator's host alias when --platform is android.`,
		Version:           build.BuildVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	cmd.SetVersionTemplate(`{{printf "t4 version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "JSON config file path")
	flags.StringVar(&a.opts.apiURL, "api-url", "", "API base URL (overrides EXPO_PUBLIC_API_URL)")
	flags.StringVar(&a.opts.platform, "platform", "", "platform sent in the X-Platform header: web, ios or android")
	flags.StringVar(&a.opts.devHost, "dev-host", "", "host that replaces localhost in the API URL")
	flags.DurationVar(&a.opts.timeout, "timeout", 0, "timeout of one batched request")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newVersionCommand(a),
		newGreetCommand(a),
		newCallCommand(a),
		newPasswordResetCommand(a),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(build models.AppBuildInfo) {
	log := logger.NewClientLogger("t4-client")
	if err := NewRootCommand(build, log).Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}

	if err := logger.SetLevel(a.opts.logLevel); err != nil {
		return err
	}

	cfg, err := a.clientConfig()
	if err != nil {
		return err
	}

	a.provider = client.NewProvider(*cfg, a.logger)
	a.logger.Debug().Str("endpoint", a.provider.Endpoint()).Msg("rpc endpoint resolved")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, err = a.provider.Wrap(ctx)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)

	return nil
}

func (a *app) teardown() error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Close()
}

// clientConfig loads env and JSON config and applies the persistent flags
// on top.
func (a *app) clientConfig() (*config.ClientConfig, error) {
	var args []string
	if a.opts.configPath != "" {
		args = append(args, "-c", a.opts.configPath)
	}

	structured, err := config.GetStructuredConfig(args...)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}

	cfg := config.NewClientConfig(structured)
	if a.opts.apiURL != "" {
		cfg.APIURL = a.opts.apiURL
	}
	if a.opts.platform != "" {
		cfg.Platform = a.opts.platform
	}
	if a.opts.devHost != "" {
		cfg.DevHost = a.opts.devHost
	}
	if a.opts.timeout > 0 {
		cfg.RequestTimeout = a.opts.timeout
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	return cfg, nil
}
