package main

import (
	"fmt"

	"github.com/MKhiriev/t4-api/internal/adapter"
	"github.com/MKhiriev/t4-api/internal/auth"
	"github.com/MKhiriev/t4-api/internal/authconfig"
	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/handler"
	"github.com/MKhiriev/t4-api/internal/logger"
	"github.com/MKhiriev/t4-api/internal/metrics"
	"github.com/MKhiriev/t4-api/internal/server"
	"github.com/MKhiriev/t4-api/internal/service"
	"github.com/MKhiriev/t4-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("t4-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	settings := authconfig.Build(cfg.AuthEnv())

	m := metrics.New()

	delivery, err := adapter.NewEmailDelivery(cfg.Email, cfg.App.Name, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating email delivery")
	}

	authRuntime, err := auth.Init(settings, m.InstrumentEmailDelivery()(delivery), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error initialising auth")
	}

	services, err := service.NewServices(authRuntime, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, cfg.Server, settings.AppInfo.APIBasePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
