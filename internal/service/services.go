package service

import (
	"fmt"

	"github.com/MKhiriev/t4-api/internal/config"
	"github.com/MKhiriev/t4-api/internal/logger"
)

type Services struct {
	AppInfoService  AppInfoService
	AuthService     AuthService
	GreetingService GreetingService
}

func NewServices(runtime AuthRuntime, cfg config.App, logger *logger.Logger) (*Services, error) {
	if runtime == nil {
		return nil, ErrNoAuthRuntime
	}

	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AppInfoService:  appInfo,
		AuthService:     NewAuthService(runtime, logger),
		GreetingService: NewGreetingService(),
	}, nil
}
