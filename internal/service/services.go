package service

import (
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	var records store.SyncRecordRepository
	if storages.Configured() {
		records = storages.SyncRecordRepository
	}

	return &Services{
		AuthService:    NewAuthService(cfg.App, logger),
		SyncService:    NewSyncService(records, utils.NewSystemClock(), logger),
		AppInfoService: appInfo,
	}, nil
}
