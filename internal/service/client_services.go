package service

import (
	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

type ClientServices struct {
	SyncService ClientSyncService
}

func NewClientServices(
	localStore *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	connectivity ConnectivityChecker,
	cfg *config.ClientConfig,
	logger *logger.Logger,
) *ClientServices {
	return &ClientServices{
		SyncService: NewSyncClient(serverAdapter, localStore.StateRepository, utils.NewSystemClock(), connectivity, cfg.Sync, logger),
	}
}
