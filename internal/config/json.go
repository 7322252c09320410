package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogFile       string   `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Dir string `json:"dir"`
		} `json:"files,omitempty"`

		S3 struct {
			Bucket          string `json:"bucket"`
			Region          string `json:"region"`
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			Prefix          string `json:"prefix"`
		} `json:"s3,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ProbeInterval Duration `json:"probe_interval"`
		WatchFile     string   `json:"watch_file"`
	} `json:"workers,omitempty"`

	Sync struct {
		DebounceWindow      Duration `json:"debounce_window"`
		DisableAutoSync     bool     `json:"disable_auto_sync"`
		DisableOfflineQueue bool     `json:"disable_offline_queue"`
	} `json:"sync,omitempty"`
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
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
			LogFile:       jsonCfg.App.LogFile,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				Dir: jsonCfg.Storage.Files.Dir,
			},
			S3: S3{
				Bucket:          jsonCfg.Storage.S3.Bucket,
				Region:          jsonCfg.Storage.S3.Region,
				Endpoint:        jsonCfg.Storage.S3.Endpoint,
				AccessKeyID:     jsonCfg.Storage.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Storage.S3.SecretAccessKey,
				Prefix:          jsonCfg.Storage.S3.Prefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Workers: Workers{
			ProbeInterval: time.Duration(jsonCfg.Workers.ProbeInterval),
			WatchFile:     jsonCfg.Workers.WatchFile,
		},
		Sync: Sync{
			DebounceWindow:      time.Duration(jsonCfg.Sync.DebounceWindow),
			DisableAutoSync:     jsonCfg.Sync.DisableAutoSync,
			DisableOfflineQueue: jsonCfg.Sync.DisableOfflineQueue,
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
