package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ConfigService holds dependencies and provides config operations.
type ConfigService struct {
	Logger     *slog.Logger
	Client     *http.Client
	Config     *Config
	MaxRetries int
}

// NewConfigService creates a new ConfigService instance with the provided logger and HTTP client.
func NewConfigService(logger *slog.Logger, client *http.Client, config *Config) *ConfigService {
	return &ConfigService{
		Logger:     logger,
		Client:     client,
		Config:     config,
		MaxRetries: 3,
	}
}

// RefreshConfig reloads the remote configuration every interval until ctx is done.
func (cs *ConfigService) RefreshConfig(ctx context.Context, url, authUser, authPass string, interval time.Duration) {
	refreshConfig(ctx, cs.Client, url, authUser, authPass, cs.Config, cs.Logger, interval, cs.MaxRetries)
}

// LoadConfigFromFile loads a configuration document from disk.
func LoadConfigFromFile(filePath string) (Document, error) {
	doc, err := loadConfigFromFile(filePath)
	if err != nil {
		err = fmt.Errorf("failed to load config from file %s: %w", filePath, err)
		reportConfigError(err, "file_path", filePath)
		return Document{}, err
	}
	return doc, nil
}

// LoadConfigFromURL loads a configuration document from a remote URL.
func LoadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (Document, error) {
	doc, err := loadConfigFromURL(ctx, client, url, authUser, authPass, maxRetries)
	if err != nil {
		err = fmt.Errorf("failed to load config from URL %s: %w", url, err)
		reportConfigError(err, "config_url", url)
		return Document{}, err
	}
	return doc, nil
}
