package config

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"trainsearch.org/internal/report"
	"trainsearch.org/internal/utils"
)

// ValidateConfigFlags ensures that exactly one configuration source is specified:
// either a config file "--config-file" or a remote config URL "--config-url".
func ValidateConfigFlags(configFile, configURL *string) error {
	if *configFile == "" && *configURL == "" {
		return fmt.Errorf("no configuration provided, either --config-file or --config-url must be specified")
	}
	if (*configFile != "" && *configURL != "") || len(flag.Args()) > 0 {
		return fmt.Errorf("only one of --config-file or --config-url can be specified")
	}
	return nil
}

// refreshConfig periodically fetches the configuration from a remote URL and
// replaces the tariff and station sources of cfg.
//
// Fetch and validation errors are logged and reported to Sentry; the previous
// configuration stays in place and the loop keeps going until ctx is done.
func refreshConfig(ctx context.Context, client *http.Client, configURL, authUser, authPass string, cfg *Config, logger *slog.Logger, interval time.Duration, maxRetries int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping config refresh routine")
			return
		case <-ticker.C:
			doc, err := loadConfigFromURL(ctx, client, configURL, authUser, authPass, maxRetries)
			if err != nil {
				reportConfigError(err, "config_url", configURL)
				logger.Error("Failed to refresh remote config", "error", err)
				continue
			}
			cfg.UpdateConfig(doc)
			logger.Info("Successfully refreshed configuration", "sources", len(doc.Sources))
		}
	}
}

// loadConfigFromFile reads and validates a JSON configuration document from disk.
func loadConfigFromFile(filePath string) (Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseDocument(data)
}

// loadConfigFromURL fetches and validates a JSON configuration document from a
// remote HTTP(S) endpoint, with optional basic authentication.
func loadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create request: %w", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return Document{}, fmt.Errorf("failed to fetch remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("remote config returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read remote config: %w", err)
	}

	return parseDocument(data)
}

func parseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return doc, nil
}

func reportConfigError(err error, tagKey, tagValue string) {
	report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Tags:  utils.MakeMap(tagKey, tagValue),
		Level: sentry.LevelError,
	})
}
