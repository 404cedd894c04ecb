//go:build integration

package integration

import (
	"flag"
	"fmt"
	"os"
	"testing"

	"trainsearch.org/internal/config"
	"trainsearch.org/internal/models"
)

var integrationConfig string

func init() {
	flag.StringVar(&integrationConfig, "integration-config", "", "Path to integration configuration file")
}

var integrationSources []models.StationSource

func TestMain(m *testing.M) {
	flag.Parse()

	if integrationConfig == "" {
		fmt.Fprintln(os.Stderr, "Error: -integration-config flag is required for integration tests")
		os.Exit(1)
	}

	doc, err := config.LoadConfigFromFile(integrationConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", integrationConfig, err)
		os.Exit(1)
	}
	integrationSources = doc.Sources

	os.Exit(m.Run())
}
