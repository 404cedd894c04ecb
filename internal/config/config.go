package config

import (
	"fmt"
	"sync"
	"time"

	"trainsearch.org/internal/models"
)

// Document is the JSON configuration loaded from a file or URL.
type Document struct {
	Tariff  models.Tariff          `json:"tariff"`
	Sources []models.StationSource `json:"sources"`
}

// Validate applies tariff defaults and checks every source.
// Source IDs must be unique.
func (d *Document) Validate() error {
	d.Tariff = d.Tariff.WithDefaults()
	if err := d.Tariff.Validate(); err != nil {
		return err
	}
	if len(d.Sources) == 0 {
		return fmt.Errorf("no station sources configured")
	}

	seen := make(map[string]struct{}, len(d.Sources))
	for _, s := range d.Sources {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate station source id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

// Config holds all the configuration settings for our application.
type Config struct {
	Port            int
	Env             string
	CacheDir        string
	RefreshInterval time.Duration
	Mu              sync.RWMutex
	Tariff          models.Tariff
	Sources         []models.StationSource
}

// NewConfig creates a new instance of a Config struct.
func NewConfig(port int, env string, doc Document) *Config {
	return &Config{
		Port:    port,
		Env:     env,
		Tariff:  doc.Tariff.WithDefaults(),
		Sources: doc.Sources,
	}
}

// UpdateConfig safely replaces the tariff and station sources.
func (cfg *Config) UpdateConfig(doc Document) {
	cfg.Mu.Lock()
	defer cfg.Mu.Unlock()
	cfg.Tariff = doc.Tariff.WithDefaults()
	cfg.Sources = doc.Sources
}

// GetSources returns a copy of the configured station sources.
func (cfg *Config) GetSources() []models.StationSource {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	return append([]models.StationSource(nil), cfg.Sources...)
}

func (cfg *Config) GetTariff() models.Tariff {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	return cfg.Tariff
}
