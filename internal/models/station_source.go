package models

import "fmt"

// Kinds of station source the server can load from.
const (
	SourceKindFile     = "file"
	SourceKindGtfs     = "gtfs"
	SourceKindOba      = "oba"
	SourceKindPostgres = "postgres"
)

// StationSource describes where one set of stations comes from.
// Only the fields relevant to Kind are read.
type StationSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`

	// file
	Path string `json:"path,omitempty"`

	// gtfs
	GtfsUrl string `json:"gtfs_url,omitempty"`

	// oba
	ObaBaseURL string   `json:"oba_base_url,omitempty"`
	ObaApiKey  string   `json:"oba_api_key,omitempty"`
	StopIDs    []string `json:"stop_ids,omitempty"`

	// postgres
	DatabaseURL string `json:"database_url,omitempty"`
	Table       string `json:"table,omitempty"`
}

// Validate checks that the fields required by the source kind are present.
func (s StationSource) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station source has no id")
	}
	switch s.Kind {
	case SourceKindFile:
		if s.Path == "" {
			return fmt.Errorf("source %s: path is required for kind %q", s.ID, s.Kind)
		}
	case SourceKindGtfs:
		if s.GtfsUrl == "" {
			return fmt.Errorf("source %s: gtfs_url is required for kind %q", s.ID, s.Kind)
		}
	case SourceKindOba:
		if s.ObaBaseURL == "" || len(s.StopIDs) == 0 {
			return fmt.Errorf("source %s: oba_base_url and stop_ids are required for kind %q", s.ID, s.Kind)
		}
	case SourceKindPostgres:
		if s.DatabaseURL == "" {
			return fmt.Errorf("source %s: database_url is required for kind %q", s.ID, s.Kind)
		}
	default:
		return fmt.Errorf("source %s: unknown kind %q", s.ID, s.Kind)
	}
	return nil
}
