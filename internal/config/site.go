package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/flood-forcing/internal/timeseries"
)

// Site carries per-deployment defaults: a display name plus the fallback SCS
// distribution used when a rainfall request does not name one.
type Site struct {
	Name string `yaml:"name"`
	SCS  struct {
		File      string `yaml:"file"`
		StormType string `yaml:"storm_type"`
	} `yaml:"scs"`
}

// LoadSite parses a site defaults YAML file. An empty path is not an error:
// it returns a nil site, meaning no defaults are configured.
func LoadSite(path string) (*Site, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site config %s: %w", path, err)
	}
	return &site, nil
}

// SCSDefaults converts the site's SCS section to the engine's defaults type.
// Returns nil when the site is nil or names no storm type.
func (s *Site) SCSDefaults() *timeseries.SCSDefaults {
	if s == nil || s.SCS.StormType == "" {
		return nil
	}
	return &timeseries.SCSDefaults{File: s.SCS.File, StormType: s.SCS.StormType}
}
