// Package league loads the league registry: which competitions to collect
// and where their schedule and season-stats pages live.
package league

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownLeague is returned when a requested league code is not in the
// registry.
var ErrUnknownLeague = errors.New("league: unknown league code")

// League describes one competition season.
type League struct {
	// Name is the human-readable competition name.
	Name string `yaml:"name"`

	// Season in provider notation, e.g. "2024-2025".
	Season string `yaml:"season"`

	// HomeURL is the provider home page, warmed up for cookies.
	HomeURL string `yaml:"home_url"`

	// FixturesURL is the scores-and-fixtures page.
	FixturesURL string `yaml:"fixtures_url"`

	// SeasonURL is the season-stats page carrying standings and squad
	// metrics.
	SeasonURL string `yaml:"season_url"`
}

// Registry maps league codes to their configuration.
type Registry struct {
	Leagues map[string]League `yaml:"leagues"`
}

// Load reads a registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("league: read config: %w", err)
	}
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("league: parse %s: %w", path, err)
	}
	if len(reg.Leagues) == 0 {
		return nil, fmt.Errorf("league: %s defines no leagues", path)
	}
	for code, lg := range reg.Leagues {
		if lg.FixturesURL == "" && lg.SeasonURL == "" {
			return nil, fmt.Errorf("league: %q has neither fixtures_url nor season_url", code)
		}
	}
	return &reg, nil
}

// Get returns the league for code.
func (r *Registry) Get(code string) (League, error) {
	lg, ok := r.Leagues[code]
	if !ok {
		return League{}, fmt.Errorf("%w: %q", ErrUnknownLeague, code)
	}
	return lg, nil
}

// Codes lists the registered league codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.Leagues))
	for code := range r.Leagues {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
