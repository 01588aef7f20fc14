package source

import (
	"fmt"
	"strings"
	"sync"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
)

// Registry caches one Source per connection-parameter set for the
// process lifetime, so repeated polls reuse the same handle instead of
// reconnecting.
type Registry struct {
	mu      sync.Mutex
	sources map[string]Source
}

// NewRegistry creates an empty source cache.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Get returns the cached Source for the config's connection
// parameters, building it on first use.
func (r *Registry) Get(cfg *config.Config) (Source, error) {
	key := cacheKey(cfg)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sources[key]; ok {
		return s, nil
	}

	s, err := build(cfg)
	if err != nil {
		return nil, err
	}
	r.sources[key] = s
	return s, nil
}

// CloseAll closes every cached source. Close errors are collected, not
// short-circuited, so every handle gets a chance to shut down.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []string
	for key, s := range r.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		delete(r.sources, key)
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing sources: %s", strings.Join(errs, "; "))
	}
	return nil
}

// build constructs a fresh Source for the configured transport.
func build(cfg *config.Config) (Source, error) {
	switch cfg.Source {
	case config.SourceSDK:
		return NewSDK(cfg.Workspace, cfg.Variables), nil
	case config.SourceModbus:
		return NewModbus(cfg.Modbus), nil
	case config.SourceREST:
		return NewREST(cfg.REST), nil
	}
	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown source '%s'", cfg.Source),
		"Use 'sdk', 'modbus', or 'rest'.")
}

// cacheKey folds the connection parameters for the active transport
// into a map key. Variable lists are part of the key: two watches over
// different variables get different handles.
func cacheKey(cfg *config.Config) string {
	switch cfg.Source {
	case config.SourceSDK:
		return fmt.Sprintf("sdk|%s|%s|%s|%s",
			cfg.Workspace.URL, cfg.Workspace.Token, cfg.Workspace.Kind,
			strings.Join(cfg.Variables, ","))
	case config.SourceModbus:
		m := cfg.Modbus
		return fmt.Sprintf("modbus|%s:%d|%d|%d+%d", m.Host, m.Port, m.UnitID, m.Register, m.Count)
	case config.SourceREST:
		ids := make([]string, len(cfg.REST.VariableIDs))
		for i, id := range cfg.REST.VariableIDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		return fmt.Sprintf("rest|%s|%s", cfg.REST.BaseURL, strings.Join(ids, ","))
	}
	return "unknown|" + cfg.Source
}
