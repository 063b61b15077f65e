package featureflags

import (
	"log/slog"
	"sync/atomic"
)

// Registry publishes the current Catalog. A catalog is built completely before
// it replaces the previous one, so readers never see a partial catalog.
type Registry struct {
	current atomic.Pointer[Catalog]
	log     *slog.Logger
}

type RegistryOption func(r *Registry)

func WithRegistryLogger(log *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = log
	}
}

// NewRegistry builds and publishes the initial catalog.
func NewRegistry(src ConfigSource, modifyEnabled bool, opts ...RegistryOption) *Registry {
	r := &Registry{log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(slog.String("component", "registry"))
	r.Rebuild(src, modifyEnabled)
	return r
}

// Catalog returns the published catalog.
func (r *Registry) Catalog() *Catalog {
	return r.current.Load()
}

// Rebuild builds a new catalog from src and publishes it.
func (r *Registry) Rebuild(src ConfigSource, modifyEnabled bool) []BuildEvent {
	c, events := BuildCatalog(src, modifyEnabled)
	r.current.Store(c)
	LogBuildEvents(r.log, events)
	return events
}
