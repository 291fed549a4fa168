package core

import (
	"context"
)

// Interface is implemented by every long-running service in the
// process: the store, the backfill engine, the snapshot refresher and
// the HTTP API
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry holds the services in their startup order. Order matters:
// the store must be up before backfill, and backfill must have run
// before the API starts serving.
type Registry struct {
	services []Interface
}

// NewRegistry creates an empty service registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

// Register appends a service to the registry
func (r *Registry) Register(service Interface) {
	r.services = append(r.services, service)
}

// StartAll starts the services in registration order, aborting on the
// first failure
func (r *Registry) StartAll(ctx context.Context) error {
	for _, service := range r.services {
		if err := service.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops the services in reverse registration order, so
// dependents shut down before what they depend on
func (r *Registry) StopAll() {
	for i := len(r.services) - 1; i >= 0; i-- {
		r.services[i].Stop()
	}
}
