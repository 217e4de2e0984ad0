package interfaces

import (
	"context"

	"myregistrar/domain"
)

// RegistryClient performs single register and deregister calls against the monitoring registry.
//
// Register announces the application (e.g. POST /api/applications) and returns the registry-assigned id.
// Deregister removes the entry identified by that id (e.g. DELETE /api/applications/{id}).
// Neither method retries; retry policy belongs to service.RegistrationManager.
//
// Implemented by adapters.RegistryHTTP. Called from service.RegistrationManager on start, on every
// scheduler tick and on stop; also from the cmd deregister command.
//
//go:generate moq -stub -out mock/registry_client.go -pkg mock . RegistryClient
type RegistryClient interface {
	// Register sends the application metadata to the registry.
	// Parameters: ctx — carries the caller's timeout; app — metadata to announce.
	// Returns: (id, nil) on a 2xx response with an id; ("", err) with a service.RegistryError of code
	// connect_error, timeout_error, rejected_error or not_found_error otherwise.
	Register(ctx context.Context, app domain.Application) (string, error)

	// Deregister informs the registry the instance is gone. A 404 from the registry counts as success.
	// Parameters: ctx — carries the caller's timeout; registryID — id previously returned by Register.
	// Returns: nil on success; service.RegistryError otherwise.
	Deregister(ctx context.Context, registryID string) error
}
