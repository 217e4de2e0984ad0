package interfaces

import "myregistrar/domain"

// StatusProvider exposes the current registration state to the host's HTTP surface.
//
//go:generate moq -stub -out mock/status_provider.go -pkg mock . StatusProvider
type StatusProvider interface {
	// Status returns a snapshot; safe for concurrent use.
	Status() domain.RegistrationStatus
}
