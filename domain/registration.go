package domain

import "time"

// RegistrationState is the client's belief about its entry in the registry.
type RegistrationState string

const (
	StateUnregistered  RegistrationState = "unregistered"
	StateRegistering   RegistrationState = "registering"
	StateRegistered    RegistrationState = "registered"
	StateDeregistering RegistrationState = "deregistering"
)

// RegistrationConfig controls the lifecycle manager and the registry client. Read once at startup.
type RegistrationConfig struct {
	RegistryURLs       []string
	Username           string
	Password           string
	AutoRegistration   bool
	AutoDeregistration bool
	RegisterOnce       bool // stop at the first registry that accepts the registration
	Heartbeat          bool // re-register on every tick even when already registered
	Period             time.Duration
	Timeout            time.Duration // bound of a single register or deregister call
}

// Defaults applied by cmd.LoadConfig before file and env overrides.
const (
	DefaultPeriod  = 10 * time.Second
	DefaultTimeout = 5 * time.Second
)

// RegistrationStatus is a point-in-time snapshot returned by service.RegistrationManager.Status.
type RegistrationStatus struct {
	State               RegistrationState `json:"state"`
	RegistryID          string            `json:"registry_id,omitempty"`
	LastRegisteredAt    *time.Time        `json:"last_registered_at,omitempty"`
	ConsecutiveFailures int               `json:"consecutive_failures"`
}
