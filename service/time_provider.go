package service

import (
	"time"

	"myregistrar/helpers"
	"myregistrar/interfaces"
)

// timeProvider implements interfaces.TimeProvider via the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Called from cmd when building the registration manager (time.Now().UTC in prod, fixed time in tests).
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns current time from the injected function.
//
// Called from RegistrationManager when recording the last successful registration.
func (t *timeProvider) Now() time.Time {
	return t.now()
}
