package helpers

import (
	"reflect"
	"time"
)

// StrPanic panics with panicMessage if p is empty; otherwise returns p. Only p == "" is checked, no TrimSpace.
//
// Used for fail-fast validation of required strings at wiring time (registry base URLs, application name).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan, func); otherwise returns v.
//
// Called from adapters.RegistryHTTP, service.NewRegistrationManager, service.NewSerialScheduler and the other
// constructors that take required collaborators.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// DurationPanic panics with panicMessage if d is not positive; otherwise returns d.
//
// Called from service.NewRegistrationManager for the registration period and the per-call timeout.
func DurationPanic(d time.Duration, panicMessage string) time.Duration {
	if d <= 0 {
		panic(panicMessage)
	}
	return d
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
