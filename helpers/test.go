package helpers

import (
	"time"
)

// TestNow returns a fixed time (2026-10-19 12:00:00 UTC) for deterministic tests (registration timestamps, status JSON).
//
// Called from service/registration_manager_test and handlers/http_test as the mocked clock.
func TestNow() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}
