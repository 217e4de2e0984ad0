package interfaces

import "time"

// Scheduler runs periodic tasks on a single worker, one run at a time.
//
// ScheduleWithFixedDelay runs task after initialDelay and then period after each run completes.
// Implemented by service.SerialScheduler; the lifecycle manager owns the returned handle.
//
//go:generate moq -stub -out mock/scheduler.go -pkg mock . Scheduler TaskHandle
type Scheduler interface {
	// ScheduleWithFixedDelay arms task. Returns the handle used to cancel it.
	ScheduleWithFixedDelay(task func(), initialDelay time.Duration, period time.Duration) TaskHandle
}

// TaskHandle cancels one scheduled task.
type TaskHandle interface {
	// Cancel prevents any future run of the task. An in-flight run is not interrupted.
	// Returns true only for the call that actually cancelled the task.
	Cancel() bool
}
