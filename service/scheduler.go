package service

import (
	"sync"
	"time"

	"myregistrar/helpers"
	"myregistrar/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SerialScheduler implements interfaces.Scheduler. A single worker goroutine executes every task run,
// so runs never overlap, across tasks or within one task. Each scheduled task has a driver goroutine
// that owns its timer and re-arms it period after the previous run finished (fixed delay).
type SerialScheduler struct {
	logger log.Logger

	work      chan func()
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSerialScheduler starts the worker goroutine. Panics on nil logger.
//
// Called from cmd when wiring the registration manager; closed with Close after the manager stopped.
func NewSerialScheduler(logger log.Logger) *SerialScheduler {
	s := &SerialScheduler{
		logger: log.With(helpers.NilPanic(logger, "service.scheduler.go: logger is required"), "component", "scheduler"),
		work:   make(chan func()),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.worker()
	return s
}

// ScheduleWithFixedDelay runs task after initialDelay, then period after each completed run, until the
// returned handle is cancelled or the scheduler is closed. Panics on nil task or non-positive period.
func (s *SerialScheduler) ScheduleWithFixedDelay(task func(), initialDelay time.Duration, period time.Duration) interfaces.TaskHandle {
	helpers.NilPanic(task, "service.scheduler.go: task is required")
	helpers.DurationPanic(period, "service.scheduler.go: period must be positive")
	h := &taskHandle{stop: make(chan struct{})}
	go s.drive(h, task, initialDelay, period)
	return h
}

// Close stops the worker and every driver. Waits for an in-flight run to finish. Idempotent.
// Must not be called from inside a task.
func (s *SerialScheduler) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.done
}

func (s *SerialScheduler) worker() {
	defer close(s.done)
	for {
		select {
		case fn := <-s.work:
			fn()
		case <-s.quit:
			return
		}
	}
}

// drive waits for the timer, hands one run to the worker, waits for it to finish and re-arms.
func (s *SerialScheduler) drive(h *taskHandle, task func(), delay time.Duration, period time.Duration) {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
		case <-h.stop:
			return
		case <-s.quit:
			return
		}
		finished := make(chan struct{})
		run := func() {
			defer close(finished)
			// Cancelled between hand-off and execution: skip.
			if h.cancelled() {
				return
			}
			s.run(task)
		}
		select {
		case s.work <- run:
		case <-h.stop:
			return
		case <-s.quit:
			return
		}
		<-finished
		timer.Reset(period)
	}
}

// run executes task, recovering a panic so the worker survives.
func (s *SerialScheduler) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(s.logger).Log("msg", "scheduled task panicked", "panic", r)
		}
	}()
	task()
}

// taskHandle implements interfaces.TaskHandle.
type taskHandle struct {
	once sync.Once
	stop chan struct{}
}

func (h *taskHandle) Cancel() bool {
	cancelled := false
	h.once.Do(func() {
		close(h.stop)
		cancelled = true
	})
	return cancelled
}

func (h *taskHandle) cancelled() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}
