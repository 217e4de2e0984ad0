package service

import (
	"context"
	"sync"
	"time"

	"myregistrar/domain"
	"myregistrar/helpers"
	"myregistrar/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// RegistrationManager keeps the application registered with the monitoring registry for the lifetime
// of the process. Start runs one registration attempt and arms a periodic task on the scheduler;
// each tick registers again when the instance is not registered (or always, in heartbeat mode).
// Stop cancels the task and deregisters. Registry failures are logged and counted, never returned:
// the next tick is the retry.
//
// Two locks: attemptMu serialises whole register attempts with Stop so Stop never sees a half-finished
// attempt; mu guards the state cell and is never held across a network call.
type RegistrationManager struct {
	client    interfaces.RegistryClient
	scheduler interfaces.Scheduler
	clock     interfaces.TimeProvider
	metrics   *Metrics
	logger    log.Logger

	app                domain.Application
	autoRegistration   bool
	autoDeregistration bool
	heartbeat          bool
	period             time.Duration
	timeout            time.Duration

	attemptMu sync.Mutex

	mu               sync.Mutex
	state            domain.RegistrationState
	registryID       string
	lastRegisteredAt *time.Time
	failures         int
	handle           interfaces.TaskHandle
	started          bool
	stopped          bool
}

var (
	_ interfaces.Lifecycle      = (*RegistrationManager)(nil)
	_ interfaces.StatusProvider = (*RegistrationManager)(nil)
)

// NewRegistrationManager creates a manager in state unregistered. Panics on nil client, scheduler, clock,
// metrics or logger, and on non-positive cfg.Period or cfg.Timeout.
//
// Parameters: client — registry transport (adapters.RegistryHTTP); scheduler — single-worker scheduler
// (SerialScheduler); clock — source of registration timestamps; metrics — registrar metrics; app — metadata to
// announce; cfg — enablement flags, period and per-call timeout; logger — go-kit logger.
//
// Called from cmd serve; the host calls Start once its listener is up and Stop on shutdown.
func NewRegistrationManager(
	client interfaces.RegistryClient,
	scheduler interfaces.Scheduler,
	clock interfaces.TimeProvider,
	metrics *Metrics,
	app domain.Application,
	cfg domain.RegistrationConfig,
	logger log.Logger,
) *RegistrationManager {
	return &RegistrationManager{
		client:             helpers.NilPanic(client, "service.registration_manager.go: client is required"),
		scheduler:          helpers.NilPanic(scheduler, "service.registration_manager.go: scheduler is required"),
		clock:              helpers.NilPanic(clock, "service.registration_manager.go: clock is required"),
		metrics:            helpers.NilPanic(metrics, "service.registration_manager.go: metrics is required"),
		logger:             log.With(helpers.NilPanic(logger, "service.registration_manager.go: logger is required"), "component", "registration_manager", "application", app.Name),
		app:                app,
		autoRegistration:   cfg.AutoRegistration,
		autoDeregistration: cfg.AutoDeregistration,
		heartbeat:          cfg.Heartbeat,
		period:             helpers.DurationPanic(cfg.Period, "service.registration_manager.go: period must be positive"),
		timeout:            helpers.DurationPanic(cfg.Timeout, "service.registration_manager.go: timeout must be positive"),
		state:              domain.StateUnregistered,
	}
}

// Start is invoked once the host application is ready. No-op when auto registration is disabled, when already
// started or after Stop. Otherwise performs one registration attempt (bounded by the timeout) and then, whatever
// its outcome, schedules the periodic task with initial delay and period both equal to the configured period.
func (m *RegistrationManager) Start(ctx context.Context) {
	if !m.autoRegistration {
		level.Info(m.logger).Log("msg", "auto registration disabled")
		return
	}
	m.mu.Lock()
	if m.started || m.stopped {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	m.attempt(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Stop arrived while the first attempt was running.
	if m.stopped {
		return
	}
	m.handle = m.scheduler.ScheduleWithFixedDelay(m.tick, m.period, m.period)
	level.Debug(m.logger).Log("msg", "registration task scheduled", "period", m.period)
}

// Stop is invoked on host shutdown. Cancels the periodic task, waits for an in-flight attempt, then deregisters
// when auto deregistration is enabled and the instance is registered. A deregistration failure is logged and not
// retried. Idempotent; the manager cannot be restarted.
func (m *RegistrationManager) Stop(ctx context.Context) {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	handle := m.handle
	m.handle = nil
	m.mu.Unlock()

	if handle != nil {
		handle.Cancel()
	}

	m.attemptMu.Lock()
	defer m.attemptMu.Unlock()

	m.mu.Lock()
	if !m.autoDeregistration || m.state != domain.StateRegistered {
		m.mu.Unlock()
		return
	}
	registryID := m.registryID
	m.setStateLocked(domain.StateDeregistering)
	m.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	begin := time.Now()
	err := m.client.Deregister(callCtx, registryID)
	m.metrics.RegistrationDuration.WithLabelValues("deregister").Observe(time.Since(begin).Seconds())
	m.metrics.DeregistrationsTotal.WithLabelValues(resultLabel(err)).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.registryID = ""
	m.setStateLocked(domain.StateUnregistered)
	if err != nil {
		level.Error(m.logger).Log("msg", "failed to deregister application", "registry_id", registryID, "code", ToRegistryErrorCode(err), "err", err)
		return
	}
	level.Info(m.logger).Log("msg", "application deregistered", "registry_id", registryID)
}

// Status returns a snapshot of the registration state.
//
// Called from handlers.HTTPServer for GET /registration and by tests.
func (m *RegistrationManager) Status() domain.RegistrationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *time.Time
	if m.lastRegisteredAt != nil {
		t := *m.lastRegisteredAt
		last = &t
	}
	return domain.RegistrationStatus{
		State:               m.state,
		RegistryID:          m.registryID,
		LastRegisteredAt:    last,
		ConsecutiveFailures: m.failures,
	}
}

// tick is the periodic task body. Runs on the scheduler's worker.
func (m *RegistrationManager) tick() {
	m.attempt(context.Background())
}

// attempt performs one registration attempt if the manager is not stopped and the instance is not registered
// (or heartbeat mode is on). A failure returns the state to unregistered.
func (m *RegistrationManager) attempt(ctx context.Context) {
	m.attemptMu.Lock()
	defer m.attemptMu.Unlock()

	m.mu.Lock()
	if m.stopped || (m.state == domain.StateRegistered && !m.heartbeat) {
		m.mu.Unlock()
		return
	}
	wasRegistered := m.state == domain.StateRegistered
	m.setStateLocked(domain.StateRegistering)
	m.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	begin := time.Now()
	id, err := m.client.Register(callCtx, m.app)
	m.metrics.RegistrationDuration.WithLabelValues("register").Observe(time.Since(begin).Seconds())
	m.metrics.RegistrationsTotal.WithLabelValues(resultLabel(err)).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failures++
		m.registryID = ""
		m.setStateLocked(domain.StateUnregistered)
		m.logFailureLocked(err)
		return
	}
	m.failures = 0
	m.registryID = id
	now := m.clock.Now()
	m.lastRegisteredAt = &now
	m.setStateLocked(domain.StateRegistered)
	if wasRegistered {
		level.Debug(m.logger).Log("msg", "application re-announced", "registry_id", id)
		return
	}
	level.Info(m.logger).Log("msg", "application registered", "registry_id", id)
}

// logFailureLocked logs the first failure of a streak at warn and the rest at debug, so an unreachable
// registry does not flood the host's logs. Caller must hold m.mu.
func (m *RegistrationManager) logFailureLocked(err error) {
	if m.failures == 1 {
		level.Warn(m.logger).Log(
			"msg", "failed to register application, further attempts are logged on debug level",
			"code", ToRegistryErrorCode(err),
			"err", err,
		)
		return
	}
	level.Debug(m.logger).Log("msg", "failed to register application", "attempt", m.failures, "code", ToRegistryErrorCode(err), "err", err)
}

// setStateLocked updates the state cell and the state gauge. Caller must hold m.mu.
func (m *RegistrationManager) setStateLocked(state domain.RegistrationState) {
	m.state = state
	m.metrics.setState(state)
}
