package service

import (
	"myregistrar/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks registration attempts and the current registration state.
//
// All metrics use the registrar_ prefix.
type Metrics struct {
	// RegistrationsTotal counts register calls by result ("success", "failure").
	RegistrationsTotal *prometheus.CounterVec

	// DeregistrationsTotal counts deregister calls by result ("success", "failure").
	DeregistrationsTotal *prometheus.CounterVec

	// RegistrationDuration tracks latency of register and deregister calls.
	RegistrationDuration *prometheus.HistogramVec

	// State is 1 for the current state label and 0 for the others.
	State *prometheus.GaugeVec
}

var allStates = []domain.RegistrationState{
	domain.StateUnregistered,
	domain.StateRegistering,
	domain.StateRegistered,
	domain.StateDeregistering,
}

// NewMetrics creates the registrar metrics and registers them on reg.
// Panics if registration fails (expected during initialization only).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registrar_registrations_total",
				Help: "Total register calls against the registry by result",
			},
			[]string{"result"},
		),
		DeregistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registrar_deregistrations_total",
				Help: "Total deregister calls against the registry by result",
			},
			[]string{"result"},
		),
		RegistrationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registrar_call_duration_seconds",
				Help:    "Registry call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		State: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "registrar_state",
				Help: "Current registration state (1 for the active state)",
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(
		m.RegistrationsTotal,
		m.DeregistrationsTotal,
		m.RegistrationDuration,
		m.State,
	)
	m.setState(domain.StateUnregistered)
	return m
}

func (m *Metrics) setState(state domain.RegistrationState) {
	for _, s := range allStates {
		v := 0.0
		if s == state {
			v = 1
		}
		m.State.WithLabelValues(string(s)).Set(v)
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
