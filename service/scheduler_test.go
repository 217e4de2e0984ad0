package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSerialScheduler_Panics(t *testing.T) {
	t.Run("logger_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.scheduler.go: logger is required", func() {
			NewSerialScheduler(nil)
		})
	})

	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()
	t.Run("task_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.scheduler.go: task is required", func() {
			s.ScheduleWithFixedDelay(nil, 0, time.Second)
		})
	})
	t.Run("period_zero", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.scheduler.go: period must be positive", func() {
			s.ScheduleWithFixedDelay(func() {}, 0, 0)
		})
	})
}

func TestSerialScheduler_RunsRepeatedly(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	var runs atomic.Int32
	h := s.ScheduleWithFixedDelay(func() { runs.Add(1) }, 0, 5*time.Millisecond)
	defer h.Cancel()

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, time.Millisecond)
}

func TestSerialScheduler_InitialDelay(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	var runs atomic.Int32
	h := s.ScheduleWithFixedDelay(func() { runs.Add(1) }, time.Hour, time.Hour)
	defer h.Cancel()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestSerialScheduler_CancelStopsFutureRuns(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	var runs atomic.Int32
	h := s.ScheduleWithFixedDelay(func() { runs.Add(1) }, 0, 2*time.Millisecond)
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, time.Millisecond)

	assert.True(t, h.Cancel())
	// let a run that was already in flight complete
	time.Sleep(20 * time.Millisecond)
	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSerialScheduler_CancelIsIdempotent(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	h := s.ScheduleWithFixedDelay(func() {}, time.Hour, time.Hour)
	assert.True(t, h.Cancel())
	assert.False(t, h.Cancel())
	assert.False(t, h.Cancel())
}

func TestSerialScheduler_RunsNeverOverlap(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	var active, maxActive, runs atomic.Int32
	task := func() {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(3 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
	}
	h1 := s.ScheduleWithFixedDelay(task, 0, time.Millisecond)
	h2 := s.ScheduleWithFixedDelay(task, 0, time.Millisecond)
	defer h1.Cancel()
	defer h2.Cancel()

	require.Eventually(t, func() bool { return runs.Load() >= 10 }, 5*time.Second, time.Millisecond)
	assert.Equal(t, int32(1), maxActive.Load())
}

func TestSerialScheduler_PanicInTaskIsRecovered(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())
	defer s.Close()

	var runs atomic.Int32
	h := s.ScheduleWithFixedDelay(func() {
		if runs.Add(1) == 1 {
			panic("boom")
		}
	}, 0, time.Millisecond)
	defer h.Cancel()

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, time.Millisecond)
}

func TestSerialScheduler_CloseStopsEverything(t *testing.T) {
	s := NewSerialScheduler(log.NewNopLogger())

	var runs atomic.Int32
	s.ScheduleWithFixedDelay(func() { runs.Add(1) }, 0, time.Millisecond)
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, time.Millisecond)

	s.Close()
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())

	// second Close returns immediately
	s.Close()
}
