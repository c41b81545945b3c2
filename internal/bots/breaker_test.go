package bots

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testBreaker(maxFailures int, window, cooldown time.Duration) *CircuitBreaker {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailureCount:   maxFailures,
		FailureTimeWindow: window,
		CooldownPeriod:    cooldown,
	}, logger)
}

// TestCircuitBreakerOpensAtThreshold tests opening after repeated failures
func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb := testBreaker(3, time.Minute, time.Minute)

	assert.True(t, cb.Allow())
	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, CircuitClosed, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.Allow())
}

// TestCircuitBreakerSuccessResets tests that a success clears the streak
func TestCircuitBreakerSuccessResets(t *testing.T) {
	cb := testBreaker(3, time.Minute, time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()

	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, CircuitClosed, cb.State())
}

// TestCircuitBreakerCooldownHalfOpen tests the half-open transition
func TestCircuitBreakerCooldownHalfOpen(t *testing.T) {
	cb := testBreaker(1, time.Minute, 10*time.Millisecond)

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.Allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.Allow())
	assert.Equal(t, CircuitHalfOpen, cb.State())
}

// TestCircuitBreakerHalfOpenProbe tests probe outcomes
func TestCircuitBreakerHalfOpenProbe(t *testing.T) {
	cb := testBreaker(1, time.Minute, 10*time.Millisecond)

	cb.RecordFailure()
	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.Allow())

	// Failed probe reopens immediately.
	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())
	assert.False(t, cb.Allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.Allow())
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

// TestCircuitBreakerStateString tests state names
func TestCircuitBreakerStateString(t *testing.T) {
	assert.Equal(t, "CLOSED", CircuitClosed.String())
	assert.Equal(t, "HALF_OPEN", CircuitHalfOpen.String())
	assert.Equal(t, "OPEN", CircuitOpen.String())
}
