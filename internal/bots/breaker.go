package bots

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed means bot calls are active
	CircuitClosed CircuitState = iota
	// CircuitHalfOpen means calls are resuming after cooldown
	CircuitHalfOpen
	// CircuitOpen means calls are suspended
	CircuitOpen
)

// String returns string representation of circuit state
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	case CircuitOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreakerConfig defines failure thresholds for the Gemini endpoint
type CircuitBreakerConfig struct {
	MaxFailureCount   int           `json:"max_failure_count"`
	FailureTimeWindow time.Duration `json:"failure_time_window"`
	CooldownPeriod    time.Duration `json:"cooldown_period"`
}

// CircuitBreaker suspends bot calls after repeated endpoint failures so
// a flapping API does not stall card analysis. Degraded analysis with
// nil bot fields is always preferred over blocking.
type CircuitBreaker struct {
	config          CircuitBreakerConfig
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
	openedAt        time.Time
	mu              sync.RWMutex
	logger          *logrus.Logger
}

// NewCircuitBreaker creates a circuit breaker with the given config
func NewCircuitBreaker(config CircuitBreakerConfig, logger *logrus.Logger) *CircuitBreaker {
	if config.MaxFailureCount <= 0 {
		config.MaxFailureCount = 5
	}
	if config.FailureTimeWindow <= 0 {
		config.FailureTimeWindow = time.Minute
	}
	if config.CooldownPeriod <= 0 {
		config.CooldownPeriod = 2 * time.Minute
	}
	return &CircuitBreaker{
		config: config,
		state:  CircuitClosed,
		logger: logger,
	}
}

// Allow reports whether a bot call may proceed. An open circuit moves
// to half-open once the cooldown has elapsed, letting one probe through.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed, CircuitHalfOpen:
		return true
	case CircuitOpen:
		if time.Since(cb.openedAt) >= cb.config.CooldownPeriod {
			cb.state = CircuitHalfOpen
			cb.logger.Info("Bot circuit entering half-open state")
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets failure tracking and closes the circuit
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitClosed {
		cb.logger.WithField("previous_state", cb.state.String()).Info("Bot circuit closed")
	}
	cb.state = CircuitClosed
	cb.failureCount = 0
}

// RecordFailure tracks an endpoint failure and opens the circuit when
// the threshold is crossed inside the failure window
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()

	// A failed half-open probe reopens immediately.
	if cb.state == CircuitHalfOpen {
		cb.openLocked(now)
		return
	}

	if now.Sub(cb.lastFailureTime) > cb.config.FailureTimeWindow {
		cb.failureCount = 0
	}
	cb.failureCount++
	cb.lastFailureTime = now

	cb.logger.WithFields(logrus.Fields{
		"failure_count": cb.failureCount,
		"max_allowed":   cb.config.MaxFailureCount,
	}).Warn("Bot call failure recorded")

	if cb.failureCount >= cb.config.MaxFailureCount {
		cb.openLocked(now)
	}
}

// State returns the current circuit state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) openLocked(now time.Time) {
	cb.state = CircuitOpen
	cb.openedAt = now
	cb.failureCount = 0
	BotCircuitOpenTotal.Inc()
	cb.logger.WithField("cooldown", cb.config.CooldownPeriod).Error("Bot circuit opened")
}
