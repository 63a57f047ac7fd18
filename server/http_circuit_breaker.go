package server

import (
	"sync"
	"time"
)

// HTTPCircuitBreakerState is the breaker state for outbound HTTP clients.
type HTTPCircuitBreakerState int

const (
	HTTPStateClosed   HTTPCircuitBreakerState = iota // normal operation
	HTTPStateOpen                                    // requests blocked
	HTTPStateHalfOpen                                // probing recovery
)

// HTTPCircuitBreaker protects the registry client from hammering an
// upstream that is already failing.
type HTTPCircuitBreaker struct {
	mu               sync.Mutex
	state            HTTPCircuitBreakerState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	timeout          time.Duration
	lastFailureTime  time.Time
}

// NewHTTPCircuitBreaker creates a breaker that opens after 5 consecutive
// failures and probes recovery after 30 seconds.
func NewHTTPCircuitBreaker() *HTTPCircuitBreaker {
	return &HTTPCircuitBreaker{
		state:            HTTPStateClosed,
		failureThreshold: 5,
		successThreshold: 2,
		timeout:          30 * time.Second,
	}
}

// CanProceed reports whether a request may be attempted.
func (cb *HTTPCircuitBreaker) CanProceed() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case HTTPStateClosed:
		return true
	case HTTPStateOpen:
		if time.Since(cb.lastFailureTime) > cb.timeout {
			cb.state = HTTPStateHalfOpen
			cb.successCount = 0
			return true
		}
		return false
	case HTTPStateHalfOpen:
		return true
	default:
		return false
	}
}

// RecordSuccess records a successful request.
func (cb *HTTPCircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case HTTPStateClosed:
		cb.failureCount = 0
	case HTTPStateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = HTTPStateClosed
			cb.failureCount = 0
			cb.successCount = 0
		}
	}
}

// RecordFailure records a failed request.
func (cb *HTTPCircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = time.Now()

	switch cb.state {
	case HTTPStateClosed:
		cb.failureCount++
		if cb.failureCount >= cb.failureThreshold {
			cb.state = HTTPStateOpen
		}
	case HTTPStateHalfOpen:
		// Probe failed, back to open
		cb.state = HTTPStateOpen
		cb.successCount = 0
	}
}

// State returns the current breaker state.
func (cb *HTTPCircuitBreaker) State() HTTPCircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
