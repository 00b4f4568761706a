package service

import "errors"

// ErrNoCircuitBreaker is returned when resetting a provider that has no breaker.
var ErrNoCircuitBreaker = errors.New("scorer has no circuit breaker")

// StatusReporter reports the state of the configured scoring provider.
type StatusReporter interface {
	Status() ProviderStatus
}

// BreakerResetter is implemented by providers guarded by a circuit breaker.
type BreakerResetter interface {
	ResetCircuitBreaker()
}

// StaticStatus reports a fixed status, used when no remote provider is running.
type StaticStatus ProviderStatus

func (s StaticStatus) Status() ProviderStatus {
	return ProviderStatus(s)
}
