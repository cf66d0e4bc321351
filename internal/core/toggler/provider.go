package toggler

import "context"

// Provider is the compute control plane the toggler drives. The returned
// payload is opaque and is embedded as-is in the success response.
type Provider interface {
	StartInstance(ctx context.Context, instanceID string) (any, error)
	StopInstance(ctx context.Context, instanceID string) (any, error)
}

// Recorder observes the result of each invocation.
type Recorder interface {
	Observe(action Action, outcome string, seconds float64)
}

const (
	OutcomeSuccess       = "success"
	OutcomeInvalidAction = "invalid_action"
	OutcomeInvalidEvent  = "invalid_event"
	OutcomeProviderError = "provider_error"
	OutcomeConfigError   = "config_error"
)
