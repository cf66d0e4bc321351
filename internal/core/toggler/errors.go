package toggler

import (
	"errors"
	"fmt"
)

// ErrMissingInstanceID is wrapped by ConfigError when no target is configured.
var ErrMissingInstanceID = errors.New("missing instance identifier (INSTANCE_ID)")

// InvalidActionError is returned for actions other than start and stop.
type InvalidActionError struct {
	Action Action
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("Invalid action: %s", e.Action)
}

// InvalidEventError is returned when the payload cannot be decoded.
type InvalidEventError struct {
	Err error
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid event: %v", e.Err)
}

func (e *InvalidEventError) Unwrap() error { return e.Err }

// ProviderError wraps a failed start or stop call.
type ProviderError struct {
	Action Action
	Err    error
}

func (e *ProviderError) Error() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ConfigError reports a toggler that cannot act because it is misconfigured.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// outcomeOf maps an error to the label used by Recorder.
func outcomeOf(err error) string {
	var (
		invalidAction *InvalidActionError
		invalidEvent  *InvalidEventError
		configErr     *ConfigError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &invalidAction):
		return OutcomeInvalidAction
	case errors.As(err, &invalidEvent):
		return OutcomeInvalidEvent
	case errors.As(err, &configErr):
		return OutcomeConfigError
	default:
		return OutcomeProviderError
	}
}
