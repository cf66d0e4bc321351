package toggler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "instance-scheduler/toggler"

// Toggler starts or stops a single configured instance.
type Toggler struct {
	provider   Provider
	instanceID string
	recorder   Recorder
	lg         zerolog.Logger
}

// Option customises a Toggler.
type Option func(*Toggler)

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(t *Toggler) { t.recorder = r }
}

func New(provider Provider, instanceID string, lg zerolog.Logger, opts ...Option) *Toggler {
	t := &Toggler{
		provider:   provider,
		instanceID: instanceID,
		lg:         lg.With().Str("component", "toggler").Str("instance_id", instanceID).Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Toggle dispatches the event's action to the provider. The error is one of
// *ConfigError, *InvalidActionError or *ProviderError.
func (t *Toggler) Toggle(ctx context.Context, ev Event) (out Outcome, err error) {
	action := ev.ResolvedAction()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "toggler.toggle")
	span.SetAttributes(
		attribute.String("instance.id", t.instanceID),
		attribute.String("instance.action", string(action)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if t.instanceID == "" {
		return Outcome{}, &ConfigError{Err: ErrMissingInstanceID}
	}
	if t.provider == nil {
		return Outcome{}, &ConfigError{Err: errors.New("no provider configured")}
	}

	var call func(context.Context, string) (any, error)
	switch action {
	case ActionStart:
		call = t.provider.StartInstance
	case ActionStop:
		call = t.provider.StopInstance
	default:
		return Outcome{}, &InvalidActionError{Action: action}
	}

	t.lg.Info().Str("action", string(action)).Msgf("%s instance %s", capitalize(action.Progressive()), t.instanceID)

	payload, err := t.invoke(ctx, call)
	if err != nil {
		return Outcome{}, &ProviderError{Action: action, Err: err}
	}
	return Outcome{Action: action, InstanceID: t.instanceID, Payload: payload}, nil
}

// invoke calls the provider, turning a panic into an error.
func (t *Toggler) invoke(ctx context.Context, call func(context.Context, string) (any, error)) (payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return call(ctx, t.instanceID)
}

// Handle runs one invocation and always returns a Response.
func (t *Toggler) Handle(ctx context.Context, ev Event) Response {
	start := time.Now()
	action := ev.ResolvedAction()

	out, err := t.Toggle(ctx, ev)
	t.observe(action, err, start)
	if err != nil {
		return t.failure(action, err)
	}

	return newResponse(http.StatusOK, ResponseBody{
		Message:  fmt.Sprintf("Successfully %s instance %s", out.Action.PastTense(), out.InstanceID),
		Response: out.Payload,
	})
}

// HandleRaw decodes a raw payload and handles it. Undecodable payloads are
// reported under the default action.
func (t *Toggler) HandleRaw(ctx context.Context, raw []byte) Response {
	ev, err := ParseEvent(raw)
	if err != nil {
		t.observe(DefaultAction, err, time.Now())
		return t.failure(DefaultAction, err)
	}
	return t.Handle(ctx, ev)
}

func (t *Toggler) failure(action Action, err error) Response {
	t.lg.Error().Err(err).Str("action", string(action)).Msg("toggle failed")
	return newResponse(http.StatusInternalServerError, ResponseBody{
		Message: fmt.Sprintf("Error %s instance %s: %s", action.Progressive(), t.instanceID, err.Error()),
	})
}

func (t *Toggler) observe(action Action, err error, start time.Time) {
	if t.recorder == nil {
		return
	}
	t.recorder.Observe(action, outcomeOf(err), time.Since(start).Seconds())
}

func newResponse(status int, body ResponseBody) Response {
	b, err := json.Marshal(body)
	if err != nil {
		// Provider payloads are SDK structs; fall back to the message alone.
		b, _ = json.Marshal(ResponseBody{Message: body.Message})
	}
	return Response{StatusCode: status, Body: string(b)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}
