package lambda

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog"

	"instance-scheduler/internal/core/toggler"
)

type stubProvider struct {
	started, stopped int
}

func (s *stubProvider) StartInstance(ctx context.Context, id string) (any, error) {
	s.started++
	return map[string]string{"id": id}, nil
}

func (s *stubProvider) StopInstance(ctx context.Context, id string) (any, error) {
	s.stopped++
	return map[string]string{"id": id}, nil
}

func TestInvokeScheduledStop(t *testing.T) {
	p := &stubProvider{}
	h := NewHandler(toggler.New(p, "i-0123", zerolog.New(io.Discard)), zerolog.New(io.Discard))

	resp, err := h.Invoke(context.Background(), json.RawMessage(`{"action":"stop"}`))
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if resp.StatusCode != 200 || p.stopped != 1 {
		t.Errorf("expected one successful stop, got status %d and %d stops", resp.StatusCode, p.stopped)
	}
}

func TestInvokeNeverReturnsError(t *testing.T) {
	h := NewHandler(toggler.New(&stubProvider{}, "i-0123", zerolog.New(io.Discard)), zerolog.New(io.Discard))

	for _, raw := range []string{`{"action":"pause"}`, `garbage`, ``} {
		if _, err := h.Invoke(context.Background(), json.RawMessage(raw)); err != nil {
			t.Errorf("%q: expected nil error, got %v", raw, err)
		}
	}
}

func TestInvokeLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(toggler.New(&stubProvider{}, "i-0123", zerolog.New(io.Discard)), zerolog.New(&buf))

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-42"})
	if _, err := h.Invoke(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"aws_request_id":"req-42"`) {
		t.Errorf("expected request id in log, got %q", buf.String())
	}
}

func TestCompact(t *testing.T) {
	if got := string(compact(nil)); got != "null" {
		t.Errorf("empty payload: got %q", got)
	}
	if got := string(compact(json.RawMessage(`{"a":1}`))); got != `{"a":1}` {
		t.Errorf("valid payload: got %q", got)
	}
	if got := string(compact(json.RawMessage(`not json`))); got != `"not json"` {
		t.Errorf("invalid payload: got %q", got)
	}
}
