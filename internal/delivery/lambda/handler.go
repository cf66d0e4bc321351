package lambda

import (
	"context"
	"encoding/json"

	"instance-scheduler/internal/core/toggler"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	tg *toggler.Toggler
	lg zerolog.Logger
}

func NewHandler(tg *toggler.Toggler, lg zerolog.Logger) *Handler {
	return &Handler{tg: tg, lg: lg.With().Str("delivery", "lambda").Logger()}
}

// Invoke handles one Lambda invocation. The error is always nil: failures are
// reported through the response status code.
func (h *Handler) Invoke(ctx context.Context, payload json.RawMessage) (toggler.Response, error) {
	requestID := uuid.NewString()
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		requestID = lc.AwsRequestID
	}
	lg := h.lg.With().Str("aws_request_id", requestID).Logger()

	lg.Debug().RawJSON("event", compact(payload)).Msg("invocation received")
	resp := h.tg.HandleRaw(ctx, payload)
	lg.Info().Int("status_code", resp.StatusCode).Msg("invocation finished")
	return resp, nil
}

// Serve blocks, handing invocations from the Lambda runtime to h.
func Serve(h *Handler) {
	awslambda.Start(h.Invoke)
}

// compact returns payload if it is valid JSON, otherwise a JSON string of it,
// so the log line stays parseable.
func compact(payload json.RawMessage) []byte {
	if len(payload) == 0 {
		return []byte("null")
	}
	if json.Valid(payload) {
		return payload
	}
	b, _ := json.Marshal(string(payload))
	return b
}
