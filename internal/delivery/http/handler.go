package http

import (
	"encoding/json"
	"io"
	"net/http"

	"instance-scheduler/internal/core/toggler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxEventBytes = 1 << 20

type Handler struct {
	tg *toggler.Toggler
	lg zerolog.Logger
}

// NewHandler exposes the toggler over HTTP. metrics may be nil.
func NewHandler(tg *toggler.Toggler, metrics http.Handler, lg zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &Handler{tg: tg, lg: lg.With().Str("delivery", "http").Logger()}

	r.Post("/invoke", h.handleInvoke)
	r.Post("/start", h.handleAction(toggler.ActionStart))
	r.Post("/stop", h.handleAction(toggler.ActionStop))
	r.Get("/healthz", h.handleHealth)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// handleInvoke runs the toggler with the request body as invocation event.
//
//	@Summary	Toggle the configured instance
//	@Accept		json
//	@Produce	json
//	@Param		event	body		toggler.Event	false	"Invocation event; action defaults to start"
//	@Success	200		{object}	toggler.Response
//	@Failure	500		{object}	toggler.Response
//	@Router		/invoke [post]
func (h *Handler) handleInvoke(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		http.Error(w, `{"error": "could not read body"}`, http.StatusBadRequest)
		return
	}
	h.respond(w, r, h.tg.HandleRaw(r.Context(), raw))
}

// handleAction runs a fixed action, ignoring the request body.
//
//	@Summary	Start or stop the configured instance
//	@Produce	json
//	@Success	200	{object}	toggler.Response
//	@Failure	500	{object}	toggler.Response
//	@Router		/start [post]
//	@Router		/stop [post]
func (h *Handler) handleAction(action toggler.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, h.tg.Handle(r.Context(), toggler.EventFor(action)))
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, resp toggler.Response) {
	h.lg.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("status_code", resp.StatusCode).
		Msg("invocation finished")
	writeJSON(w, resp.StatusCode, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
