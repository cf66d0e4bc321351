package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"instance-scheduler/internal/adapters/docker"
	"instance-scheduler/internal/adapters/ec2"
	"instance-scheduler/internal/adapters/gce"
	"instance-scheduler/internal/adapters/kubernetes"
	"instance-scheduler/internal/config"
	"instance-scheduler/internal/core/toggler"
	api "instance-scheduler/internal/delivery/http"
	lambda "instance-scheduler/internal/delivery/lambda"
	"instance-scheduler/internal/observability"

	_ "instance-scheduler/docs"

	"github.com/rs/zerolog"
)

// @title           Instance Scheduler API
// @version         1.0
// @description     Starts or stops the configured compute instance on demand.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg := config.MustLoad()
	log := observability.NewLogger(os.Stdout, "instance-scheduler", cfg.LogLevel)

	log.Info().
		Str("provider", string(cfg.Provider)).
		Str("runtime_mode", string(cfg.RuntimeMode)).
		Str("instance_id", cfg.InstanceID).
		Msg("bootstrapping service")

	if cfg.InstanceID == "" {
		log.Warn().Msg("INSTANCE_ID is not set; every invocation will fail")
	}

	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: "instance-scheduler",
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.TracingEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("tracing init")
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	provider, closeProvider := newProvider(ctx, cfg, log)
	defer closeProvider()

	metrics := observability.NewMetrics()
	tg := toggler.New(provider, cfg.InstanceID, log, toggler.WithRecorder(metrics))

	if cfg.RuntimeMode == config.ModeLambda {
		lambda.Serve(lambda.NewHandler(tg, log))
		return
	}

	handler := api.NewHandler(tg, metrics.Handler(), log)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("listen", cfg.ListenAddr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server...")
	_ = srv.Shutdown(context.Background())
	log.Info().Msg("shutdown complete")
}

// newProvider builds the configured control-plane adapter. Initialisation
// failures are fatal: without a client no invocation can succeed.
func newProvider(ctx context.Context, cfg config.Config, log zerolog.Logger) (toggler.Provider, func()) {
	noop := func() {}

	switch cfg.Provider {
	case config.ProviderGCE:
		cli, err := gce.New(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("gce client init")
		}
		return cli, func() {
			if err := cli.Close(); err != nil {
				log.Error().Err(err).Msg("gce client close")
			}
		}
	case config.ProviderDocker:
		cli, err := docker.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("docker client init")
		}
		return cli, noop
	case config.ProviderKubernetes:
		cli, err := kubernetes.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("kubernetes client init")
		}
		return cli, noop
	default:
		cli, err := ec2.New(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("ec2 client init")
		}
		return cli, noop
	}
}
