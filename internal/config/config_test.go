package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every variable Load reads so the host environment does not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "INSTANCE_ID", "PROVIDER", "RUNTIME_MODE", "LISTEN_ADDR", "LOG_LEVEL",
		"AWS_REGION", "GCE_PROJECT_ID", "GCE_ZONE", "GCE_CREDENTIALS_FILE", "DOCKER_STOP_TIMEOUT",
		"K8S_NAMESPACE", "K8S_REPLICAS", "KUBECONFIG", "TRACING_EXPORTER", "TRACING_ENDPOINT",
		"AWS_LAMBDA_RUNTIME_API",
	} {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderEC2 {
		t.Errorf("expected provider ec2, got %s", cfg.Provider)
	}
	if cfg.RuntimeMode != ModeLambda {
		t.Errorf("expected lambda mode, got %s", cfg.RuntimeMode)
	}
	if cfg.InstanceID != "" {
		t.Errorf("expected empty instance id, got %q", cfg.InstanceID)
	}
	if cfg.K8sReplicas != 1 {
		t.Errorf("expected 1 replica, got %d", cfg.K8sReplicas)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("INSTANCE_ID", " i-0123 ")
	t.Setenv("PROVIDER", "Docker")
	t.Setenv("RUNTIME_MODE", "http")
	t.Setenv("DOCKER_STOP_TIMEOUT", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstanceID != "i-0123" {
		t.Errorf("expected instance id i-0123, got %q", cfg.InstanceID)
	}
	if cfg.Provider != ProviderDocker {
		t.Errorf("expected provider docker, got %s", cfg.Provider)
	}
	if cfg.RuntimeMode != ModeHTTP {
		t.Errorf("expected http mode, got %s", cfg.RuntimeMode)
	}
	if cfg.DockerStopTimeout != 30 {
		t.Errorf("expected stop timeout 30, got %d", cfg.DockerStopTimeout)
	}
}

func TestLambdaRuntimeForcesLambdaMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("RUNTIME_MODE", "http")
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RuntimeMode != ModeLambda {
		t.Errorf("expected lambda mode inside the Lambda runtime, got %s", cfg.RuntimeMode)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "scheduler.yaml")
	data := []byte("instance_id: i-from-file\nprovider: gce\ngce_project_id: proj\ngce_zone: europe-west1-b\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GCE_ZONE", "us-central1-a")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstanceID != "i-from-file" {
		t.Errorf("expected instance id from file, got %q", cfg.InstanceID)
	}
	if cfg.Provider != ProviderGCE {
		t.Errorf("expected provider gce, got %s", cfg.Provider)
	}
	if cfg.GCEProjectID != "proj" {
		t.Errorf("expected project proj, got %q", cfg.GCEProjectID)
	}
	if cfg.GCEZone != "us-central1-a" {
		t.Errorf("expected env to override zone, got %q", cfg.GCEZone)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr, got %q", cfg.ListenAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PROVIDER", "azure"},
		{"K8S_REPLICAS", "zero"},
		{"K8S_REPLICAS", "0"},
		{"K8S_REPLICAS", "4294967297"},
		{"RUNTIME_MODE", "htpp"},
		{"DOCKER_STOP_TIMEOUT", "soon"},
		{"CONFIG_FILE", "/does/not/exist.yaml"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}
