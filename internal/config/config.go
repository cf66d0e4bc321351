package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProviderType defines the supported compute control planes.
type ProviderType string

const (
	ProviderEC2        ProviderType = "ec2"
	ProviderGCE        ProviderType = "gce"
	ProviderDocker     ProviderType = "docker"
	ProviderKubernetes ProviderType = "kubernetes"
)

// RuntimeModeType defines how invocations reach the process.
type RuntimeModeType string

const (
	ModeLambda RuntimeModeType = "lambda"
	ModeHTTP   RuntimeModeType = "http"
)

// Config holds all the configuration for the application.
type Config struct {
	InstanceID  string          `yaml:"instance_id"`
	Provider    ProviderType    `yaml:"provider"`
	RuntimeMode RuntimeModeType `yaml:"runtime_mode"`
	ListenAddr  string          `yaml:"listen_addr"`
	LogLevel    string          `yaml:"log_level"`

	AWSRegion string `yaml:"aws_region"` // empty means the SDK default chain

	GCEProjectID       string `yaml:"gce_project_id"`
	GCEZone            string `yaml:"gce_zone"`
	GCECredentialsFile string `yaml:"gce_credentials_file"`

	DockerStopTimeout int `yaml:"docker_stop_timeout"` // seconds, 0 means engine default

	K8sNamespace  string `yaml:"k8s_namespace"`
	K8sReplicas   int32  `yaml:"k8s_replicas"`
	K8sKubeconfig string `yaml:"k8s_kubeconfig"`

	TracingExporter string `yaml:"tracing_exporter"`
	TracingEndpoint string `yaml:"tracing_endpoint"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Provider:        ProviderEC2,
		RuntimeMode:     ModeLambda,
		ListenAddr:      ":8080",
		LogLevel:        "info",
		K8sNamespace:    "default",
		K8sReplicas:     1,
		TracingExporter: "none",
	}
}

// MustLoad loads configuration and panics if it is unusable.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// Load reads CONFIG_FILE (if set) and then applies environment variables on
// top of it. A missing INSTANCE_ID is not an error here; the toggler reports
// it per invocation.
func Load() (Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.InstanceID = strings.TrimSpace(getenv("INSTANCE_ID", cfg.InstanceID))
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.AWSRegion = getenv("AWS_REGION", cfg.AWSRegion)
	cfg.GCEProjectID = getenv("GCE_PROJECT_ID", cfg.GCEProjectID)
	cfg.GCEZone = getenv("GCE_ZONE", cfg.GCEZone)
	cfg.GCECredentialsFile = getenv("GCE_CREDENTIALS_FILE", cfg.GCECredentialsFile)
	cfg.K8sNamespace = getenv("K8S_NAMESPACE", cfg.K8sNamespace)
	cfg.K8sKubeconfig = getenv("KUBECONFIG", cfg.K8sKubeconfig)
	cfg.TracingExporter = getenv("TRACING_EXPORTER", cfg.TracingExporter)
	cfg.TracingEndpoint = getenv("TRACING_ENDPOINT", cfg.TracingEndpoint)

	var err error
	if cfg.DockerStopTimeout, err = getenvInt("DOCKER_STOP_TIMEOUT", cfg.DockerStopTimeout); err != nil {
		return Config{}, err
	}
	if cfg.K8sReplicas, err = getenvInt32("K8S_REPLICAS", cfg.K8sReplicas); err != nil {
		return Config{}, err
	}

	switch p := ProviderType(strings.ToLower(getenv("PROVIDER", string(cfg.Provider)))); p {
	case ProviderEC2, ProviderGCE, ProviderDocker, ProviderKubernetes:
		cfg.Provider = p
	default:
		return Config{}, fmt.Errorf("unsupported PROVIDER %q", p)
	}

	switch m := RuntimeModeType(strings.ToLower(getenv("RUNTIME_MODE", string(cfg.RuntimeMode)))); m {
	case ModeLambda, ModeHTTP:
		cfg.RuntimeMode = m
	default:
		return Config{}, fmt.Errorf("unsupported RUNTIME_MODE %q", m)
	}
	// The Lambda runtime always sets this; nothing else would deliver events.
	if _, ok := os.LookupEnv("AWS_LAMBDA_RUNTIME_API"); ok {
		cfg.RuntimeMode = ModeLambda
	}

	if cfg.K8sReplicas < 1 {
		return Config{}, fmt.Errorf("K8S_REPLICAS must be at least 1, got %d", cfg.K8sReplicas)
	}

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getenvInt32(key string, fallback int32) (int32, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return int32(n), nil
}
