package kubernetes

import (
	"context"
	"fmt"
	"strings"

	"instance-scheduler/internal/config"

	"github.com/rs/zerolog"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client treats a Deployment as the instance: start scales it up to the
// configured replica count, stop scales it to zero.
type Client struct {
	clientset kubernetes.Interface
	lg        zerolog.Logger
	namespace string
	replicas  int32
}

func New(cfg config.Config, lg zerolog.Logger) (*Client, error) {
	var (
		restCfg *rest.Config
		err     error
	)
	if cfg.K8sKubeconfig != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.K8sKubeconfig)
	} else {
		restCfg, err = rest.InClusterConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes config: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	return NewWithClientset(clientset, cfg, lg), nil
}

func NewWithClientset(clientset kubernetes.Interface, cfg config.Config, lg zerolog.Logger) *Client {
	replicas := cfg.K8sReplicas
	if replicas < 1 {
		replicas = 1
	}
	namespace := cfg.K8sNamespace
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return &Client{
		clientset: clientset,
		lg:        lg.With().Str("adapter", "kubernetes").Logger(),
		namespace: namespace,
		replicas:  replicas,
	}
}

func (c *Client) StartInstance(ctx context.Context, instanceID string) (any, error) {
	return c.scale(ctx, instanceID, c.replicas)
}

func (c *Client) StopInstance(ctx context.Context, instanceID string) (any, error) {
	return c.scale(ctx, instanceID, 0)
}

func (c *Client) scale(ctx context.Context, instanceID string, replicas int32) (map[string]any, error) {
	namespace, name := c.parseTarget(instanceID)

	deployments := c.clientset.AppsV1().Deployments(namespace)
	deployment, err := deployments.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, fmt.Errorf("deployment %s/%s not found", namespace, name)
		}
		return nil, fmt.Errorf("failed to get deployment: %w", err)
	}

	previous := int32(1)
	if deployment.Spec.Replicas != nil {
		previous = *deployment.Spec.Replicas
	}
	deployment.Spec.Replicas = int32Ptr(replicas)

	if _, err := deployments.Update(ctx, deployment, metav1.UpdateOptions{}); err != nil {
		return nil, fmt.Errorf("failed to scale deployment: %w", err)
	}

	c.lg.Info().
		Str("deployment", namespace+"/"+name).
		Int32("previous_replicas", previous).
		Int32("replicas", replicas).
		Msg("scaled kubernetes deployment")

	return map[string]any{
		"deployment":       namespace + "/" + name,
		"replicas":         replicas,
		"previousReplicas": previous,
	}, nil
}

// parseTarget splits "namespace/name"; a bare name uses the configured namespace.
func (c *Client) parseTarget(instanceID string) (namespace, name string) {
	if ns, n, ok := strings.Cut(instanceID, "/"); ok {
		return ns, n
	}
	return c.namespace, instanceID
}

func int32Ptr(i int32) *int32 { return &i }
