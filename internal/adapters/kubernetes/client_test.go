package kubernetes

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"instance-scheduler/internal/config"
	"instance-scheduler/internal/core/toggler"
)

var _ toggler.Provider = (*Client)(nil)

func newDeployment(namespace, name string, replicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       appsv1.DeploymentSpec{Replicas: int32Ptr(replicas)},
	}
}

func replicasOf(t *testing.T, c *Client, namespace, name string) int32 {
	t.Helper()
	d, err := c.clientset.AppsV1().Deployments(namespace).Get(context.Background(), name, metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get deployment: %v", err)
	}
	return *d.Spec.Replicas
}

func TestStopThenStartDeployment(t *testing.T) {
	cs := fake.NewSimpleClientset(newDeployment("workers", "batch", 3))
	c := NewWithClientset(cs, config.Config{K8sNamespace: "workers", K8sReplicas: 2}, zerolog.New(io.Discard))

	payload, err := c.StopInstance(context.Background(), "batch")
	if err != nil {
		t.Fatalf("StopInstance: %v", err)
	}
	if got := replicasOf(t, c, "workers", "batch"); got != 0 {
		t.Errorf("expected 0 replicas after stop, got %d", got)
	}
	if prev := payload.(map[string]any)["previousReplicas"]; prev != int32(3) {
		t.Errorf("expected previous replicas 3, got %v", prev)
	}

	if _, err := c.StartInstance(context.Background(), "batch"); err != nil {
		t.Fatalf("StartInstance: %v", err)
	}
	if got := replicasOf(t, c, "workers", "batch"); got != 2 {
		t.Errorf("expected 2 replicas after start, got %d", got)
	}
}

func TestNamespacedTarget(t *testing.T) {
	cs := fake.NewSimpleClientset(newDeployment("staging", "api", 1))
	c := NewWithClientset(cs, config.Config{}, zerolog.New(io.Discard))

	payload, err := c.StopInstance(context.Background(), "staging/api")
	if err != nil {
		t.Fatalf("StopInstance: %v", err)
	}
	if got := payload.(map[string]any)["deployment"]; got != "staging/api" {
		t.Errorf("expected deployment staging/api, got %v", got)
	}
}

func TestMissingDeployment(t *testing.T) {
	c := NewWithClientset(fake.NewSimpleClientset(), config.Config{}, zerolog.New(io.Discard))

	_, err := c.StartInstance(context.Background(), "ghost")
	if err == nil || !strings.Contains(err.Error(), "default/ghost not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
