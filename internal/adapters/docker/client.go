package docker

import (
	"context"
	"fmt"

	"instance-scheduler/internal/config"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/rs/zerolog"
)

// API is the subset of the Docker Engine client used here.
type API interface {
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
}

// Client treats a container as the instance to start and stop.
type Client struct {
	cli         API
	lg          zerolog.Logger
	stopTimeout *int
}

func New(cfg config.Config, lg zerolog.Logger) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return NewWithAPI(cli, cfg, lg), nil
}

func NewWithAPI(cli API, cfg config.Config, lg zerolog.Logger) *Client {
	c := &Client{cli: cli, lg: lg.With().Str("adapter", "docker").Logger()}
	if cfg.DockerStopTimeout > 0 {
		timeout := cfg.DockerStopTimeout
		c.stopTimeout = &timeout
	}
	return c
}

func (c *Client) StartInstance(ctx context.Context, containerID string) (any, error) {
	if err := c.cli.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("docker start: %w", err)
	}
	return c.describe(ctx, containerID), nil
}

func (c *Client) StopInstance(ctx context.Context, containerID string) (any, error) {
	if err := c.cli.ContainerStop(ctx, containerID, container.StopOptions{Timeout: c.stopTimeout}); err != nil {
		return nil, fmt.Errorf("docker stop: %w", err)
	}
	return c.describe(ctx, containerID), nil
}

// describe inspects the container after a toggle. The toggle has already
// succeeded, so an inspect failure only drops the state from the payload.
func (c *Client) describe(ctx context.Context, containerID string) map[string]string {
	payload := map[string]string{"container": containerID}

	inspect, err := c.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		c.lg.Warn().Err(err).Str("container_id", containerID).Msg("docker inspect after toggle failed")
		return payload
	}
	if inspect.ContainerJSONBase != nil {
		payload["container"] = inspect.ID
		if inspect.State != nil {
			payload["state"] = string(inspect.State.Status)
		}
	}

	c.lg.Info().
		Str("container_id", payload["container"]).
		Str("state", payload["state"]).
		Msg("container state after toggle")
	return payload
}
