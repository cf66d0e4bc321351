package gce

import (
	"context"
	"fmt"
	"strings"

	"instance-scheduler/internal/config"

	compute "cloud.google.com/go/compute/apiv1"
	computepb "cloud.google.com/go/compute/apiv1/computepb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// API is the subset of the Compute Engine instances client used here.
type API interface {
	Start(ctx context.Context, req *computepb.StartInstanceRequest) (Operation, error)
	Stop(ctx context.Context, req *computepb.StopInstanceRequest) (Operation, error)
	Close() error
}

// Operation is a pending zonal operation.
type Operation interface {
	Name() string
	Wait(ctx context.Context) error
}

// Client starts and stops Compute Engine instances.
type Client struct {
	api         API
	projectID   string
	defaultZone string
	lg          zerolog.Logger
}

// New creates a REST instances client. Without a credentials file the
// application default credentials are used.
func New(ctx context.Context, cfg config.Config, lg zerolog.Logger) (*Client, error) {
	if cfg.GCEProjectID == "" {
		return nil, fmt.Errorf("GCE_PROJECT_ID is required for the gce provider")
	}

	var opts []option.ClientOption
	if cfg.GCECredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCECredentialsFile))
	}
	client, err := compute.NewInstancesRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GCE client: %w", err)
	}

	c := NewWithAPI(&restAPI{client: client}, cfg, lg)
	c.lg.Info().Str("project", c.projectID).Str("zone", c.defaultZone).Msg("initialized GCE client")
	return c, nil
}

func NewWithAPI(api API, cfg config.Config, lg zerolog.Logger) *Client {
	return &Client{
		api:         api,
		projectID:   cfg.GCEProjectID,
		defaultZone: cfg.GCEZone,
		lg:          lg.With().Str("adapter", "gce").Logger(),
	}
}

func (c *Client) StartInstance(ctx context.Context, instanceID string) (any, error) {
	zone, name, err := parseTarget(instanceID, c.defaultZone)
	if err != nil {
		return nil, err
	}

	op, err := c.api.Start(ctx, &computepb.StartInstanceRequest{
		Instance: name,
		Project:  c.projectID,
		Zone:     zone,
	})
	if err != nil {
		return nil, fmt.Errorf("starting instance: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for start operation: %w", err)
	}
	return operationPayload(op, zone, name), nil
}

func (c *Client) StopInstance(ctx context.Context, instanceID string) (any, error) {
	zone, name, err := parseTarget(instanceID, c.defaultZone)
	if err != nil {
		return nil, err
	}

	op, err := c.api.Stop(ctx, &computepb.StopInstanceRequest{
		Instance: name,
		Project:  c.projectID,
		Zone:     zone,
	})
	if err != nil {
		return nil, fmt.Errorf("stopping instance: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for stop operation: %w", err)
	}
	return operationPayload(op, zone, name), nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.api.Close()
}

// operationPayload describes a completed operation.
func operationPayload(op Operation, zone, name string) map[string]string {
	return map[string]string{
		"operation": op.Name(),
		"zone":      zone,
		"instance":  name,
	}
}

// parseTarget splits "zone/name" identifiers; a bare name uses defaultZone.
func parseTarget(instanceID, defaultZone string) (zone, name string, err error) {
	zone, name = defaultZone, instanceID
	if i := strings.LastIndex(instanceID, "/"); i >= 0 {
		zone, name = instanceID[:i], instanceID[i+1:]
	}
	if name == "" {
		return "", "", fmt.Errorf("instance name is empty in %q", instanceID)
	}
	if zone == "" {
		return "", "", fmt.Errorf("no zone for instance %q: set GCE_ZONE or use zone/name", instanceID)
	}
	return zone, name, nil
}

// restAPI adapts *compute.InstancesClient to API.
type restAPI struct {
	client *compute.InstancesClient
}

func (r *restAPI) Start(ctx context.Context, req *computepb.StartInstanceRequest) (Operation, error) {
	op, err := r.client.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	return &restOperation{op: op}, nil
}

func (r *restAPI) Stop(ctx context.Context, req *computepb.StopInstanceRequest) (Operation, error) {
	op, err := r.client.Stop(ctx, req)
	if err != nil {
		return nil, err
	}
	return &restOperation{op: op}, nil
}

func (r *restAPI) Close() error {
	return r.client.Close()
}

type restOperation struct {
	op *compute.Operation
}

func (o *restOperation) Name() string { return o.op.Name() }

func (o *restOperation) Wait(ctx context.Context) error { return o.op.Wait(ctx) }
