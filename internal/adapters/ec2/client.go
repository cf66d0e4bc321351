package ec2

import (
	"context"
	"fmt"

	"instance-scheduler/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
)

// API is the subset of the EC2 client used here.
type API interface {
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

type Client struct {
	api API
	lg  zerolog.Logger
}

// StateChange mirrors the EC2 InstanceStateChange shape returned to callers.
type StateChange struct {
	InstanceID    string        `json:"InstanceId"`
	CurrentState  InstanceState `json:"CurrentState"`
	PreviousState InstanceState `json:"PreviousState"`
}

type InstanceState struct {
	Code int32  `json:"Code"`
	Name string `json:"Name"`
}

// New builds a client from the default AWS credential chain.
func New(ctx context.Context, cfg config.Config, lg zerolog.Logger) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := NewWithAPI(ec2.NewFromConfig(awsCfg), lg)
	c.lg.Info().Str("region", awsCfg.Region).Msg("initialized EC2 client")
	return c, nil
}

func NewWithAPI(api API, lg zerolog.Logger) *Client {
	return &Client{api: api, lg: lg.With().Str("adapter", "ec2").Logger()}
}

func (c *Client) StartInstance(ctx context.Context, instanceID string) (any, error) {
	out, err := c.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("start instances: %w", err)
	}
	c.lg.Debug().Str("instance_id", instanceID).Int("changes", len(out.StartingInstances)).Msg("start accepted")
	return map[string][]StateChange{"StartingInstances": stateChanges(out.StartingInstances)}, nil
}

func (c *Client) StopInstance(ctx context.Context, instanceID string) (any, error) {
	out, err := c.api.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, fmt.Errorf("stop instances: %w", err)
	}
	c.lg.Debug().Str("instance_id", instanceID).Int("changes", len(out.StoppingInstances)).Msg("stop accepted")
	return map[string][]StateChange{"StoppingInstances": stateChanges(out.StoppingInstances)}, nil
}

func stateChanges(in []types.InstanceStateChange) []StateChange {
	out := make([]StateChange, 0, len(in))
	for _, sc := range in {
		out = append(out, StateChange{
			InstanceID:    aws.ToString(sc.InstanceId),
			CurrentState:  instanceState(sc.CurrentState),
			PreviousState: instanceState(sc.PreviousState),
		})
	}
	return out
}

func instanceState(s *types.InstanceState) InstanceState {
	if s == nil {
		return InstanceState{}
	}
	return InstanceState{Code: aws.ToInt32(s.Code), Name: string(s.Name)}
}
