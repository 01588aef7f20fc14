package source

import (
	"context"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/logger"
	"github.com/robotops/ro1mon/internal/sdk"
)

// sdkSource polls named variables through the vendor workspace API.
type sdkSource struct {
	client *sdk.Client
	vars   []string
	log    logger.Logger
}

// NewSDK builds a Source over the vendor SDK for the configured
// variable names.
func NewSDK(ws config.WorkspaceConfig, vars []string) Source {
	return &sdkSource{
		client: sdk.New(ws.URL, ws.Token, sdk.RobotKind(ws.Kind)),
		vars:   vars,
		log:    logger.NewEnvLogger("[source/sdk]"),
	}
}

func (s *sdkSource) Name() string {
	return config.SourceSDK
}

// Read lists the routine-editor variables as a connection check, then
// reads each requested name. A failed per-name read yields Null and the
// rest still poll; a failed listing fails the whole tick.
func (s *sdkSource) Read(ctx context.Context) (Sample, error) {
	vc := s.client.RoutineEditor().Variables()
	if _, err := vc.Load(ctx); err != nil {
		return Sample{}, err
	}

	sample := NewSample()
	for _, name := range s.vars {
		v, err := vc.Get(ctx, name)
		if err != nil {
			s.log.Debug("read of %q failed: %v", name, err)
			sample.Set(name, Null())
			continue
		}
		sample.Set(name, FromAny(v.Value))
	}
	return sample, nil
}

func (s *sdkSource) Close() error {
	return nil
}

// Status exposes the robot's control state for the dashboard header.
// Only the SDK transport reports it.
func (s *sdkSource) Status(ctx context.Context) (sdk.Status, error) {
	return s.client.Status(ctx)
}

// Client returns the underlying workspace client, used by the one-shot
// set and call commands.
func (s *sdkSource) Client() *sdk.Client {
	return s.client
}

// StatusReporter is implemented by sources that can report robot
// control state alongside variable reads.
type StatusReporter interface {
	Status(ctx context.Context) (sdk.Status, error)
}
