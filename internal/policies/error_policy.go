package policies

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

const (
	NameFail = "fail"
	NameSkip = "skip"
)

// FailFast turns every failed resolution into a ResolutionError, aborting
// the operation.
type FailFast struct{}

func (FailFast) HandleResolutionError(_ context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error {
	return &types.ResolutionError{
		Coordinates:  []types.ArtifactCoordinate{request.Artifact.Coordinate},
		Repositories: request.Repositories(),
		Reason:       outcome.FailureReason(),
		Cause:        outcome.Cause,
	}
}

// SkipUnresolved logs failed resolutions and drops the offending node. The
// result is then incomplete, so callers must opt in explicitly.
type SkipUnresolved struct{}

func (SkipUnresolved) HandleResolutionError(ctx context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error {
	event := log.Ctx(ctx).Warn().
		Str("artifact", request.Artifact.Coordinate.String()).
		Str("reason", string(outcome.FailureReason())).
		Int("repositories", len(request.Repositories()))
	if outcome.Cause != nil {
		event = event.Err(outcome.Cause)
	}
	event.Msg("artifact resolution failed; skipping")
	return nil
}

// PolicyFunc adapts a function to ports.ResolutionErrorPolicy.
type PolicyFunc func(ctx context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error

func (f PolicyFunc) HandleResolutionError(ctx context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error {
	return f(ctx, request, outcome)
}

// ForName maps a configuration value to a policy. Empty selects FailFast.
func ForName(name string) (ports.ResolutionErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFail:
		return FailFast{}, nil
	case NameSkip:
		return SkipUnresolved{}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown resolution error policy: %s", name))
	}
}

var (
	_ ports.ResolutionErrorPolicy = FailFast{}
	_ ports.ResolutionErrorPolicy = SkipUnresolved{}
	_ ports.ResolutionErrorPolicy = PolicyFunc(nil)
)
