package ports

import (
	"context"

	"mvnorder/internal/types"
)

// ResolutionErrorPolicy decides what a failed or ambiguous resolution means.
// A nil return drops the offending node from the result; a non-nil error
// aborts the whole operation.
type ResolutionErrorPolicy interface {
	HandleResolutionError(ctx context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error
}
