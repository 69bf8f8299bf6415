package ports

import (
	"context"

	"mvnorder/internal/types"
)

// ClosureIndexPort returns the already-resolved artifacts of a component's
// transitive closure, keyed by "group:artifact".
type ClosureIndexPort interface {
	Lookup(ctx context.Context, descriptor *types.ComponentDescriptor) (map[string]types.ArtifactRef, error)
}
