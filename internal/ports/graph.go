package ports

import (
	"context"

	"mvnorder/internal/types"
)

// GraphBuilderPort builds the dependency graph of a component. The returned
// root node represents the component itself.
type GraphBuilderPort interface {
	BuildGraph(ctx context.Context, descriptor *types.ComponentDescriptor, filter types.DependencyFilter) (*types.DependencyNode, error)
}
