package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

// ArtifactOrderer computes the resolved, dependency-first artifact sequence
// of a component.
type ArtifactOrderer struct {
	Graph    ports.GraphBuilderPort
	Resolver ports.ArtifactResolverPort
	Closure  ports.ClosureIndexPort
	Policy   ports.ResolutionErrorPolicy
	Workers  int

	// NonProductionScope, when set, moves entries of that scope behind all
	// other entries. Leave empty for strict dependency-first order.
	NonProductionScope string
}

func NewArtifactOrderer(graph ports.GraphBuilderPort, resolver ports.ArtifactResolverPort) ArtifactOrderer {
	return ArtifactOrderer{
		Graph:    graph,
		Resolver: resolver,
	}
}

// ResolveOrderedArtifacts builds the dependency graph of descriptor, resolves
// every node and returns the artifacts with dependencies before their
// dependents and the component itself last. Repeated coordinates are kept.
func (o ArtifactOrderer) ResolveOrderedArtifacts(ctx context.Context, descriptor *types.ComponentDescriptor, filter types.DependencyFilter, localRepository types.Repository) ([]types.ArtifactRef, error) {
	if descriptor == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component descriptor is required")
	}
	if strings.TrimSpace(descriptor.Artifact.Coordinate.Group) == "" || strings.TrimSpace(descriptor.Artifact.Coordinate.Artifact) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component descriptor requires group and artifact")
	}
	if o.Graph == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency graph builder is required")
	}
	if o.Resolver == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact resolver is required")
	}
	logger := log.Ctx(ctx)

	root, err := o.Graph.BuildGraph(ctx, descriptor, filter)
	if err != nil {
		return nil, err
	}
	nodes := Flatten(root)
	if len(nodes) == 0 {
		logger.Debug().Str("project", descriptor.Key()).Msg("no dependency nodes encountered")
		return []types.ArtifactRef{}, nil
	}

	index, err := o.closureIndex(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	reconciler := Reconciler{
		Resolver: o.Resolver,
		Policy:   o.Policy,
		Workers:  o.Workers,
	}
	reconciled, err := reconciler.Reconcile(ctx, descriptor, index, nodes, localRepository)
	if err != nil {
		return nil, err
	}
	ordered := Finalize(reconciled, o.NonProductionScope)

	logger.Debug().
		Str("project", descriptor.Key()).
		Int("nodes", len(nodes)).
		Int("artifacts", len(ordered)).
		Msg("artifact ordering completed")
	return ordered, nil
}

func (o ArtifactOrderer) closureIndex(ctx context.Context, descriptor *types.ComponentDescriptor) (map[string]types.ArtifactRef, error) {
	raw := descriptor.ClosureIndex
	if o.Closure != nil {
		looked, err := o.Closure.Lookup(ctx, descriptor)
		if err != nil {
			return nil, err
		}
		raw = looked
	}
	index := make(map[string]types.ArtifactRef, len(raw))
	for key, ref := range raw {
		if !ref.Resolved() {
			log.Ctx(ctx).Debug().Str("key", key).Msg("ignoring unresolved closure index entry")
			continue
		}
		index[key] = ref
	}
	return index, nil
}
