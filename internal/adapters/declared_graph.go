package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/dominikbraun/graph"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

// DeclaredGraphBuilder expands the artifacts declared by a project
// descriptor into a dependency tree rooted at the project itself.
type DeclaredGraphBuilder struct{}

func NewDeclaredGraphBuilder() DeclaredGraphBuilder {
	return DeclaredGraphBuilder{}
}

// BuildGraph returns the project node with its declared dependencies as
// children, in declaration order. A node rejected by filter is dropped with
// its whole subtree; the root is never filtered. When the descriptor names
// no direct dependencies, every declared artifact nothing else requires
// becomes a direct dependency.
func (b DeclaredGraphBuilder) BuildGraph(ctx context.Context, descriptor *types.ComponentDescriptor, filter types.DependencyFilter) (*types.DependencyNode, error) {
	if descriptor == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component descriptor is required")
	}
	declared := make(map[string]types.DeclaredArtifact, len(descriptor.Declared))
	for _, artifact := range descriptor.Declared {
		declared[artifact.Artifact.Key()] = artifact
	}

	edges, err := declaredEdges(descriptor, declared)
	if err != nil {
		return nil, err
	}
	if err := checkAcyclic(descriptor.Key(), edges); err != nil {
		return nil, err
	}

	expanded := map[string]*types.DependencyNode{}
	excluded := 0
	var expand func(key string) *types.DependencyNode
	expand = func(key string) *types.DependencyNode {
		if node, ok := expanded[key]; ok {
			return node
		}
		node := &types.DependencyNode{Artifact: declared[key].Artifact}
		if key == descriptor.Key() {
			node.Artifact = descriptor.Artifact
		}
		expanded[key] = node
		for _, child := range edges[key] {
			if !filter.Include(declared[child].Artifact.Coordinate) {
				excluded++
				continue
			}
			node.Children = append(node.Children, expand(child))
		}
		return node
	}
	root := expand(descriptor.Key())

	log.Ctx(ctx).Debug().
		Str("project", descriptor.Key()).
		Int("declared", len(descriptor.Declared)).
		Int("expanded", len(expanded)).
		Int("excluded_edges", excluded).
		Msg("dependency graph built")
	return root, nil
}

// declaredEdges maps every key to the keys it requires, in declaration
// order, with the project's own direct dependencies under its key.
func declaredEdges(descriptor *types.ComponentDescriptor, declared map[string]types.DeclaredArtifact) (map[string][]string, error) {
	edges := map[string][]string{}
	self := descriptor.Key()

	direct := descriptor.Direct
	if len(direct) == 0 {
		required := map[string]struct{}{}
		for _, artifact := range descriptor.Declared {
			for _, key := range artifact.Requires {
				required[key] = struct{}{}
			}
		}
		for _, artifact := range descriptor.Declared {
			if _, ok := required[artifact.Artifact.Key()]; !ok {
				direct = append(direct, artifact.Artifact.Key())
			}
		}
	}
	for _, key := range direct {
		if _, ok := declared[key]; !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("direct dependency %s is not declared", key))
		}
		edges[self] = appendUnique(edges[self], key)
	}
	for _, artifact := range descriptor.Declared {
		from := artifact.Artifact.Key()
		for _, key := range artifact.Requires {
			if _, ok := declared[key]; !ok && key != self {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("artifact %s requires undeclared %s", from, key))
			}
			edges[from] = appendUnique(edges[from], key)
		}
	}
	return edges, nil
}

func checkAcyclic(self string, edges map[string][]string) error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	vertices := map[string]struct{}{self: {}}
	for from, targets := range edges {
		vertices[from] = struct{}{}
		for _, to := range targets {
			vertices[to] = struct{}{}
		}
	}
	for key := range vertices {
		if err := g.AddVertex(key); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to build dependency graph").
				WithCause(err)
		}
	}
	for from, targets := range edges {
		for _, to := range targets {
			err := g.AddEdge(from, to)
			if err == nil || errors.Is(err, graph.ErrEdgeAlreadyExists) {
				continue
			}
			if errors.Is(err, graph.ErrEdgeCreatesCycle) {
				return errbuilder.New().
					WithCode(errbuilder.CodeFailedPrecondition).
					WithMsg(fmt.Sprintf("dependency cycle through %s -> %s", from, to)).
					WithCause(err)
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to build dependency graph").
				WithCause(err)
		}
	}
	return nil
}

func appendUnique(values []string, value string) []string {
	for _, existing := range values {
		if existing == value {
			return values
		}
	}
	return append(values, value)
}

var _ ports.GraphBuilderPort = DeclaredGraphBuilder{}
