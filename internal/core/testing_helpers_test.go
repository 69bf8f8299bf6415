package core

import (
	"context"
	"fmt"
	"sync"

	"mvnorder/internal/types"
)

func coord(key string, version string, scope string) types.ArtifactCoordinate {
	coordinate, err := ParseCoordinate(key+":"+version, scope)
	if err != nil {
		panic(err)
	}
	return coordinate
}

func unresolved(key string, scope string) types.ArtifactRef {
	return types.ArtifactRef{Coordinate: coord(key, "1.0", scope)}
}

func resolvedRef(key string, scope string, path string) types.ArtifactRef {
	return types.ArtifactRef{Coordinate: coord(key, "1.0", scope), Path: path}
}

func node(ref types.ArtifactRef, children ...*types.DependencyNode) *types.DependencyNode {
	return &types.DependencyNode{Artifact: ref, Children: children}
}

type staticGraph struct {
	root *types.DependencyNode
	err  error
}

func (g staticGraph) BuildGraph(_ context.Context, _ *types.ComponentDescriptor, _ types.DependencyFilter) (*types.DependencyNode, error) {
	return g.root, g.err
}

// fakeResolver resolves every key in paths and fails the rest. Calls are
// counted per key.
type fakeResolver struct {
	mu       sync.Mutex
	paths    map[string][]string
	failures map[string]types.ResolutionFailureReason
	calls    map[string]int
	block    chan struct{}
}

func newFakeResolver(paths map[string][]string) *fakeResolver {
	return &fakeResolver{
		paths:    paths,
		failures: map[string]types.ResolutionFailureReason{},
		calls:    map[string]int{},
	}
}

func (r *fakeResolver) Resolve(ctx context.Context, request types.ResolutionRequest) (types.ResolutionOutcome, error) {
	key := request.Artifact.Key()
	r.mu.Lock()
	r.calls[key]++
	paths, ok := r.paths[key]
	reason := r.failures[key]
	r.mu.Unlock()

	if reason != "" {
		return types.FailedOutcome(reason, nil), nil
	}
	if !ok && r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return types.ResolutionOutcome{}, ctx.Err()
		}
	}
	if !ok {
		return types.FailedOutcome(types.ResolutionReasonNotFound, nil), nil
	}
	outcome := types.ResolutionOutcome{}
	for _, path := range paths {
		ref := request.Artifact
		ref.Path = path
		outcome.Artifacts = append(outcome.Artifacts, ref)
	}
	return outcome, nil
}

func (r *fakeResolver) callCount(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[key]
}

func (r *fakeResolver) totalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, count := range r.calls {
		total += count
	}
	return total
}

type staticClosure map[string]types.ArtifactRef

func (c staticClosure) Lookup(_ context.Context, _ *types.ComponentDescriptor) (map[string]types.ArtifactRef, error) {
	return c, nil
}

func selfDescriptor() *types.ComponentDescriptor {
	return &types.ComponentDescriptor{
		Artifact: types.ArtifactRef{Coordinate: coord("com.example:app", "1.0", ""), Path: "/work/app/target/classes"},
		Repositories: []types.Repository{
			{ID: "central", URL: "https://repo.maven.apache.org/maven2"},
		},
	}
}

func keys(refs []types.ArtifactRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Key())
	}
	return out
}

func jar(key string) string {
	return fmt.Sprintf("/repo/%s.jar", key)
}
