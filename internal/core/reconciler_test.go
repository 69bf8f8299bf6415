package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvnorder/internal/policies"
	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

type erroringResolver struct {
	err error
}

func (r erroringResolver) Resolve(_ context.Context, _ types.ResolutionRequest) (types.ResolutionOutcome, error) {
	return types.ResolutionOutcome{}, r.err
}

type unresolvedSuccessResolver struct{}

func (unresolvedSuccessResolver) Resolve(_ context.Context, request types.ResolutionRequest) (types.ResolutionOutcome, error) {
	return types.ResolvedOutcome(request.Artifact), nil
}

func TestReconcileKeepsResolvedNodes(t *testing.T) {
	resolver := newFakeResolver(nil)
	reconciler := Reconciler{Resolver: resolver}
	nodes := Flatten(node(resolvedRef("com.example:app", "", "/app"),
		node(resolvedRef("g:a", "compile", "/a.jar")),
	))

	got, err := reconciler.Reconcile(context.Background(), selfDescriptor(), nil, nodes, types.Repository{})
	require.NoError(t, err)
	if diff := cmp.Diff([]types.ArtifactRef{nodes[0].Artifact, nodes[1].Artifact}, got); diff != "" {
		t.Fatalf("unexpected artifacts (-want +got):\n%s", diff)
	}
	assert.Zero(t, resolver.totalCalls())
}

func TestReconcileIndexEntryTakesNodeScope(t *testing.T) {
	reconciler := Reconciler{Resolver: newFakeResolver(nil)}
	nodes := []*types.DependencyNode{
		node(unresolved("g:a", "test")),
		node(unresolved("g:b", "test")),
	}
	index := map[string]types.ArtifactRef{
		"g:a": resolvedRef("g:a", "", "/a.jar"),
		"g:b": resolvedRef("g:b", "runtime", "/b.jar"),
	}

	got, err := reconciler.Reconcile(context.Background(), selfDescriptor(), index, nodes, types.Repository{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "test", got[0].Scope())
	assert.Equal(t, "runtime", got[1].Scope())
}

func TestReconcileResolverErrorIsTransportFailure(t *testing.T) {
	var seen types.ResolutionOutcome
	reconciler := Reconciler{
		Resolver: erroringResolver{err: errors.New("connection reset")},
		Policy: policies.PolicyFunc(func(_ context.Context, _ types.ResolutionRequest, outcome types.ResolutionOutcome) error {
			seen = outcome
			return nil
		}),
	}
	got, err := reconciler.Reconcile(context.Background(), selfDescriptor(), nil,
		[]*types.DependencyNode{node(unresolved("g:a", "compile"))}, types.Repository{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, types.ResolutionReasonTransport, seen.FailureReason())
	require.Error(t, seen.Cause)
	assert.Contains(t, seen.Cause.Error(), "connection reset")
}

func TestReconcileRejectsUnresolvedSuccess(t *testing.T) {
	reconciler := Reconciler{Resolver: unresolvedSuccessResolver{}}
	_, err := reconciler.Reconcile(context.Background(), selfDescriptor(), nil,
		[]*types.DependencyNode{node(unresolved("g:a", "compile"))}, types.Repository{})

	var resolutionErr *types.ResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	assert.Equal(t, types.ResolutionReasonInvalid, resolutionErr.Reason)
}

func TestReconcilePassesRepositoriesLocalFirst(t *testing.T) {
	var seen types.ResolutionRequest
	reconciler := Reconciler{
		Resolver: erroringResolver{err: errors.New("boom")},
		Policy: policies.PolicyFunc(func(_ context.Context, request types.ResolutionRequest, _ types.ResolutionOutcome) error {
			seen = request
			return nil
		}),
	}
	local := types.Repository{ID: "local", URL: "/home/dev/.m2/repository"}
	_, err := reconciler.Reconcile(context.Background(), selfDescriptor(), nil,
		[]*types.DependencyNode{node(unresolved("g:a", "compile"))}, local)
	require.NoError(t, err)

	want := []types.Repository{local, {ID: "central", URL: "https://repo.maven.apache.org/maven2"}}
	if diff := cmp.Diff(want, seen.Repositories()); diff != "" {
		t.Fatalf("unexpected repositories (-want +got):\n%s", diff)
	}
}

// cancellingResolver cancels the run and then reports a plain transport
// failure, the way a fetcher does when its request is aborted.
type cancellingResolver struct {
	cancel context.CancelFunc
}

func (r cancellingResolver) Resolve(_ context.Context, _ types.ResolutionRequest) (types.ResolutionOutcome, error) {
	r.cancel()
	return types.FailedOutcome(types.ResolutionReasonTransport, errors.New("connection reset")), nil
}

func TestReconcileCancellationBypassesPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy ports.ResolutionErrorPolicy
	}{
		{name: "skip unresolved", policy: policies.SkipUnresolved{}},
		{name: "fail fast", policy: policies.FailFast{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handled := 0
			reconciler := Reconciler{
				Resolver: cancellingResolver{cancel: cancel},
				Policy: policies.PolicyFunc(func(ctx context.Context, request types.ResolutionRequest, outcome types.ResolutionOutcome) error {
					handled++
					return tt.policy.HandleResolutionError(ctx, request, outcome)
				}),
				Workers: 1,
			}
			nodes := Flatten(node(selfDescriptor().Artifact, node(unresolved("g:a", "compile"))))

			got, err := reconciler.Reconcile(ctx, selfDescriptor(), nil, nodes, types.Repository{})
			require.ErrorIs(t, err, context.Canceled)
			var resolutionErr *types.ResolutionError
			assert.False(t, errors.As(err, &resolutionErr))
			assert.Nil(t, got)
			assert.Zero(t, handled)
		})
	}
}
