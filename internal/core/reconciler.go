package core

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"mvnorder/internal/policies"
	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

const defaultResolveWorkers = 4

// Reconciler turns every candidate node into a resolved artifact, preferring
// already-resolved information over explicit resolution.
type Reconciler struct {
	Resolver ports.ArtifactResolverPort
	Policy   ports.ResolutionErrorPolicy
	Workers  int
}

type reconcileSlot struct {
	ref     types.ArtifactRef
	dropped bool
}

// Reconcile returns one artifact per node, in node order. Nodes dropped by
// the error policy are left out. Explicit resolution runs on a bounded pool;
// the first fatal error cancels the calls still running or waiting.
func (r Reconciler) Reconcile(ctx context.Context, descriptor *types.ComponentDescriptor, index map[string]types.ArtifactRef, nodes []*types.DependencyNode, localRepository types.Repository) ([]types.ArtifactRef, error) {
	slots := make([]reconcileSlot, len(nodes))
	var pending []int
	for i, node := range nodes {
		ref, ok := r.lookup(ctx, descriptor, index, node.Artifact)
		if ok {
			slots[i].ref = ref
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		workers := r.Workers
		if workers <= 0 {
			workers = defaultResolveWorkers
		}
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(workers)
		for _, i := range pending {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				ref, keep, err := r.resolve(groupCtx, descriptor, nodes[i].Artifact, localRepository)
				if err != nil {
					return err
				}
				slots[i] = reconcileSlot{ref: ref, dropped: !keep}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
		// A cancelled resolution may have been dropped by the policy.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	out := make([]types.ArtifactRef, 0, len(slots))
	for _, slot := range slots {
		if slot.dropped {
			continue
		}
		out = append(out, slot.ref)
	}
	return out, nil
}

// lookup applies the tiers that need no resolver call.
func (r Reconciler) lookup(ctx context.Context, descriptor *types.ComponentDescriptor, index map[string]types.ArtifactRef, ref types.ArtifactRef) (types.ArtifactRef, bool) {
	logger := log.Ctx(ctx)
	if ref.Resolved() {
		return ref, true
	}
	logger.Debug().Str("artifact", ref.Coordinate.String()).Msg("artifact is unresolved")

	// The component being built can never be resolved independently.
	if ref.Key() == descriptor.Key() {
		logger.Debug().Str("artifact", ref.Coordinate.String()).Msg("artifact resolved to project artifact")
		return descriptor.Artifact, true
	}
	if indexed, ok := index[ref.Key()]; ok {
		logger.Debug().
			Str("artifact", ref.Coordinate.String()).
			Str("indexed", indexed.Coordinate.String()).
			Msg("artifact resolved from closure index")
		return withScope(indexed, ref.Scope()), true
	}
	return types.ArtifactRef{}, false
}

// resolve performs explicit resolution. keep is false when the policy chose
// to drop the node.
func (r Reconciler) resolve(ctx context.Context, descriptor *types.ComponentDescriptor, ref types.ArtifactRef, localRepository types.Repository) (types.ArtifactRef, bool, error) {
	request := types.ResolutionRequest{
		Artifact:           ref,
		LocalRepository:    localRepository,
		RemoteRepositories: descriptor.Repositories,
	}
	log.Ctx(ctx).Debug().
		Str("artifact", ref.Coordinate.String()).
		Int("repositories", len(request.Repositories())).
		Msg("resolving artifact")

	outcome, err := r.Resolver.Resolve(ctx, request)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.ArtifactRef{}, false, ctxErr
	}
	if err != nil {
		outcome = types.FailedOutcome(types.ResolutionReasonTransport, err)
	}
	if outcome.Success() && !outcome.Artifacts[0].Resolved() {
		outcome = types.FailedOutcome(types.ResolutionReasonInvalid, nil)
	}
	if outcome.Success() {
		return withScope(outcome.Artifacts[0], ref.Scope()), true, nil
	}

	policy := r.Policy
	if policy == nil {
		policy = policies.FailFast{}
	}
	if err := policy.HandleResolutionError(ctx, request, outcome); err != nil {
		return types.ArtifactRef{}, false, err
	}
	return types.ArtifactRef{}, false, nil
}

func withScope(ref types.ArtifactRef, scope string) types.ArtifactRef {
	if ref.Coordinate.Scope == "" {
		ref.Coordinate.Scope = scope
	}
	return ref
}
