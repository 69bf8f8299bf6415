package ports

import (
	"context"

	"mvnorder/internal/types"
)

// ArtifactResolverPort resolves a single artifact against the repositories
// named in the request. A returned error is treated as a transport failure.
type ArtifactResolverPort interface {
	Resolve(ctx context.Context, request types.ResolutionRequest) (types.ResolutionOutcome, error)
}

// RepositoryFetcherPort copies one repository-relative file into dest.
// found is false when the repository does not hold the file.
type RepositoryFetcherPort interface {
	Fetch(ctx context.Context, repo types.Repository, relPath string, dest string) (found bool, err error)
}
