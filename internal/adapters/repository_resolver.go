package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/ports"
	"mvnorder/internal/shared"
	"mvnorder/internal/types"
)

// RepositoryResolver resolves artifacts against Maven2-layout repositories.
// The local repository is checked first; remote repositories are tried in
// order and a hit is stored in the local repository.
type RepositoryResolver struct {
	Fetchers map[string]ports.RepositoryFetcherPort
}

func NewRepositoryResolver(fetchers map[string]ports.RepositoryFetcherPort) RepositoryResolver {
	return RepositoryResolver{Fetchers: fetchers}
}

// DefaultFetchers maps repository schemes to fetchers. A nil s3 fetcher
// leaves s3:// repositories unsupported.
func DefaultFetchers(httpFetcher ports.RepositoryFetcherPort, s3Fetcher ports.RepositoryFetcherPort) map[string]ports.RepositoryFetcherPort {
	fetchers := map[string]ports.RepositoryFetcherPort{
		"file":  NewFileFetcher(),
		"http":  httpFetcher,
		"https": httpFetcher,
	}
	if s3Fetcher != nil {
		fetchers["s3"] = s3Fetcher
	}
	return fetchers
}

func (r RepositoryResolver) Resolve(ctx context.Context, request types.ResolutionRequest) (types.ResolutionOutcome, error) {
	logger := log.Ctx(ctx)
	coordinate := request.Artifact.Coordinate
	relPath := shared.LayoutPath(coordinate)

	localDir := shared.LocalDir(request.LocalRepository.URL)
	if localDir == "" {
		return types.FailedOutcome(types.ResolutionReasonInvalid, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("local repository must be a directory")), nil
	}
	localPath := filepath.Join(localDir, filepath.FromSlash(relPath))
	if info, err := os.Stat(localPath); err == nil && !info.IsDir() {
		logger.Debug().Str("artifact", coordinate.String()).Str("path", localPath).Msg("artifact found in local repository")
		return types.ResolvedOutcome(types.ArtifactRef{Coordinate: coordinate, Path: localPath}), nil
	}

	var errs []error
	for _, repo := range request.RemoteRepositories {
		if err := ctx.Err(); err != nil {
			return types.ResolutionOutcome{}, err
		}
		scheme := shared.RepositoryScheme(repo.URL)
		fetcher, ok := r.Fetchers[scheme]
		if !ok || fetcher == nil {
			errs = append(errs, fmt.Errorf("%s: unsupported repository scheme %q", repo.ID, scheme))
			continue
		}
		found, err := fetchAtomic(ctx, fetcher, repo, relPath, localPath)
		if err != nil {
			logger.Debug().Err(err).Str("artifact", coordinate.String()).Str("repository", repo.ID).Msg("repository fetch failed")
			errs = append(errs, fmt.Errorf("%s: %w", repo.ID, err))
			continue
		}
		if found {
			logger.Debug().Str("artifact", coordinate.String()).Str("repository", repo.ID).Msg("artifact fetched")
			return types.ResolvedOutcome(types.ArtifactRef{Coordinate: coordinate, Path: localPath}), nil
		}
	}
	// An aborted fetch is a cancellation, not a transport failure.
	if err := ctx.Err(); err != nil {
		return types.ResolutionOutcome{}, err
	}
	if len(errs) > 0 {
		return types.FailedOutcome(types.ResolutionReasonTransport, errors.Join(errs...)), nil
	}
	return types.FailedOutcome(types.ResolutionReasonNotFound, nil), nil
}

// fetchAtomic downloads into a temporary file next to dest and renames it
// into place, so a partial download never looks like a local hit.
func fetchAtomic(ctx context.Context, fetcher ports.RepositoryFetcherPort, repo types.Repository, relPath string, dest string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create local repository directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".part-*")
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary artifact file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	found, err := fetcher.Fetch(ctx, repo, relPath, tmpPath)
	if err != nil || !found {
		return false, err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move artifact into local repository").
			WithCause(err)
	}
	return true, nil
}

var _ ports.ArtifactResolverPort = RepositoryResolver{}
