package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/adapters"
	"mvnorder/internal/core"
	"mvnorder/internal/policies"
	"mvnorder/internal/ports"
	"mvnorder/internal/shared"
	"mvnorder/internal/types"
)

const DefaultLocalRepo = "~/.m2/repository"

// Order computes the dependency-first artifact list of a project and writes
// the requested outputs.
func (s Service) Order(ctx context.Context, req OrderRequest) (OrderResult, error) {
	descriptor, err := s.loadDescriptor(ctx, req.ProjectPath)
	if err != nil {
		return OrderResult{}, err
	}
	for i, raw := range req.Repositories {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		descriptor.Repositories = append(descriptor.Repositories, types.Repository{
			ID:  fmt.Sprintf("extra-%d", i+1),
			URL: raw,
		})
	}
	policy, err := policies.ForName(req.OnResolutionError)
	if err != nil {
		return OrderResult{}, err
	}
	localRepo := expandHome(req.LocalRepo)
	if localRepo == "" {
		localRepo = expandHome(DefaultLocalRepo)
	}
	resolver, err := s.resolver(ctx, req, descriptor.Repositories)
	if err != nil {
		return OrderResult{}, err
	}

	lockPath := strings.TrimSpace(req.LockPath)
	closure := adapters.ChainClosureIndex{adapters.DescriptorClosureIndex{}}
	if lockPath != "" {
		closure = append(closure, adapters.LockFileClosureIndex{Path: lockPath, Reader: s.LockReader})
	}

	orderer := core.NewArtifactOrderer(s.Graph, resolver)
	orderer.Closure = closure
	orderer.Policy = policy
	orderer.Workers = req.Workers
	if req.PartitionScope {
		orderer.NonProductionScope = strings.TrimSpace(req.NonProductionScope)
	}
	artifacts, err := orderer.ResolveOrderedArtifacts(ctx, descriptor,
		buildFilter(req.Scopes, req.Exclude),
		types.Repository{ID: "local", URL: localRepo})
	if err != nil {
		return OrderResult{}, err
	}

	result := OrderResult{
		Project:   descriptor.Artifact.Coordinate,
		Artifacts: artifacts,
		Classpath: adapters.Classpath(artifacts),
		LockPath:  lockPath,
	}
	if outputDir := strings.TrimSpace(req.OutputDir); outputDir != "" {
		if err := s.writeOutputs(outputDir, req.SBOM, descriptor, artifacts); err != nil {
			return OrderResult{}, err
		}
		result.OutputDir = outputDir
	}
	if lockPath != "" {
		if err := s.LockWriter.WriteLock(lockPath, adapters.LockFromArtifacts(descriptor.Artifact.Coordinate, artifacts)); err != nil {
			return OrderResult{}, err
		}
	}
	log.Ctx(ctx).Info().
		Str("project", descriptor.Key()).
		Int("artifacts", len(artifacts)).
		Msg("artifact order computed")
	return result, nil
}

func (s Service) writeOutputs(outputDir string, sbom bool, descriptor *types.ComponentDescriptor, artifacts []types.ArtifactRef) error {
	output := adapters.NewOutputFileAdapter(outputDir)
	if err := output.WriteClasspath(artifacts); err != nil {
		return err
	}
	if err := output.WriteArtifactList(artifacts); err != nil {
		return err
	}
	if !sbom {
		return nil
	}
	if s.SBOMWriter == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("sbom writer is not configured")
	}
	createdAt := ""
	if s.Clock != nil {
		createdAt = s.Clock().UTC().Format(time.RFC3339)
	}
	return s.SBOMWriter.WriteSBOM(outputDir, descriptor.Artifact.Coordinate, createdAt, artifacts)
}

// resolver builds the repository resolver for a run. The S3 client is only
// configured when a repository needs it.
func (s Service) resolver(ctx context.Context, req OrderRequest, repos []types.Repository) (ports.ArtifactResolverPort, error) {
	if s.Resolver != nil {
		return s.Resolver, nil
	}
	httpFetcher := adapters.NewHTTPFetcher(req.HTTP.User, req.HTTP.Password, req.HTTP.TimeoutSec, req.HTTP.Retries, req.HTTP.RetryDelayMs)
	var s3Fetcher ports.RepositoryFetcherPort
	for _, repo := range repos {
		if shared.RepositoryScheme(repo.URL) != "s3" {
			continue
		}
		fetcher, err := adapters.NewS3Fetcher(ctx, adapters.S3Options{
			Region:    req.S3.Region,
			Endpoint:  req.S3.Endpoint,
			PathStyle: req.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		s3Fetcher = fetcher
		break
	}
	return adapters.NewRepositoryResolver(adapters.DefaultFetchers(httpFetcher, s3Fetcher)), nil
}
