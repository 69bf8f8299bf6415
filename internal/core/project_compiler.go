package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/shared"
	"mvnorder/internal/types"
)

const ProjectAPIVersion = "v1"

var validScopes = map[string]struct{}{
	types.ScopeCompile:  {},
	types.ScopeProvided: {},
	types.ScopeRuntime:  {},
	types.ScopeTest:     {},
	types.ScopeSystem:   {},
	types.ScopeImport:   {},
}

// ProjectCompiler validates project files and turns them into component
// descriptors.
type ProjectCompiler struct{}

func NewProjectCompiler() ProjectCompiler {
	return ProjectCompiler{}
}

func (c ProjectCompiler) ValidateProject(ctx context.Context, project types.ProjectFile) error {
	apiVersion := strings.TrimSpace(project.APIVersion)
	if apiVersion != "" && apiVersion != ProjectAPIVersion {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported api_version: %s", project.APIVersion))
	}
	if strings.TrimSpace(project.Project.Coordinate) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project.coordinate must be set")
	}
	assert.NotEmpty(ctx, project.Project.Coordinate, "project.coordinate must be set")
	self, err := ParseCoordinate(project.Project.Coordinate, "")
	if err != nil {
		return err
	}
	for _, dep := range project.Project.Dependencies {
		if _, err := ParseKey(dep); err != nil {
			return err
		}
	}
	if err := validateRepositories(project.Repositories); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for _, entry := range project.Artifacts {
		coordinate, err := validateArtifactEntry(entry)
		if err != nil {
			return err
		}
		if coordinate.Key() == self.Key() {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("artifact %s redeclares the project itself", coordinate.Key()))
		}
		if _, dup := seen[coordinate.Key()]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("artifact %s declared more than once", coordinate.Key()))
		}
		seen[coordinate.Key()] = struct{}{}
	}
	for _, entry := range project.Closure {
		if _, err := ParseCoordinate(entry.Coordinate, entry.Scope); err != nil {
			return err
		}
		if strings.TrimSpace(entry.Path) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("closure entry %s missing path", entry.Coordinate))
		}
	}
	log.Ctx(ctx).Debug().Str("project", self.Key()).Msg("project validated")
	return nil
}

// Compile validates project and builds its descriptor. Relative artifact
// paths are taken relative to baseDir.
func (c ProjectCompiler) Compile(ctx context.Context, project types.ProjectFile, baseDir string) (*types.ComponentDescriptor, error) {
	if err := c.ValidateProject(ctx, project); err != nil {
		return nil, err
	}
	self, err := ParseCoordinate(project.Project.Coordinate, "")
	if err != nil {
		return nil, err
	}
	descriptor := &types.ComponentDescriptor{
		Artifact: types.ArtifactRef{
			Coordinate: self,
			Path:       absPath(baseDir, project.Project.Path),
		},
		ClosureIndex: map[string]types.ArtifactRef{},
	}
	for _, dep := range project.Project.Dependencies {
		key, err := ParseKey(dep)
		if err != nil {
			return nil, err
		}
		descriptor.Direct = append(descriptor.Direct, key)
	}
	for _, repo := range project.Repositories {
		repoURL := strings.TrimSpace(repo.URL)
		if shared.LocalDir(repoURL) == repoURL {
			repoURL = absPath(baseDir, repoURL)
		}
		descriptor.Repositories = append(descriptor.Repositories, types.Repository{
			ID:  strings.TrimSpace(repo.ID),
			URL: repoURL,
		})
	}
	for _, entry := range project.Artifacts {
		coordinate, err := ParseCoordinate(entry.Coordinate, scopeOrDefault(entry.Scope))
		if err != nil {
			return nil, err
		}
		declared := types.DeclaredArtifact{
			Artifact: types.ArtifactRef{
				Coordinate: coordinate,
				Path:       absPath(baseDir, entry.Path),
			},
		}
		for _, raw := range entry.Requires {
			key, err := ParseKey(raw)
			if err != nil {
				return nil, err
			}
			declared.Requires = append(declared.Requires, key)
		}
		descriptor.Declared = append(descriptor.Declared, declared)
	}
	for _, entry := range project.Closure {
		coordinate, err := ParseCoordinate(entry.Coordinate, strings.TrimSpace(entry.Scope))
		if err != nil {
			return nil, err
		}
		descriptor.ClosureIndex[coordinate.Key()] = types.ArtifactRef{
			Coordinate: coordinate,
			Path:       absPath(baseDir, entry.Path),
		}
	}
	return descriptor, nil
}

func validateRepositories(repos []types.RepositoryEntry) error {
	ids := map[string]struct{}{}
	for _, repo := range repos {
		id := strings.TrimSpace(repo.ID)
		if id == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("repositories.id must not be empty")
		}
		if strings.TrimSpace(repo.URL) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("repository %s missing url", id))
		}
		if _, dup := ids[id]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("repository %s declared more than once", id))
		}
		ids[id] = struct{}{}
	}
	return nil
}

func validateArtifactEntry(entry types.ArtifactEntry) (types.ArtifactCoordinate, error) {
	scope := scopeOrDefault(entry.Scope)
	if _, ok := validScopes[scope]; !ok {
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("artifact %s has invalid scope %s", entry.Coordinate, entry.Scope))
	}
	coordinate, err := ParseCoordinate(entry.Coordinate, scope)
	if err != nil {
		return types.ArtifactCoordinate{}, err
	}
	for _, raw := range entry.Requires {
		if _, err := ParseKey(raw); err != nil {
			return types.ArtifactCoordinate{}, err
		}
	}
	return coordinate, nil
}

func scopeOrDefault(scope string) string {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		return types.ScopeCompile
	}
	return scope
}

func absPath(baseDir string, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
