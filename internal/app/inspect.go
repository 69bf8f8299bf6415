package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/adapters"
	"mvnorder/internal/core"
	"mvnorder/internal/types"
)

// Inspect summarizes a lock file or an artifacts.list per scope.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock file or artifact list is required")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, adapters.ArtifactListFileName)
	}

	var project string
	var artifacts []types.ArtifactRef
	if filepath.Base(path) == adapters.ArtifactListFileName || filepath.Ext(path) == ".list" {
		refs, err := s.OutputReader.ReadArtifactList(path)
		if err != nil {
			return InspectResult{}, err
		}
		artifacts = refs
	} else {
		lock, err := s.LockReader.ReadLock(path)
		if err != nil {
			return InspectResult{}, err
		}
		project = lock.Project
		for _, entry := range lock.Artifacts {
			coordinate, err := core.ParseCoordinate(entry.Coordinate, entry.Scope)
			if err != nil {
				return InspectResult{}, err
			}
			artifacts = append(artifacts, types.ArtifactRef{Coordinate: coordinate, Path: entry.Path})
		}
	}
	return summarizeArtifacts(project, artifacts), nil
}

func summarizeArtifacts(project string, artifacts []types.ArtifactRef) InspectResult {
	result := InspectResult{Project: project, Total: len(artifacts)}
	unique := map[string]struct{}{}
	scopes := map[string][]string{}
	for _, ref := range artifacts {
		id := ref.Coordinate.String()
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		scope := ref.Scope()
		if scope == "" {
			scope = types.ScopeCompile
		}
		scopes[scope] = append(scopes[scope], id)
		if !ref.Resolved() {
			continue
		}
		if _, err := os.Stat(ref.Path); err != nil {
			result.Missing = append(result.Missing, id)
		}
	}
	result.Unique = len(unique)
	for _, scope := range sortedKeys(scopes) {
		result.Scopes = append(result.Scopes, InspectScopeSummary{
			Scope:     scope,
			Count:     len(scopes[scope]),
			Artifacts: scopes[scope],
		})
	}
	return result
}

func sortedKeys[V any](input map[string]V) []string {
	keys := make([]string, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
