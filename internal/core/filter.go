package core

import (
	"strings"

	"mvnorder/internal/types"
)

// ScopeFilter includes only coordinates whose scope is listed. A missing
// scope counts as compile. No scopes means no filtering.
func ScopeFilter(scopes ...string) types.DependencyFilter {
	allowed := map[string]struct{}{}
	for _, scope := range scopes {
		scope = strings.ToLower(strings.TrimSpace(scope))
		if scope != "" {
			allowed[scope] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return func(coordinate types.ArtifactCoordinate) bool {
		scope := strings.ToLower(strings.TrimSpace(coordinate.Scope))
		if scope == "" {
			scope = types.ScopeCompile
		}
		_, ok := allowed[scope]
		return ok
	}
}

// ExcludeFilter rejects coordinates matching any "group:artifact" pattern.
// Either side may be "*".
func ExcludeFilter(patterns ...string) types.DependencyFilter {
	type pattern struct {
		group    string
		artifact string
	}
	var parsed []pattern
	for _, raw := range patterns {
		parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
		if len(parts) != 2 {
			continue
		}
		parsed = append(parsed, pattern{
			group:    strings.TrimSpace(parts[0]),
			artifact: strings.TrimSpace(parts[1]),
		})
	}
	if len(parsed) == 0 {
		return nil
	}
	return func(coordinate types.ArtifactCoordinate) bool {
		for _, p := range parsed {
			groupMatch := p.group == "*" || p.group == coordinate.Group
			artifactMatch := p.artifact == "*" || p.artifact == coordinate.Artifact
			if groupMatch && artifactMatch {
				return false
			}
		}
		return true
	}
}

// AllOf includes a coordinate only when every non-nil filter does.
func AllOf(filters ...types.DependencyFilter) types.DependencyFilter {
	var active []types.DependencyFilter
	for _, filter := range filters {
		if filter != nil {
			active = append(active, filter)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(coordinate types.ArtifactCoordinate) bool {
		for _, filter := range active {
			if !filter(coordinate) {
				return false
			}
		}
		return true
	}
}
