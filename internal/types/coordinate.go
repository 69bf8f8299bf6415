package types

import "strings"

const (
	ScopeCompile  = "compile"
	ScopeProvided = "provided"
	ScopeRuntime  = "runtime"
	ScopeTest     = "test"
	ScopeSystem   = "system"
	ScopeImport   = "import"

	DefaultArtifactType = "jar"
)

// ArtifactCoordinate identifies a dependency. Two coordinates refer to "the
// same" dependency when their Key is equal, even if version or classifier
// differ.
type ArtifactCoordinate struct {
	Group      string `yaml:"group"`
	Artifact   string `yaml:"artifact"`
	Version    string `yaml:"version"`
	Classifier string `yaml:"classifier,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Scope      string `yaml:"scope,omitempty"`
}

// Key returns the "group:artifact" identity used for reconciliation.
func (c ArtifactCoordinate) Key() string {
	return ArtifactKey(c.Group, c.Artifact)
}

// String renders group:artifact:type[:classifier]:version.
func (c ArtifactCoordinate) String() string {
	parts := []string{c.Group, c.Artifact, c.TypeOrDefault()}
	if c.Classifier != "" {
		parts = append(parts, c.Classifier)
	}
	parts = append(parts, c.Version)
	return strings.Join(parts, ":")
}

func (c ArtifactCoordinate) TypeOrDefault() string {
	if strings.TrimSpace(c.Type) == "" {
		return DefaultArtifactType
	}
	return c.Type
}

func ArtifactKey(group string, artifact string) string {
	return strings.TrimSpace(group) + ":" + strings.TrimSpace(artifact)
}
