// Package shared provides common utility functions used across multiple
// packages in the mvnorder codebase.
package shared

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"mvnorder/internal/types"
)

// LayoutPath returns the Maven2 repository path of a coordinate:
// group/as/dirs/artifact/version/artifact-version[-classifier].ext
func LayoutPath(coordinate types.ArtifactCoordinate) string {
	ext, classifier := layoutExtension(coordinate.TypeOrDefault()), coordinate.Classifier
	if coordinate.TypeOrDefault() == "test-jar" && classifier == "" {
		classifier = "tests"
	}
	filename := coordinate.Artifact + "-" + coordinate.Version
	if classifier != "" {
		filename += "-" + classifier
	}
	filename += "." + ext
	groupDir := strings.ReplaceAll(coordinate.Group, ".", "/")
	return path.Join(groupDir, coordinate.Artifact, coordinate.Version, filename)
}

func layoutExtension(artifactType string) string {
	switch artifactType {
	case "bundle", "maven-plugin", "ejb", "test-jar", "java-source", "javadoc":
		return "jar"
	default:
		return artifactType
	}
}

// RepositoryScheme returns the lower-cased URL scheme of a repository, or
// "file" for plain directory paths.
func RepositoryScheme(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || len(parsed.Scheme) == 1 {
		return "file"
	}
	return strings.ToLower(parsed.Scheme)
}

// LocalDir turns a file:// URL or a plain path into a directory path. It
// returns "" for other schemes.
func LocalDir(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if RepositoryScheme(raw) != "file" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "file://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return filepath.FromSlash(parsed.Path)
	}
	return raw
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody creates a formatted error that includes the
// response body for non-2xx HTTP responses.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
