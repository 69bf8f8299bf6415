// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// FixturePath returns the absolute path of a file below fixtures/.
func FixturePath(t *testing.T, elem ...string) string {
	t.Helper()
	return filepath.Join(append([]string{RepoRoot(t), "fixtures"}, elem...)...)
}

// RepositoryFiles lists the files of the fixture Maven repository as paths
// relative to its root, using forward slashes.
func RepositoryFiles(t *testing.T) []string {
	t.Helper()
	root := FixturePath(t, "repo")
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, files)
	return files
}

// WriteProject writes a project file into dir and returns its path.
func WriteProject(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// NormalizePaths replaces machine-specific directory prefixes with stable
// placeholders such as $LOCAL.
func NormalizePaths(content string, placeholders map[string]string) string {
	for placeholder, dir := range placeholders {
		content = strings.ReplaceAll(content, filepath.ToSlash(dir), placeholder)
	}
	return content
}
