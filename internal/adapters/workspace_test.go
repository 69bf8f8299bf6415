package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAdapter_FindProjects(t *testing.T) {
	root := t.TempDir()
	write := func(rel string) string {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("api_version: v1\n"), 0644))
		return path
	}
	want := []string{
		write("mvnorder.yaml"),
		write(filepath.Join("services", "billing", "mvnorder.hcl")),
		write(filepath.Join("services", "orders", "mvnorder.yml")),
	}
	write(filepath.Join("services", "orders", "pom.xml"))
	for _, dir := range []string{"target", ".git", "node_modules", "build"} {
		write(filepath.Join("services", dir, "mvnorder.yaml"))
	}

	paths, err := NewWorkspaceAdapter().FindProjects(root)
	require.NoError(t, err)
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("unexpected projects (-want +got):\n%s", diff)
	}
}

func TestWorkspaceAdapter_EmptyRoot(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindProjects("")
	require.Error(t, err)
}
