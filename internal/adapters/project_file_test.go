package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvnorder/internal/types"
)

func TestLoadProjectYAML(t *testing.T) {
	project, err := NewProjectFileAdapter().LoadProject("../../fixtures/project-sample.yaml")
	require.NoError(t, err)

	assert.Equal(t, "v1", project.APIVersion)
	assert.Equal(t, "com.example:orders-service:1.4.0", project.Project.Coordinate)
	assert.Equal(t, "target/classes", project.Project.Path)
	assert.Equal(t, []string{"com.example:orders-api", "org.slf4j:slf4j-simple", "junit:junit"}, project.Project.Dependencies)
	require.Len(t, project.Repositories, 1)
	assert.Equal(t, "local-mirror", project.Repositories[0].ID)
	require.Len(t, project.Artifacts, 7)
	assert.Equal(t, "runtime", project.Artifacts[1].Scope)
	require.Len(t, project.Closure, 1)
}

// Both formats describe the same project.
func TestLoadProjectHCLMatchesYAML(t *testing.T) {
	fromYAML, err := NewProjectFileAdapter().LoadProject("../../fixtures/project-sample.yaml")
	require.NoError(t, err)
	fromHCL, err := NewProjectHCLAdapter().LoadProject("../../fixtures/project-sample.hcl")
	require.NoError(t, err)

	if diff := cmp.Diff(fromYAML, fromHCL); diff != "" {
		t.Fatalf("hcl project differs from yaml (-yaml +hcl):\n%s", diff)
	}
}

func TestLoadProjectHCLUnknownProperty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mvnorder.hcl")
	content := `
project {
  coordinate = "com.example:app:${prop.version}"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewProjectHCLAdapter().LoadProject(path)
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected code (-want +got):\n%s", diff)
	}
}

func TestProjectLoaderDispatch(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantErr  bool
		wantCode errbuilder.ErrCode
	}{
		{name: "yaml", path: "../../fixtures/project-sample.yaml"},
		{name: "hcl", path: "../../fixtures/project-sample.hcl"},
		{name: "unsupported extension", path: "../../fixtures/pom.xml", wantErr: true, wantCode: errbuilder.CodeInvalidArgument},
		{name: "missing yaml", path: "../../fixtures/missing.yaml", wantErr: true, wantCode: errbuilder.CodeNotFound},
	}

	loader := NewProjectLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := loader.LoadProject(tt.path)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "com.example:orders-service:1.4.0", project.Project.Coordinate)
				return
			}
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected code (-want +got):\n%s", diff)
			}
			assert.Equal(t, types.ProjectFile{}, project)
		})
	}
}
