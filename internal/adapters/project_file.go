package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

// ProjectFileAdapter reads YAML project descriptors.
type ProjectFileAdapter struct{}

func NewProjectFileAdapter() ProjectFileAdapter {
	return ProjectFileAdapter{}
}

func (a ProjectFileAdapter) LoadProject(path string) (types.ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ProjectFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project file not found").
			WithCause(err)
	}
	var project types.ProjectFile
	if err := yaml.Unmarshal(data, &project); err != nil {
		return types.ProjectFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse project yaml").
			WithCause(err)
	}
	return project, nil
}

// ProjectLoader picks the descriptor format from the file extension.
type ProjectLoader struct {
	YAML ports.ProjectLoaderPort
	HCL  ports.ProjectLoaderPort
}

func NewProjectLoader() ProjectLoader {
	return ProjectLoader{
		YAML: NewProjectFileAdapter(),
		HCL:  NewProjectHCLAdapter(),
	}
}

func (l ProjectLoader) LoadProject(path string) (types.ProjectFile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.YAML.LoadProject(path)
	case ".hcl":
		return l.HCL.LoadProject(path)
	default:
		return types.ProjectFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported project file extension: " + filepath.Ext(path))
	}
}

var (
	_ ports.ProjectLoaderPort = ProjectFileAdapter{}
	_ ports.ProjectLoaderPort = ProjectLoader{}
)
