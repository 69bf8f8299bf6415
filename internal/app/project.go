package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/core"
	"mvnorder/internal/types"
)

// loadDescriptor reads and compiles a project file. Relative paths inside
// the file are taken relative to the file's directory.
func (s Service) loadDescriptor(ctx context.Context, projectPath string) (*types.ComponentDescriptor, error) {
	projectPath = strings.TrimSpace(projectPath)
	if projectPath == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project file path is required")
	}
	project, err := s.ProjectLoader.LoadProject(projectPath)
	if err != nil {
		return nil, err
	}
	baseDir, err := filepath.Abs(filepath.Dir(projectPath))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve project directory").
			WithCause(err)
	}
	return core.NewProjectCompiler().Compile(ctx, project, baseDir)
}

func buildFilter(scopes []string, exclude []string) types.DependencyFilter {
	return core.AllOf(core.ScopeFilter(scopes...), core.ExcludeFilter(exclude...))
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
