package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// Validate checks a single project file, or every project file found below
// a workspace directory. The dependency graph is built too, so undeclared
// keys and cycles are reported here rather than at order time.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	var paths []string
	if projectPath := strings.TrimSpace(req.ProjectPath); projectPath != "" {
		paths = append(paths, projectPath)
	}
	if workspace := strings.TrimSpace(req.WorkspaceDir); workspace != "" {
		found, err := s.Workspace.FindProjects(workspace)
		if err != nil {
			return ValidateResult{}, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project file or workspace is required")
	}

	var result ValidateResult
	for _, path := range paths {
		descriptor, err := s.loadDescriptor(ctx, path)
		if err != nil {
			return ValidateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg("invalid project " + path).
				WithCause(err)
		}
		if _, err := s.Graph.BuildGraph(ctx, descriptor, nil); err != nil {
			return ValidateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg("invalid project " + path).
				WithCause(err)
		}
		log.Ctx(ctx).Debug().Str("path", path).Str("project", descriptor.Key()).Msg("project is valid")
		result.Projects = append(result.Projects, ValidatedProject{
			Path:         path,
			Project:      descriptor.Artifact.Coordinate.String(),
			Artifacts:    len(descriptor.Declared),
			Repositories: len(descriptor.Repositories),
		})
	}
	return result, nil
}
