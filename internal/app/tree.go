package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Tree returns the filtered dependency graph of a project without resolving
// anything.
func (s Service) Tree(ctx context.Context, req TreeRequest) (TreeResult, error) {
	descriptor, err := s.loadDescriptor(ctx, req.ProjectPath)
	if err != nil {
		return TreeResult{}, err
	}
	if s.Graph == nil {
		return TreeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependency graph builder is required")
	}
	root, err := s.Graph.BuildGraph(ctx, descriptor, buildFilter(req.Scopes, req.Exclude))
	if err != nil {
		return TreeResult{}, err
	}
	return TreeResult{Project: descriptor.Artifact.Coordinate, Root: root}, nil
}
