package types

// ArtifactRef is a coordinate plus, once resolved, the location of its
// backing content.
type ArtifactRef struct {
	Coordinate ArtifactCoordinate
	Path       string
}

func (r ArtifactRef) Resolved() bool {
	return r.Path != ""
}

func (r ArtifactRef) Key() string {
	return r.Coordinate.Key()
}

func (r ArtifactRef) Scope() string {
	return r.Coordinate.Scope
}

// DependencyNode is one node of the dependency graph handed to the core.
// Nodes for the same coordinate may repeat across the graph.
type DependencyNode struct {
	Artifact ArtifactRef
	Children []*DependencyNode
}

// DependencyFilter decides whether a coordinate takes part in the graph. A
// nil filter includes everything.
type DependencyFilter func(ArtifactCoordinate) bool

func (f DependencyFilter) Include(coordinate ArtifactCoordinate) bool {
	if f == nil {
		return true
	}
	return f(coordinate)
}
