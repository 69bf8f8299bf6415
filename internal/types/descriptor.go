package types

// Repository is a location artifacts can be resolved from. URL is either an
// http(s):// or s3:// address, a file:// URL or a plain directory.
type Repository struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// DeclaredArtifact is an artifact as declared by a project descriptor,
// together with the keys of the artifacts it requires.
type DeclaredArtifact struct {
	Artifact ArtifactRef
	Requires []string
}

// ComponentDescriptor is the component whose artifacts are being ordered.
type ComponentDescriptor struct {
	Artifact     ArtifactRef
	ClosureIndex map[string]ArtifactRef
	Repositories []Repository
	Direct       []string
	Declared     []DeclaredArtifact
}

func (d *ComponentDescriptor) Key() string {
	return d.Artifact.Key()
}
