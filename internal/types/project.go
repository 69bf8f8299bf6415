package types

// ProjectFile is the on-disk project descriptor. The same shape is read from
// YAML and from HCL.
type ProjectFile struct {
	APIVersion   string            `yaml:"api_version" hcl:"api_version,optional"`
	Project      ProjectSection    `yaml:"project" hcl:"project,block"`
	Repositories []RepositoryEntry `yaml:"repositories,omitempty" hcl:"repository,block"`
	Artifacts    []ArtifactEntry   `yaml:"artifacts,omitempty" hcl:"artifact,block"`
	Closure      []ClosureEntry    `yaml:"closure,omitempty" hcl:"closure,block"`
}

type ProjectSection struct {
	Coordinate   string   `yaml:"coordinate" hcl:"coordinate"`
	Path         string   `yaml:"path,omitempty" hcl:"path,optional"`
	Dependencies []string `yaml:"dependencies,omitempty" hcl:"dependencies,optional"`
}

type RepositoryEntry struct {
	ID  string `yaml:"id" hcl:"id,label"`
	URL string `yaml:"url" hcl:"url"`
}

// ArtifactEntry declares one artifact of the dependency graph. Requires lists
// the "group:artifact" keys this artifact depends on.
type ArtifactEntry struct {
	Coordinate string   `yaml:"coordinate" hcl:"coordinate"`
	Scope      string   `yaml:"scope,omitempty" hcl:"scope,optional"`
	Path       string   `yaml:"path,omitempty" hcl:"path,optional"`
	Requires   []string `yaml:"requires,omitempty" hcl:"requires,optional"`
}

// ClosureEntry is an artifact already resolved upstream.
type ClosureEntry struct {
	Coordinate string `yaml:"coordinate" hcl:"coordinate"`
	Scope      string `yaml:"scope,omitempty" hcl:"scope,optional"`
	Path       string `yaml:"path" hcl:"path"`
}
