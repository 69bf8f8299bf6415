package types

const LockFileVersion = 1

// LockFile records the ordered, resolved artifacts of one run.
type LockFile struct {
	Version   int         `yaml:"version"`
	Project   string      `yaml:"project"`
	Artifacts []LockEntry `yaml:"artifacts"`
}

type LockEntry struct {
	Coordinate string `yaml:"coordinate"`
	Scope      string `yaml:"scope,omitempty"`
	Path       string `yaml:"path,omitempty"`
}
