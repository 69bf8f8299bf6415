package app

import "mvnorder/internal/types"

type ValidateRequest struct {
	ProjectPath  string
	WorkspaceDir string
}

type ValidatedProject struct {
	Path         string
	Project      string
	Artifacts    int
	Repositories int
}

type ValidateResult struct {
	Projects []ValidatedProject
}

type HTTPSettings struct {
	User         string
	Password     string
	TimeoutSec   int
	Retries      int
	RetryDelayMs int
}

type S3Settings struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

type OrderRequest struct {
	ProjectPath  string
	LocalRepo    string
	Repositories []string
	Scopes       []string
	Exclude      []string
	LockPath     string
	OutputDir    string
	SBOM         bool
	Workers      int
	// NonProductionScope is only applied when PartitionScope is set.
	NonProductionScope string
	PartitionScope     bool
	OnResolutionError  string
	HTTP               HTTPSettings
	S3                 S3Settings
}

type OrderResult struct {
	Project   types.ArtifactCoordinate
	Artifacts []types.ArtifactRef
	Classpath string
	OutputDir string
	LockPath  string
}

type TreeRequest struct {
	ProjectPath string
	Scopes      []string
	Exclude     []string
}

type TreeResult struct {
	Project types.ArtifactCoordinate
	Root    *types.DependencyNode
}

type InspectRequest struct {
	Path string
}

type InspectScopeSummary struct {
	Scope     string
	Count     int
	Artifacts []string
}

type InspectResult struct {
	Project string
	Total   int
	Unique  int
	Missing []string
	Scopes  []InspectScopeSummary
}
