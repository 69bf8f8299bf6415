package ports

import "mvnorder/internal/types"

type SBOMPort interface {
	WriteSBOM(dir string, project types.ArtifactCoordinate, createdAt string, artifacts []types.ArtifactRef) error
}
