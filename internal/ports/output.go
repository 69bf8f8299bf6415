package ports

import "mvnorder/internal/types"

type OutputPort interface {
	WriteClasspath(artifacts []types.ArtifactRef) error
	WriteArtifactList(artifacts []types.ArtifactRef) error
}

type LockWriterPort interface {
	WriteLock(path string, lock types.LockFile) error
}

type LockReaderPort interface {
	ReadLock(path string) (types.LockFile, error)
}

type OutputReaderPort interface {
	ReadArtifactList(path string) ([]types.ArtifactRef, error)
}
