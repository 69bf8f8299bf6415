package app

import (
	"time"

	"mvnorder/internal/adapters"
	"mvnorder/internal/ports"
)

type Service struct {
	ProjectLoader ports.ProjectLoaderPort
	Workspace     ports.WorkspacePort
	Graph         ports.GraphBuilderPort
	LockReader    ports.LockReaderPort
	LockWriter    ports.LockWriterPort
	OutputReader  ports.OutputReaderPort
	SBOMWriter    ports.SBOMPort
	// Resolver overrides the repository resolver built from the request.
	Resolver ports.ArtifactResolverPort
	Clock    func() time.Time
}

func NewService() Service {
	lock := adapters.NewLockFileAdapter()
	return Service{
		ProjectLoader: adapters.NewProjectLoader(),
		Workspace:     adapters.NewWorkspaceAdapter(),
		Graph:         adapters.NewDeclaredGraphBuilder(),
		LockReader:    lock,
		LockWriter:    lock,
		OutputReader:  adapters.NewOutputReaderAdapter(),
		SBOMWriter:    adapters.NewSBOMWriterAdapter(),
		Clock:         time.Now,
	}
}
