package ports

import "mvnorder/internal/types"

type ProjectLoaderPort interface {
	LoadProject(path string) (types.ProjectFile, error)
}
