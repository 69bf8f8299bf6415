package ports

type WorkspacePort interface {
	FindProjects(root string) ([]string, error)
}
