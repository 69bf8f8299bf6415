package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mvnorder/internal/app"
	"mvnorder/internal/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	scopeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

func renderValidate(result app.ValidateResult) string {
	var b strings.Builder
	for _, project := range result.Projects {
		fmt.Fprintf(&b, "%s %s %s\n",
			headingStyle.Render("validated:"),
			project.Project,
			pathStyle.Render(fmt.Sprintf("(%s, %d artifacts, %d repositories)", project.Path, project.Artifacts, project.Repositories)))
	}
	return b.String()
}

func renderArtifactList(artifacts []types.ArtifactRef) string {
	var b strings.Builder
	for _, ref := range artifacts {
		location := ref.Path
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(&b, "%s %s %s\n", ref.Coordinate.String(), scopeStyle.Render(scopeLabel(ref.Scope())), pathStyle.Render(location))
	}
	return b.String()
}

// renderTree draws the dependency graph with box-drawing branches. Repeated
// subtrees are drawn again at every position they occur.
func renderTree(root *types.DependencyNode) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(root.Artifact.Coordinate.String()))
	b.WriteString("\n")
	writeTreeChildren(&b, root.Children, "")
	return b.String()
}

func writeTreeChildren(b *strings.Builder, children []*types.DependencyNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(b, "%s%s %s\n",
			branchStyle.Render(prefix+branch),
			child.Artifact.Coordinate.String(),
			scopeStyle.Render("("+scopeLabel(child.Artifact.Scope())+")"))
		writeTreeChildren(b, child.Children, prefix+indent)
	}
}

func renderInspect(result app.InspectResult) string {
	var b strings.Builder
	if result.Project != "" {
		fmt.Fprintf(&b, "%s %s\n", headingStyle.Render("project:"), result.Project)
	}
	fmt.Fprintf(&b, "%s %d (%d unique)\n", headingStyle.Render("artifacts:"), result.Total, result.Unique)
	for _, scope := range result.Scopes {
		fmt.Fprintf(&b, "- %s: %d\n", scopeStyle.Render(scope.Scope), scope.Count)
		for _, artifact := range scope.Artifacts {
			fmt.Fprintf(&b, "    %s\n", artifact)
		}
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "%s %d\n", warnStyle.Render("missing files:"), len(result.Missing))
		for _, artifact := range result.Missing {
			fmt.Fprintf(&b, "    %s\n", artifact)
		}
	}
	return b.String()
}

func scopeLabel(scope string) string {
	if scope == "" {
		return types.ScopeCompile
	}
	return scope
}
