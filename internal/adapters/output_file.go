package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

const (
	ClasspathFileName    = "classpath.txt"
	ArtifactListFileName = "artifacts.list"
)

type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

// WriteClasspath joins the artifact paths with the OS path list separator,
// keeping order. Unresolved entries and repeated paths are left out.
func (a OutputFileAdapter) WriteClasspath(artifacts []types.ArtifactRef) error {
	path, err := a.ensurePath(ClasspathFileName)
	if err != nil {
		return err
	}
	content := Classpath(artifacts)
	if content != "" {
		content += "\n"
	}
	return writeOutput(path, content)
}

// WriteArtifactList writes one "coordinate scope path" line per artifact in
// order, duplicates included.
func (a OutputFileAdapter) WriteArtifactList(artifacts []types.ArtifactRef) error {
	path, err := a.ensurePath(ArtifactListFileName)
	if err != nil {
		return err
	}
	var lines []string
	for _, ref := range artifacts {
		scope := ref.Scope()
		if scope == "" {
			scope = "-"
		}
		location := ref.Path
		if location == "" {
			location = "-"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", ref.Coordinate.String(), scope, location))
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return writeOutput(path, content)
}

// Classpath renders the classpath string of an ordered artifact list.
func Classpath(artifacts []types.ArtifactRef) string {
	seen := map[string]struct{}{}
	var entries []string
	for _, ref := range artifacts {
		if !ref.Resolved() {
			continue
		}
		if _, ok := seen[ref.Path]; ok {
			continue
		}
		seen[ref.Path] = struct{}{}
		entries = append(entries, ref.Path)
	}
	return strings.Join(entries, string(os.PathListSeparator))
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func writeOutput(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + filepath.Base(path)).
			WithCause(err)
	}
	return nil
}

var _ ports.OutputPort = OutputFileAdapter{}
