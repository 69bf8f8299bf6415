package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/core"
	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

type OutputReaderAdapter struct{}

func NewOutputReaderAdapter() OutputReaderAdapter {
	return OutputReaderAdapter{}
}

// ReadArtifactList parses a file written by WriteArtifactList.
func (a OutputReaderAdapter) ReadArtifactList(path string) ([]types.ArtifactRef, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(ArtifactListFileName + " not found").
			WithCause(err)
	}
	var refs []types.ArtifactRef
	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid %s line %d", ArtifactListFileName, lineNo))
		}
		scope, location := fields[1], fields[2]
		if scope == "-" {
			scope = ""
		}
		if location == "-" {
			location = ""
		}
		coordinate, err := core.ParseCoordinate(fields[0], scope)
		if err != nil {
			return nil, err
		}
		refs = append(refs, types.ArtifactRef{Coordinate: coordinate, Path: location})
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read " + ArtifactListFileName).
			WithCause(err)
	}
	return refs, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
