package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/types"
)

// ParseCoordinate splits a raw coordinate into its parts. Accepted forms are
// group:artifact:version, group:artifact:type:version and
// group:artifact:type:classifier:version.
func ParseCoordinate(raw string, scope string) (types.ArtifactCoordinate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty coordinate")
	}
	parts := strings.Split(raw, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return types.ArtifactCoordinate{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid coordinate: %s", raw))
		}
	}
	coordinate := types.ArtifactCoordinate{
		Scope: strings.TrimSpace(scope),
		Type:  types.DefaultArtifactType,
	}
	switch len(parts) {
	case 3:
		coordinate.Group, coordinate.Artifact, coordinate.Version = parts[0], parts[1], parts[2]
	case 4:
		coordinate.Group, coordinate.Artifact, coordinate.Type, coordinate.Version = parts[0], parts[1], parts[2], parts[3]
	case 5:
		coordinate.Group, coordinate.Artifact, coordinate.Type = parts[0], parts[1], parts[2]
		coordinate.Classifier, coordinate.Version = parts[3], parts[4]
	default:
		return types.ArtifactCoordinate{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid coordinate: %s", raw))
	}
	return coordinate, nil
}

// ParseKey normalizes a "group:artifact" reference. Full coordinates are
// accepted and reduced to their key.
func ParseKey(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid artifact key: %s", raw))
	}
	return types.ArtifactKey(parts[0], parts[1]), nil
}
