package types

import (
	"fmt"
	"strings"
)

type ResolutionFailureReason string

const (
	ResolutionReasonNotFound  ResolutionFailureReason = "not_found"
	ResolutionReasonTransport ResolutionFailureReason = "transport"
	ResolutionReasonEmpty     ResolutionFailureReason = "empty"
	ResolutionReasonAmbiguous ResolutionFailureReason = "ambiguous"
	ResolutionReasonInvalid   ResolutionFailureReason = "invalid"
)

type ResolutionRequest struct {
	Artifact           ArtifactRef
	LocalRepository    Repository
	RemoteRepositories []Repository
}

// Repositories returns the local repository followed by the remotes, in the
// order they are searched.
func (r ResolutionRequest) Repositories() []Repository {
	var out []Repository
	if r.LocalRepository.URL != "" {
		out = append(out, r.LocalRepository)
	}
	return append(out, r.RemoteRepositories...)
}

type ResolutionOutcome struct {
	Artifacts []ArtifactRef
	Reason    ResolutionFailureReason
	Cause     error
}

// Success reports whether the outcome carries exactly one artifact and no
// failure.
func (o ResolutionOutcome) Success() bool {
	return o.Reason == "" && o.Cause == nil && len(o.Artifacts) == 1
}

// FailureReason classifies an unsuccessful outcome.
func (o ResolutionOutcome) FailureReason() ResolutionFailureReason {
	switch {
	case o.Reason != "":
		return o.Reason
	case o.Cause != nil:
		return ResolutionReasonTransport
	case len(o.Artifacts) == 0:
		return ResolutionReasonEmpty
	case len(o.Artifacts) > 1:
		return ResolutionReasonAmbiguous
	default:
		return ""
	}
}

func FailedOutcome(reason ResolutionFailureReason, cause error) ResolutionOutcome {
	return ResolutionOutcome{Reason: reason, Cause: cause}
}

func ResolvedOutcome(ref ArtifactRef) ResolutionOutcome {
	return ResolutionOutcome{Artifacts: []ArtifactRef{ref}}
}

// ResolutionError reports coordinates that could not be resolved and the
// repositories that were searched for them.
type ResolutionError struct {
	Coordinates  []ArtifactCoordinate
	Repositories []Repository
	Reason       ResolutionFailureReason
	Cause        error
}

func (e *ResolutionError) Error() string {
	coords := make([]string, 0, len(e.Coordinates))
	for _, coordinate := range e.Coordinates {
		coords = append(coords, coordinate.String())
	}
	repos := make([]string, 0, len(e.Repositories))
	for _, repo := range e.Repositories {
		if repo.ID != "" {
			repos = append(repos, fmt.Sprintf("%s (%s)", repo.ID, repo.URL))
			continue
		}
		repos = append(repos, repo.URL)
	}
	msg := fmt.Sprintf("failed to resolve %s: %s; searched [%s]",
		strings.Join(coords, ", "), e.Reason, strings.Join(repos, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
