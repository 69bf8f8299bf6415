package core

import (
	"sort"

	"mvnorder/internal/types"
)

// Finalize turns a reconciled pre-order sequence into dependency-first order.
// When nonProductionScope is set, entries in that scope are moved to the end
// with the relative order of both groups preserved.
func Finalize(reconciled []types.ArtifactRef, nonProductionScope string) []types.ArtifactRef {
	ordered := make([]types.ArtifactRef, 0, len(reconciled))
	for i := len(reconciled) - 1; i >= 0; i-- {
		ordered = append(ordered, reconciled[i])
	}
	if nonProductionScope == "" {
		return ordered
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Scope() != nonProductionScope && ordered[j].Scope() == nonProductionScope
	})
	return ordered
}
