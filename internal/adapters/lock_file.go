package adapters

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"mvnorder/internal/core"
	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

type LockFileAdapter struct{}

func NewLockFileAdapter() LockFileAdapter {
	return LockFileAdapter{}
}

func (a LockFileAdapter) WriteLock(path string, lock types.LockFile) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock file path is empty")
	}
	if lock.Version == 0 {
		lock.Version = types.LockFileVersion
	}
	data, err := yaml.Marshal(lock)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal lock file").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create lock file directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lock file").
			WithCause(err)
	}
	return nil
}

func (a LockFileAdapter) ReadLock(path string) (types.LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LockFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lock file not found").
			WithCause(err)
	}
	var lock types.LockFile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return types.LockFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid lock file format").
			WithCause(err)
	}
	if lock.Version > types.LockFileVersion {
		return types.LockFile{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("lock file was written by a newer version")
	}
	return lock, nil
}

// LockFromArtifacts records an ordered artifact list.
func LockFromArtifacts(project types.ArtifactCoordinate, artifacts []types.ArtifactRef) types.LockFile {
	lock := types.LockFile{
		Version:   types.LockFileVersion,
		Project:   project.String(),
		Artifacts: make([]types.LockEntry, 0, len(artifacts)),
	}
	for _, ref := range artifacts {
		lock.Artifacts = append(lock.Artifacts, types.LockEntry{
			Coordinate: ref.Coordinate.String(),
			Scope:      ref.Scope(),
			Path:       ref.Path,
		})
	}
	return lock
}

// LockFileClosureIndex serves the artifacts of a previous run as the closure
// index. An entry is only reused while the descriptor still declares exactly
// that coordinate and scope and its file still exists; a missing lock file
// yields an empty index.
type LockFileClosureIndex struct {
	Path   string
	Reader ports.LockReaderPort
}

func NewLockFileClosureIndex(path string) LockFileClosureIndex {
	return LockFileClosureIndex{Path: path, Reader: NewLockFileAdapter()}
}

func (c LockFileClosureIndex) Lookup(ctx context.Context, descriptor *types.ComponentDescriptor) (map[string]types.ArtifactRef, error) {
	logger := log.Ctx(ctx)
	index := map[string]types.ArtifactRef{}
	if c.Path == "" {
		return index, nil
	}
	if _, err := os.Stat(c.Path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug().Str("lock", c.Path).Msg("no lock file; closure index is empty")
		return index, nil
	}
	lock, err := c.Reader.ReadLock(c.Path)
	if err != nil {
		return nil, err
	}
	if descriptor != nil && lock.Project != "" {
		locked, err := core.ParseCoordinate(lock.Project, "")
		if err == nil && locked.Key() != descriptor.Key() {
			logger.Warn().Str("lock", c.Path).Str("locked", locked.Key()).Str("project", descriptor.Key()).Msg("lock file belongs to another project; ignoring it")
			return index, nil
		}
	}
	declared := map[string]types.ArtifactCoordinate{}
	if descriptor != nil {
		for _, artifact := range descriptor.Declared {
			declared[artifact.Artifact.Key()] = artifact.Artifact.Coordinate
		}
	}
	stale, outdated := 0, 0
	for _, entry := range lock.Artifacts {
		coordinate, err := core.ParseCoordinate(entry.Coordinate, entry.Scope)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid lock file entry").
				WithCause(err)
		}
		if entry.Path == "" {
			continue
		}
		if current, ok := declared[coordinate.Key()]; !ok || !sameLockedCoordinate(current, coordinate) {
			outdated++
			continue
		}
		if _, err := os.Stat(entry.Path); err != nil {
			stale++
			continue
		}
		index[coordinate.Key()] = types.ArtifactRef{Coordinate: coordinate, Path: entry.Path}
	}
	logger.Debug().Str("lock", c.Path).Int("entries", len(index)).Int("stale", stale).Int("outdated", outdated).Msg("closure index loaded from lock file")
	return index, nil
}

// sameLockedCoordinate reports whether a locked coordinate still matches the
// declared one in everything but the path.
func sameLockedCoordinate(declared types.ArtifactCoordinate, locked types.ArtifactCoordinate) bool {
	return declared.Group == locked.Group &&
		declared.Artifact == locked.Artifact &&
		declared.Version == locked.Version &&
		declared.Classifier == locked.Classifier &&
		declared.TypeOrDefault() == locked.TypeOrDefault() &&
		lockScope(declared.Scope) == lockScope(locked.Scope)
}

func lockScope(scope string) string {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		return types.ScopeCompile
	}
	return scope
}

// DescriptorClosureIndex serves the closure entries carried by the
// descriptor itself.
type DescriptorClosureIndex struct{}

func (DescriptorClosureIndex) Lookup(_ context.Context, descriptor *types.ComponentDescriptor) (map[string]types.ArtifactRef, error) {
	index := map[string]types.ArtifactRef{}
	if descriptor == nil {
		return index, nil
	}
	for key, ref := range descriptor.ClosureIndex {
		index[key] = ref
	}
	return index, nil
}

// ChainClosureIndex merges several indexes. Earlier indexes win.
type ChainClosureIndex []ports.ClosureIndexPort

func (c ChainClosureIndex) Lookup(ctx context.Context, descriptor *types.ComponentDescriptor) (map[string]types.ArtifactRef, error) {
	merged := map[string]types.ArtifactRef{}
	for _, source := range c {
		if source == nil {
			continue
		}
		index, err := source.Lookup(ctx, descriptor)
		if err != nil {
			return nil, err
		}
		for key, ref := range index {
			if _, ok := merged[key]; !ok {
				merged[key] = ref
			}
		}
	}
	return merged, nil
}

var (
	_ ports.LockWriterPort   = LockFileAdapter{}
	_ ports.LockReaderPort   = LockFileAdapter{}
	_ ports.ClosureIndexPort = LockFileClosureIndex{}
	_ ports.ClosureIndexPort = DescriptorClosureIndex{}
	_ ports.ClosureIndexPort = ChainClosureIndex{}
)
