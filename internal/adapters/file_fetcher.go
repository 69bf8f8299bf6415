package adapters

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mvnorder/internal/ports"
	"mvnorder/internal/shared"
	"mvnorder/internal/types"
)

// FileFetcher copies artifacts out of repositories on the local filesystem
// (file:// URLs or plain directories).
type FileFetcher struct{}

func NewFileFetcher() FileFetcher {
	return FileFetcher{}
}

func (f FileFetcher) Fetch(ctx context.Context, repo types.Repository, relPath string, dest string) (bool, error) {
	dir := shared.LocalDir(repo.URL)
	if dir == "" {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("not a local repository: " + repo.URL)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	src, err := os.Open(filepath.Join(dir, filepath.FromSlash(relPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open artifact").
			WithCause(err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create artifact file").
			WithCause(err)
	}
	_, err = io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy artifact").
			WithCause(err)
	}
	return true, nil
}

var _ ports.RepositoryFetcherPort = FileFetcher{}
