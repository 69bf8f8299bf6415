package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvnorder/internal/ports"
	"mvnorder/internal/shared"
	"mvnorder/internal/types"
)

func slf4jRef() types.ArtifactRef {
	return types.ArtifactRef{Coordinate: types.ArtifactCoordinate{
		Group: "org.slf4j", Artifact: "slf4j-api", Version: "2.0.9", Type: "jar", Scope: "compile",
	}}
}

func writeRepoFile(t *testing.T, root string, coordinate types.ArtifactCoordinate, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(shared.LayoutPath(coordinate)))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

type countingFetcher struct {
	calls atomic.Int32
	found bool
	err   error
}

func (f *countingFetcher) Fetch(_ context.Context, _ types.Repository, _ string, dest string) (bool, error) {
	f.calls.Add(1)
	if f.err != nil || !f.found {
		return false, f.err
	}
	return true, os.WriteFile(dest, []byte("remote"), 0644)
}

func TestRepositoryResolverPrefersLocalRepository(t *testing.T) {
	local := t.TempDir()
	want := writeRepoFile(t, local, slf4jRef().Coordinate, "local")
	remote := &countingFetcher{found: true}
	resolver := NewRepositoryResolver(map[string]ports.RepositoryFetcherPort{"https": remote})

	outcome, err := resolver.Resolve(context.Background(), types.ResolutionRequest{
		Artifact:           slf4jRef(),
		LocalRepository:    types.Repository{ID: "local", URL: local},
		RemoteRepositories: []types.Repository{{ID: "central", URL: "https://repo.example.com/maven2"}},
	})
	require.NoError(t, err)
	require.True(t, outcome.Success())
	assert.Equal(t, want, outcome.Artifacts[0].Path)
	assert.Equal(t, slf4jRef().Coordinate, outcome.Artifacts[0].Coordinate)
	assert.Zero(t, remote.calls.Load())
}

func TestRepositoryResolverFetchesFromRemotesInOrder(t *testing.T) {
	local := t.TempDir()
	mirror := t.TempDir()
	writeRepoFile(t, mirror, slf4jRef().Coordinate, "from mirror")
	missing := &countingFetcher{}
	fetchers := DefaultFetchers(missing, nil)
	resolver := NewRepositoryResolver(fetchers)

	outcome, err := resolver.Resolve(context.Background(), types.ResolutionRequest{
		Artifact:        slf4jRef(),
		LocalRepository: types.Repository{ID: "local", URL: local},
		RemoteRepositories: []types.Repository{
			{ID: "central", URL: "https://repo.example.com/maven2"},
			{ID: "mirror", URL: "file://" + filepath.ToSlash(mirror)},
		},
	})
	require.NoError(t, err)
	require.True(t, outcome.Success())
	assert.Equal(t, int32(1), missing.calls.Load())

	path := outcome.Artifacts[0].Path
	assert.True(t, strings.HasPrefix(path, local))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from mirror", string(data))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.part-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRepositoryResolverFailures(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    *countingFetcher
		remotes    []types.Repository
		wantReason types.ResolutionFailureReason
	}{
		{
			name:       "not found anywhere",
			fetcher:    &countingFetcher{},
			remotes:    []types.Repository{{ID: "central", URL: "https://repo.example.com/maven2"}},
			wantReason: types.ResolutionReasonNotFound,
		},
		{
			name:       "no remotes",
			fetcher:    &countingFetcher{},
			wantReason: types.ResolutionReasonNotFound,
		},
		{
			name:       "transport error",
			fetcher:    &countingFetcher{err: errors.New("connection refused")},
			remotes:    []types.Repository{{ID: "central", URL: "https://repo.example.com/maven2"}},
			wantReason: types.ResolutionReasonTransport,
		},
		{
			name:       "unsupported scheme",
			fetcher:    &countingFetcher{},
			remotes:    []types.Repository{{ID: "ftp", URL: "ftp://repo.example.com/maven2"}},
			wantReason: types.ResolutionReasonTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewRepositoryResolver(map[string]ports.RepositoryFetcherPort{"https": tt.fetcher})
			outcome, err := resolver.Resolve(context.Background(), types.ResolutionRequest{
				Artifact:           slf4jRef(),
				LocalRepository:    types.Repository{ID: "local", URL: t.TempDir()},
				RemoteRepositories: tt.remotes,
			})
			require.NoError(t, err)
			assert.False(t, outcome.Success())
			assert.Equal(t, tt.wantReason, outcome.FailureReason())
		})
	}
}

func TestRepositoryResolverDownloadsOverHTTP(t *testing.T) {
	var requested atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested.Store(r.URL.Path)
		if r.URL.Path != "/maven2/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	local := t.TempDir()
	resolver := NewRepositoryResolver(DefaultFetchers(NewHTTPFetcher("", "", 5, 1, 10), nil))
	outcome, err := resolver.Resolve(context.Background(), types.ResolutionRequest{
		Artifact:           slf4jRef(),
		LocalRepository:    types.Repository{ID: "local", URL: local},
		RemoteRepositories: []types.Repository{{ID: "test", URL: server.URL + "/maven2/"}},
	})
	require.NoError(t, err)
	require.True(t, outcome.Success())
	assert.Equal(t, "/maven2/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar", requested.Load())

	data, err := os.ReadFile(outcome.Artifacts[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
}

func TestRepositoryResolverReportsCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	resolver := NewRepositoryResolver(DefaultFetchers(NewHTTPFetcher("", "", 5, 1, 10), nil))
	_, err := resolver.Resolve(ctx, types.ResolutionRequest{
		Artifact:           slf4jRef(),
		LocalRepository:    types.Repository{ID: "local", URL: t.TempDir()},
		RemoteRepositories: []types.Repository{{ID: "slow", URL: server.URL + "/maven2/"}},
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
