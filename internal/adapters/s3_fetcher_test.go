package adapters

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvnorder/internal/types"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	lastKey string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.lastKey = key
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3FetcherFetch(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"artifacts/maven/releases/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar": "from s3",
	}}
	fetcher := NewS3FetcherWithClient(client)
	repo := types.Repository{ID: "s3", URL: "s3://artifacts/maven/releases/"}

	dest := filepath.Join(t.TempDir(), "slf4j.jar")
	found, err := fetcher.Fetch(context.Background(), repo, "org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar", dest)
	require.NoError(t, err)
	assert.True(t, found)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "from s3", string(data))

	found, err = fetcher.Fetch(context.Background(), repo, "org/slf4j/slf4j-api/9.9/slf4j-api-9.9.jar", dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "artifacts/maven/releases/org/slf4j/slf4j-api/9.9/slf4j-api-9.9.jar", client.lastKey)
}

func TestS3FetcherErrors(t *testing.T) {
	fetcher := NewS3FetcherWithClient(&fakeS3{err: errors.New("AccessDenied")})
	_, err := fetcher.Fetch(context.Background(), types.Repository{URL: "s3://bucket"}, "a.jar", filepath.Join(t.TempDir(), "a.jar"))
	require.Error(t, err)

	_, err = fetcher.Fetch(context.Background(), types.Repository{URL: "https://bucket"}, "a.jar", filepath.Join(t.TempDir(), "a.jar"))
	require.Error(t, err)

	_, err = S3Fetcher{}.Fetch(context.Background(), types.Repository{URL: "s3://bucket"}, "a.jar", filepath.Join(t.TempDir(), "a.jar"))
	require.Error(t, err)
}
