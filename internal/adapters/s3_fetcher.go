package adapters

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	"mvnorder/internal/ports"
	"mvnorder/internal/types"
)

type s3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher downloads artifacts from repositories addressed as
// s3://bucket/prefix.
type S3Fetcher struct {
	client s3GetObjectAPI
}

type S3Options struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

// NewS3Fetcher loads the default AWS configuration chain. Endpoint and
// PathStyle target S3-compatible stores such as MinIO.
func NewS3Fetcher(ctx context.Context, opts S3Options) (S3Fetcher, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region := strings.TrimSpace(opts.Region); region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return S3Fetcher{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("unable to load AWS config").
			WithCause(err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = opts.PathStyle
	})
	return S3Fetcher{client: client}, nil
}

func NewS3FetcherWithClient(client s3GetObjectAPI) S3Fetcher {
	return S3Fetcher{client: client}
}

func (f S3Fetcher) Fetch(ctx context.Context, repo types.Repository, relPath string, dest string) (bool, error) {
	if f.client == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("s3 client is not configured")
	}
	bucket, key, err := s3Location(repo.URL, relPath)
	if err != nil {
		return false, err
	}
	result, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) || strings.Contains(err.Error(), "StatusCode: 404") {
			return false, nil
		}
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read s3://" + bucket + "/" + key).
			WithCause(err)
	}
	defer result.Body.Close()

	file, err := os.Create(dest)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create artifact file").
			WithCause(err)
	}
	written, err := io.Copy(file, result.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write artifact file").
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("bucket", bucket).Str("key", key).Int64("bytes", written).Msg("artifact downloaded")
	return true, nil
}

func s3Location(repoURL string, relPath string) (string, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil || !strings.EqualFold(parsed.Scheme, "s3") || parsed.Host == "" {
		return "", "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid s3 repository url: " + repoURL)
	}
	key := path.Join(strings.Trim(parsed.Path, "/"), strings.TrimLeft(relPath, "/"))
	return parsed.Host, key, nil
}

var _ ports.RepositoryFetcherPort = S3Fetcher{}
