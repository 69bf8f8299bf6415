package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"mvnorder/internal/app"
	"mvnorder/internal/policies"
	"mvnorder/internal/types"
)

const (
	defaultProjectFile = "mvnorder.yaml"

	printClasspath = "classpath"
	printList      = "list"
	printNone      = "none"
)

type orderOptions struct {
	Project            string
	LocalRepo          string
	Repositories       []string
	Scopes             []string
	Exclude            []string
	Lock               string
	OutputDir          string
	SBOM               bool
	Workers            int
	NonProductionScope string
	PartitionScope     bool
	OnResolutionError  string
	Print              string
	HTTPUser           string
	HTTPPassword       string
	HTTPTimeoutSec     int
	HTTPRetries        int
	HTTPRetryDelayMs   int
	S3Region           string
	S3Endpoint         string
	S3PathStyle        bool
}

func newOrderCommand() *cobra.Command {
	opts := orderOptions{}
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Resolve a project's artifacts in dependency-first order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrder(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Project, "project", defaultProjectFile, "Project file path (.yaml, .yml or .hcl)")
	cmd.Flags().StringVar(&opts.LocalRepo, "local-repo", app.DefaultLocalRepo, "Local Maven repository")
	cmd.Flags().StringSliceVar(&opts.Repositories, "repository", nil, "Additional remote repository URL (file, http(s) or s3)")
	cmd.Flags().StringSliceVar(&opts.Scopes, "scope", nil, "Included scopes (default all)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Excluded group:artifact or group:* patterns")
	cmd.Flags().StringVar(&opts.Lock, "lock", "", "Lock file to read as closure index and to rewrite")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory for classpath.txt and artifacts.list")
	cmd.Flags().BoolVar(&opts.SBOM, "sbom", false, "Also write an SPDX SBOM into the output directory")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Concurrent artifact resolutions")
	cmd.Flags().StringVar(&opts.NonProductionScope, "non-production-scope", types.ScopeTest, "Scope moved behind all other artifacts")
	cmd.Flags().BoolVar(&opts.PartitionScope, "partition-scope", true, "Move the non-production scope to the end")
	cmd.Flags().StringVar(&opts.OnResolutionError, "on-resolution-error", policies.NameFail, "Unresolvable artifacts: fail or skip")
	cmd.Flags().StringVar(&opts.Print, "print", printClasspath, "Stdout format: classpath, list or none")
	cmd.Flags().StringVar(&opts.HTTPUser, "http-user", "", "HTTP repository user")
	cmd.Flags().StringVar(&opts.HTTPPassword, "http-password", "", "HTTP repository password")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "HTTP request timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "Initial HTTP retry delay in milliseconds")
	cmd.Flags().StringVar(&opts.S3Region, "s3-region", "", "S3 region")
	cmd.Flags().StringVar(&opts.S3Endpoint, "s3-endpoint", "", "S3 endpoint override")
	cmd.Flags().BoolVar(&opts.S3PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	return cmd
}

func runOrder(ctx context.Context, cmd *cobra.Command, opts orderOptions) error {
	printMode := resolveString(cmd, opts.Print, "print", "print")
	switch printMode {
	case printClasspath, printList, printNone:
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown print format: %s", printMode))
	}

	service := newAppService()
	result, err := service.Order(ctx, app.OrderRequest{
		ProjectPath:        resolveString(cmd, opts.Project, "project", "project"),
		LocalRepo:          resolveString(cmd, opts.LocalRepo, "local_repo", "local-repo"),
		Repositories:       resolveStrings(cmd, opts.Repositories, "repositories", "repository"),
		Scopes:             resolveStrings(cmd, opts.Scopes, "scopes", "scope"),
		Exclude:            resolveStrings(cmd, opts.Exclude, "exclude", "exclude"),
		LockPath:           resolveString(cmd, opts.Lock, "lock", "lock"),
		OutputDir:          resolveString(cmd, opts.OutputDir, "output", "output"),
		SBOM:               resolveBool(cmd, opts.SBOM, "sbom", "sbom"),
		Workers:            resolveInt(cmd, opts.Workers, "workers", "workers"),
		NonProductionScope: resolveString(cmd, opts.NonProductionScope, "non_production_scope", "non-production-scope"),
		PartitionScope:     resolveBool(cmd, opts.PartitionScope, "partition_scope", "partition-scope"),
		OnResolutionError:  resolveString(cmd, opts.OnResolutionError, "on_resolution_error", "on-resolution-error"),
		HTTP: app.HTTPSettings{
			User:         resolveString(cmd, opts.HTTPUser, "http_user", "http-user"),
			Password:     resolveString(cmd, opts.HTTPPassword, "http_password", "http-password"),
			TimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout_sec", "http-timeout"),
			Retries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
			RetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
		},
		S3: app.S3Settings{
			Region:    resolveString(cmd, opts.S3Region, "s3_region", "s3-region"),
			Endpoint:  resolveString(cmd, opts.S3Endpoint, "s3_endpoint", "s3-endpoint"),
			PathStyle: resolveBool(cmd, opts.S3PathStyle, "s3_path_style", "s3-path-style"),
		},
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch printMode {
	case printClasspath:
		fmt.Fprintln(out, result.Classpath)
	case printList:
		fmt.Fprint(out, renderArtifactList(result.Artifacts))
	}
	return nil
}
