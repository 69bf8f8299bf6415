package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mvnorder/internal/app"
)

type treeOptions struct {
	Project string
	Scopes  []string
	Exclude []string
}

func newTreeCommand() *cobra.Command {
	opts := treeOptions{}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the filtered dependency tree of a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Project, "project", defaultProjectFile, "Project file path (.yaml, .yml or .hcl)")
	cmd.Flags().StringSliceVar(&opts.Scopes, "scope", nil, "Included scopes (default all)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "Excluded group:artifact or group:* patterns")
	return cmd
}

func runTree(ctx context.Context, cmd *cobra.Command, opts treeOptions) error {
	service := newAppService()
	result, err := service.Tree(ctx, app.TreeRequest{
		ProjectPath: resolveString(cmd, opts.Project, "project", "project"),
		Scopes:      resolveStrings(cmd, opts.Scopes, "scopes", "scope"),
		Exclude:     resolveStrings(cmd, opts.Exclude, "exclude", "exclude"),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTree(result.Root))
	return nil
}
