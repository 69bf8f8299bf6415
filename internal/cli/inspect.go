package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mvnorder/internal/app"
)

type inspectOptions struct {
	Lock string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [lock file | artifacts.list | output dir]",
		Short: "Summarize an ordered artifact list per scope",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Lock, "lock", "mvnorder.lock", "Lock file used when no path is given")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts inspectOptions) error {
	path := resolveString(cmd, opts.Lock, "lock", "lock")
	if len(args) == 1 {
		path = args[0]
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{Path: path})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), renderInspect(result))
	return nil
}
