package check

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/src-bin/adk/cmdutil"
	"github.com/src-bin/adk/features"
	"github.com/src-bin/adk/settings"
	"github.com/src-bin/adk/ui"
)

var registry = features.Default

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <id>",
		Short: "print whether a feature flag is enabled or disabled",
		Long:  "print \"enabled\" or \"disabled\" for the given feature flag, exiting non-zero if there's no such feature",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			Main(cmdutil.Main(cmd, args))
		},
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return registry.IDs(), cobra.ShellCompDirectiveNoFileComp
		},
	}
	return cmd
}

func Main(ctx context.Context, _ *settings.Settings, _ *cobra.Command, args []string, w io.Writer) {
	enabled, err := registry.IsEnabled(args[0])
	ui.Must(err)
	if enabled {
		fmt.Fprintln(w, "enabled")
	} else {
		fmt.Fprintln(w, "disabled")
	}
}
