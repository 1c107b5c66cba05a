package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/src-bin/adk/cmd/adk/code"
	"github.com/src-bin/adk/cmd/adk/features"
	"github.com/src-bin/adk/cmdutil"
	"github.com/src-bin/adk/version"
)

func main() {
	cmd := &cobra.Command{
		Use:     "adk",
		Short:   "manage feature flags and run code in a remote code interpreter",
		Long:    "adk reports on its feature flags, which are toggled by ADK_ENABLE_<ID> and ADK_DISABLE_<ID>, and executes code in a code interpreter running as an AWS Lambda function.",
		Version: version.String(),

		SilenceUsage: true,
	}
	cmd.PersistentFlags().AddFlag(cmdutil.QuietFlag())

	cmd.AddCommand(code.Command())
	cmd.AddCommand(features.Command())

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
