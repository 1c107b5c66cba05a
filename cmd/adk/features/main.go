package features

import (
	"github.com/spf13/cobra"
	"github.com/src-bin/adk/cmd/adk/features/check"
	"github.com/src-bin/adk/cmd/adk/features/list"
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features check|list",
		Short: "inspect feature flags",
		Long:  "inspect feature flags and whether ADK_ENABLE_<ID> or ADK_DISABLE_<ID> environment variables have overridden them",
	}

	cmd.AddCommand(check.Command())
	cmd.AddCommand(list.Command())

	return cmd
}
