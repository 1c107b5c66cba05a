package code

import (
	"github.com/spf13/cobra"
	"github.com/src-bin/adk/cmd/adk/code/deploy"
	"github.com/src-bin/adk/cmd/adk/code/execute"
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code deploy|execute",
		Short: "deploy and use the code interpreter Lambda function",
	}

	cmd.AddCommand(deploy.Command())
	cmd.AddCommand(execute.Command())

	return cmd
}
