package deploy

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/src-bin/adk/awslambda"
	"github.com/src-bin/adk/cmdutil"
	"github.com/src-bin/adk/features"
	"github.com/src-bin/adk/interpreter"
	"github.com/src-bin/adk/settings"
	"github.com/src-bin/adk/ui"
)

const DefaultFunctionName = "adk-code-interpreter"

var (
	name, region, roleARN, zip = new(string), new(string), new(string), new(string)
	layers                     = new([]string)
	command                    = new(string)
	timeout, memorySize        = new(int32), new(int32)
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy --role <role-arn> --zip <pathname> [--name <name>] [--region <region>] [--layer <layer-arn>]... [--interpreter <command>] [--timeout <seconds>] [--memory <MB>]",
		Short: "create or update the code interpreter Lambda function",
		Long:  "create or update the code interpreter Lambda function from a zip file containing adk-code-interpreter, built for linux/arm64, named bootstrap",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			Main(cmdutil.Main(cmd, args))
		},
		DisableFlagsInUseLine: true,
	}
	cmd.Flags().StringVar(name, "name", "", "name of the Lambda function (default $ADK_CODE_INTERPRETER_FUNCTION, adk.toml, or "+DefaultFunctionName+")")
	cmd.Flags().StringVar(region, "region", "", "AWS region in which to deploy the Lambda function")
	cmd.Flags().StringVar(roleARN, "role", "", "ARN of the IAM role the Lambda function executes as")
	cmd.Flags().StringVar(zip, "zip", "", "pathname of the zip file to deploy")
	cmd.Flags().StringArrayVar(layers, "layer", nil, "ARN of a Lambda layer, e.g. one that provides python3 (may be repeated)")
	cmd.Flags().StringVar(command, "interpreter", "", "command that executes code read from standard input (default \""+interpreter.DefaultCommand+"\")")
	cmd.Flags().Int32Var(timeout, "timeout", 90, "Lambda function timeout in seconds")
	cmd.Flags().Int32Var(memorySize, "memory", 1024, "Lambda function memory in MB")
	cmd.MarkFlagRequired("role")
	cmd.MarkFlagRequired("zip")
	return cmd
}

func Main(ctx context.Context, s *settings.Settings, _ *cobra.Command, _ []string, w io.Writer) {
	b, err := os.ReadFile(*zip)
	ui.Must(err)

	functionName := s.Function(*name)
	if functionName == "" {
		functionName = DefaultFunctionName
	}
	cfg := cmdutil.Config(ctx, s, *region)

	functionARN, err := awslambda.EnsureFunction(ctx, cfg, &awslambda.Function{
		Name:        functionName,
		RoleARN:     *roleARN,
		Environment: Environment(*command, *timeout),
		Layers:      *layers,
		MemorySize:  *memorySize,
		Timeout:     *timeout,
		Zip:         b,
	})
	ui.Must(err)
	fmt.Fprintln(w, functionARN)
}

// Environment returns the Lambda function's environment variables. Code is
// given five seconds less than the Lambda function itself, but never less
// than half of it, so there's time to report a timeout. Sessions are enabled
// in the function if they're enabled here.
func Environment(command string, timeout int32) map[string]string {
	env := make(map[string]string)
	if command != "" {
		env[interpreter.CommandEnv] = command
	}
	if timeout > 0 {
		d := time.Duration(timeout) * time.Second
		env[interpreter.TimeoutEnv] = max(d-5*time.Second, d/2).String()
	}
	if features.CodeInterpreterSessions.Enabled() {
		env[features.EnablePrefix+features.CodeInterpreterSessions.String()] = "true"
	}
	return env
}
