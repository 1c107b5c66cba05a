package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/src-bin/adk/awslambda"
	"github.com/src-bin/adk/cmdutil"
	"github.com/src-bin/adk/codeexecutors"
	"github.com/src-bin/adk/features"
	"github.com/src-bin/adk/fileutil"
	"github.com/src-bin/adk/settings"
	"github.com/src-bin/adk/ui"
)

var (
	function, region = new(string), new(string)
	sessionID        = new(string)
	files            = new([]string)
	outputDir        = new(string)
	extract          = new(bool)
)

var (
	ErrNoCodeBlock     = errors.New("no code block found in input")
	errStdinIsTerminal = errors.New("give a script or pipe code to standard input")
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [--function <name>] [--region <region>] [--session-id <id>] [--file <pathname>]... [--output-dir <dirname>] [--extract] [<script>]",
		Short: "execute code in the code interpreter",
		Long: `execute the given script, or code read from standard input, in the code interpreter Lambda function, printing what it writes to standard output and saving the files it creates

the function is named by --function, $ADK_CODE_INTERPRETER_FUNCTION, or the function key in the [code_interpreter] section of adk.toml, in that order`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			Main(cmdutil.Main(cmd, args))
		},
		DisableFlagsInUseLine: true,
	}
	cmd.Flags().StringVar(function, "function", "", "name or ARN of the code interpreter Lambda function")
	cmd.Flags().StringVar(region, "region", "", "AWS region where the code interpreter Lambda function lives")
	cmd.Flags().StringVar(sessionID, "session-id", "", "session whose state carries over between executions")
	cmd.Flags().StringArrayVar(files, "file", nil, "file to make available to the code (may be repeated)")
	cmd.Flags().StringVar(outputDir, "output-dir", "", "directory where files the code creates are written")
	cmd.Flags().BoolVar(extract, "extract", false, "execute only the first ```python or ```tool_code block found in the input")
	return cmd
}

func Main(ctx context.Context, s *settings.Settings, _ *cobra.Command, args []string, w io.Writer) {
	code, err := readCode(args)
	ui.Must(err)
	if *extract {
		var ok bool
		if code, ok = codeexecutors.ExtractCodeBlock(code, nil); !ok {
			ui.Fatal(ErrNoCodeBlock)
		}
	}

	input, err := Input(code, *sessionID, *files)
	ui.Must(err)

	name := s.Function(*function)
	if name == "" {
		ui.Fatal(codeexecutors.ErrNoResourceName)
	}
	cfg := cmdutil.Config(ctx, s, *region)
	executor := codeexecutors.NewLambdaCodeExecutor(name, awslambda.ExtensionFactory(cfg))

	ui.Spinf("executing %d bytes of code with %d input files in %s", len(input.Code), len(input.InputFiles), name)
	result, err := executor.ExecuteCode(ctx, input)
	ui.StopErr(err)
	ui.Must(err)

	ui.Must(Output(result, s.OutputDir(*outputDir), w, os.Stderr))
}

// Input builds what's sent to the code interpreter from code, the session
// ID, and pathnames of local files. When sessions are enabled and no session
// ID was given, it makes one up so that later executions can share state.
func Input(code, sessionID string, pathnames []string) (codeexecutors.CodeExecutionInput, error) {
	input := codeexecutors.CodeExecutionInput{Code: code, ExecutionID: sessionID}
	if input.ExecutionID == "" && features.CodeInterpreterSessions.Enabled() {
		input.ExecutionID = uuid.NewString()
		ui.Printf("using session ID %s; pass --session-id %s to continue this session", input.ExecutionID, input.ExecutionID)
	}
	for _, pathname := range pathnames {
		content, err := fileutil.ReadBase64(pathname)
		if err != nil {
			return input, err
		}
		name := filepath.Base(pathname)
		input.InputFiles = append(input.InputFiles, codeexecutors.File{
			Name:     name,
			Content:  content,
			MimeType: codeexecutors.MimeType(name),
		})
	}
	return input, nil
}

// Output writes the code's standard output to stdout and, if those features
// are enabled, its standard error to stderr and the files it created to
// dirname.
func Output(result codeexecutors.CodeExecutionResult, dirname string, stdout, stderr io.Writer) error {
	fmt.Fprint(stdout, result.Stdout)
	if result.Stderr != "" && features.CodeInterpreterStderr.Enabled() {
		fmt.Fprint(stderr, result.Stderr)
	}
	if !features.CodeInterpreterOutputFiles.Enabled() {
		return nil
	}
	for _, f := range result.OutputFiles {
		pathname, err := fileutil.WriteBase64(dirname, f.Name, f.Content)
		if err != nil {
			return err
		}
		ui.Printf("wrote %s (%s)", pathname, f.MimeType)
	}
	return nil
}

func readCode(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		return string(b), err
	}
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return "", errStdinIsTerminal
	}
	b, err := io.ReadAll(os.Stdin)
	return string(b), err
}
