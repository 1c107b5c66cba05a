package interpreter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/src-bin/adk/codeexecutors"
	"github.com/src-bin/adk/ui"
)

const (
	CommandEnv = "ADK_INTERPRETER_COMMAND"
	RootEnv    = "ADK_INTERPRETER_ROOT"
	TimeoutEnv = "ADK_INTERPRETER_TIMEOUT"

	DefaultCommand = "python3 -"
	DefaultTimeout = 60 * time.Second

	// waitDelay bounds how long output is collected after the interpreter
	// exits or is killed while something it started holds its pipes open.
	waitDelay = 500 * time.Millisecond
)

// sessionNamespace keeps session directory names from colliding with
// anything else derived from the same session IDs.
var sessionNamespace = uuid.MustParse("6f1c3d2e-8a4b-4e59-9d57-0c2b7f3a1e90")

// Response is what the code interpreter returns for the execute operation.
type Response struct {
	ExecutionResult string                     `json:"execution_result"`
	ExecutionError  string                     `json:"execution_error"`
	OutputFiles     []codeexecutors.RemoteFile `json:"output_files"`
}

// Runner runs code with dir as its working directory and returns what it
// wrote to standard output and standard error. A non-nil error of type
// *exec.ExitError means the code ran and failed; any other error means it
// couldn't be run at all.
type Runner func(ctx context.Context, dir, code string) (stdout, stderr string, err error)

// Handler serves the code interpreter's side of the execute operation.
type Handler struct {
	Root     string // parent of every scratch directory
	Run      Runner
	Sessions bool // keep scratch directories between invocations with the same session ID
	Timeout  time.Duration
}

// NewHandler returns a Handler configured from ADK_INTERPRETER_COMMAND,
// ADK_INTERPRETER_ROOT, and ADK_INTERPRETER_TIMEOUT, falling back to running
// python3 for up to a minute in a directory beneath os.TempDir.
func NewHandler() (*Handler, error) {
	h := &Handler{
		Root:    filepath.Join(os.TempDir(), "adk-code-interpreter"),
		Timeout: DefaultTimeout,
	}
	if root := os.Getenv(RootEnv); root != "" {
		h.Root = root
	}
	if s := os.Getenv(TimeoutEnv); s != "" {
		timeout, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", TimeoutEnv, s, err)
		}
		h.Timeout = timeout
	}
	command := os.Getenv(CommandEnv)
	if command == "" {
		command = DefaultCommand
	}
	h.Run = CommandRunner(strings.Fields(command)...)
	return h, nil
}

// Handle executes the code in req in a scratch directory populated with
// req's files and returns its output along with every file it created or
// modified there.
func (h *Handler) Handle(ctx context.Context, req *codeexecutors.Request) (*Response, error) {
	if req.OperationID != codeexecutors.ExecuteOperationID {
		return nil, UnsupportedOperationError(req.OperationID)
	}
	params := req.OperationParams

	dir, cleanup, err := h.scratch(params.SessionID)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	for _, f := range params.Files {
		if err := writeFile(dir, f); err != nil {
			return nil, err
		}
	}

	before, err := snapshot(dir)
	if err != nil {
		return nil, err
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	ui.Printf("executing %d bytes of code with %d input files in %s", len(params.Code), len(params.Files), dir)
	resp := &Response{OutputFiles: []codeexecutors.RemoteFile{}}
	resp.ExecutionResult, resp.ExecutionError, err = h.Run(ctx, dir, params.Code)
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() == context.DeadlineExceeded:
		resp.ExecutionError += fmt.Sprintf("\ntimed out after %v", h.Timeout)
		ui.Printf("code timed out after %v", h.Timeout)
	case errors.As(err, &exitErr):
		ui.Printf("code exited with status %d", exitErr.ExitCode())
	case errors.Is(err, exec.ErrWaitDelay):
		ui.Print("code exited but left background processes running; killed them")
	default:
		return nil, err
	}

	after, err := snapshot(dir)
	if err != nil {
		return nil, err
	}
	for _, name := range changed(before, after) {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		resp.OutputFiles = append(resp.OutputFiles, codeexecutors.RemoteFile{
			Name:     filepath.ToSlash(name),
			Contents: base64.StdEncoding.EncodeToString(b),
		})
	}

	return resp, nil
}

// scratch returns the directory to run code in and a function that cleans it
// up. Session directories are named for the session and kept for the next
// invocation; all others are unique and removed.
func (h *Handler) scratch(sessionID string) (dir string, cleanup func(), err error) {
	cleanup = func() {}
	if h.Sessions && sessionID != "" {
		dir = filepath.Join(h.Root, uuid.NewSHA1(sessionNamespace, []byte(sessionID)).String())
	} else {
		dir = filepath.Join(h.Root, uuid.New().String())
		cleanup = func() {
			if err := os.RemoveAll(dir); err != nil {
				ui.Print(err)
			}
		}
	}
	err = os.MkdirAll(dir, 0700)
	return
}

// CommandRunner returns a Runner that starts the given command and feeds it
// the code on standard input. The command and every process it starts are
// killed when ctx is done or, at the latest, when the command exits.
func CommandRunner(command ...string) Runner {
	return func(ctx context.Context, dir, code string) (string, string, error) {
		if len(command) == 0 {
			return "", "", errors.New("no interpreter command configured")
		}
		cmd := exec.CommandContext(ctx, command[0], command[1:]...)
		cmd.Dir = dir
		cmd.Stdin = strings.NewReader(code)
		var stdout, stderr strings.Builder
		cmd.Stdout, cmd.Stderr = &stdout, &stderr
		cmd.WaitDelay = waitDelay
		setProcessGroup(cmd)
		err := cmd.Run()
		killProcessGroup(cmd)
		return stdout.String(), stderr.String(), err
	}
}

type fileState struct {
	modTime time.Time
	size    int64
}

func changed(before, after map[string]fileState) []string {
	var names []string
	for name, state := range after {
		if prev, ok := before[name]; !ok || prev != state {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func snapshot(dir string) (map[string]fileState, error) {
	states := make(map[string]fileState)
	err := filepath.WalkDir(dir, func(pathname string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		name, err := filepath.Rel(dir, pathname)
		if err != nil {
			return err
		}
		states[name] = fileState{fi.ModTime(), fi.Size()}
		return nil
	})
	return states, err
}

func writeFile(dir string, f codeexecutors.RemoteFile) error {
	name := filepath.FromSlash(f.Name)
	if !filepath.IsLocal(name) {
		return InvalidFileNameError(f.Name)
	}
	b, err := base64.StdEncoding.DecodeString(f.Contents)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", f.Name, err)
	}
	pathname := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(pathname), 0700); err != nil {
		return err
	}
	return os.WriteFile(pathname, b, 0600)
}

// InvalidFileNameError is returned for input files whose names would land
// them outside the scratch directory.
type InvalidFileNameError string

func (err InvalidFileNameError) Error() string {
	return fmt.Sprintf("invalid input file name %q", string(err))
}

// UnsupportedOperationError is returned for any operation but execute.
type UnsupportedOperationError string

func (err UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q", string(err))
}
