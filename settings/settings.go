package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/src-bin/adk/codeexecutors"
	"github.com/src-bin/adk/fileutil"
)

const (
	Filename    = "adk.toml"
	FilenameEnv = "ADK_SETTINGS"
)

// Settings is the contents of an adk.toml file, e.g.
//
//	[code_interpreter]
//	function = "adk-code-interpreter"
//	region = "us-west-2"
//	output_dir = "out"
type Settings struct {
	CodeInterpreter CodeInterpreter `toml:"code_interpreter"`

	pathname string
}

type CodeInterpreter struct {
	Function  string `toml:"function"`
	Region    string `toml:"region"`
	OutputDir string `toml:"output_dir"`
}

// Load reads the file named by ADK_SETTINGS or, if that's not set, the
// nearest adk.toml in the current working directory or its parents. Having no
// settings file at all is fine and yields empty Settings.
func Load() (*Settings, error) {
	if pathname := os.Getenv(FilenameEnv); pathname != "" {
		return Read(pathname)
	}
	pathname, err := fileutil.PathnameInParents(Filename)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	} else if err != nil {
		return nil, err
	}
	return Read(pathname)
}

// Read parses the settings file at pathname, rejecting any keys it doesn't
// understand so that typos don't pass silently.
func Read(pathname string) (*Settings, error) {
	s := &Settings{pathname: pathname}
	md, err := toml.DecodeFile(pathname, s)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, UnknownKeysError{pathname, keys}
	}
	return s, nil
}

// Function returns the code interpreter function to invoke: flag if it's
// given, else $ADK_CODE_INTERPRETER_FUNCTION, else what's in the settings file.
func (s *Settings) Function(flag string) string {
	return first(flag, os.Getenv(codeexecutors.ResourceNameEnv), s.CodeInterpreter.Function)
}

// OutputDir returns the directory to write output files to, defaulting to
// the current working directory.
func (s *Settings) OutputDir(flag string) string {
	return first(flag, s.CodeInterpreter.OutputDir, ".")
}

// Pathname returns where these settings were read from or the empty string
// if there was no settings file.
func (s *Settings) Pathname() string {
	return s.pathname
}

// Region returns the AWS region to use: flag if it's given, else whatever
// the environment says, else what's in the settings file. An empty result
// leaves the region up to the AWS SDK's shared configuration.
func (s *Settings) Region(flag string) string {
	return first(flag, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION"), s.CodeInterpreter.Region)
}

type UnknownKeysError struct {
	Pathname string
	Keys     []string
}

func (err UnknownKeysError) Error() string {
	return fmt.Sprintf("%s: unknown keys %s", err.Pathname, strings.Join(err.Keys, ", "))
}

func first(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
