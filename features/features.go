package features

import "github.com/src-bin/adk/ui"

// Feature attaches the Enabled method to strings so that feature flags may be
// checked in code with features.FlagName.Enabled(). By convention, the Go
// symbol and the identifier it refers to name the same thing and the
// identifier is the suffix of its ADK_ENABLE_* and ADK_DISABLE_* environment
// variables.
type Feature string

// Define all feature flags here and register them in init below.
const (
	CodeInterpreterOutputFiles Feature = "CODE_INTERPRETER_OUTPUT_FILES"
	CodeInterpreterSessions    Feature = "CODE_INTERPRETER_SESSIONS"
	CodeInterpreterStderr      Feature = "CODE_INTERPRETER_STDERR"
)

// Default is the process-wide Registry behind the package-level functions and
// Feature.Enabled. It's empty at startup except for the features registered
// by this package's init.
var Default = NewRegistry()

// Enabled reports whether the feature is enabled according to Default. The
// feature must be registered; asking about one that isn't is fatal.
func (f Feature) Enabled() bool {
	return ui.Must2(Default.IsEnabled(string(f)))
}

func (f Feature) String() string {
	return string(f)
}

// GetConfig calls Default.GetConfig.
func GetConfig(id string) (Config, bool) {
	return Default.GetConfig(id)
}

// IsEnabled calls Default.IsEnabled.
func IsEnabled(id string) (bool, error) {
	return Default.IsEnabled(id)
}

// Register calls Default.Register.
func Register(id string, cfg Config) {
	Default.Register(id, cfg)
}

func init() {
	Register(string(CodeInterpreterOutputFiles), Config{Stage: Stable, DefaultOn: true})
	Register(string(CodeInterpreterSessions), Config{Stage: WIP, DefaultOn: false})
	Register(string(CodeInterpreterStderr), Config{Stage: Experimental, DefaultOn: false})
}
