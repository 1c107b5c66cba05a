package features

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/src-bin/adk/ui"
)

// Override environment variables are these prefixes followed by the feature
// identifier, verbatim, e.g. ADK_ENABLE_CODE_INTERPRETER_STDERR=true.
const (
	DisablePrefix = "ADK_DISABLE_"
	EnablePrefix  = "ADK_ENABLE_"
)

// ErrInvalidArgument is matched (via errors.Is) by errors caused by asking
// about a feature that was never registered.
var ErrInvalidArgument = errors.New("invalid argument")

// UnknownFeatureError is returned by IsEnabled for a feature identifier that
// hasn't been registered. Features must be declared before they're queried so
// that a typo can't quietly read as "disabled."
type UnknownFeatureError string

func (err UnknownFeatureError) Error() string {
	return fmt.Sprintf("feature %s is not registered", string(err))
}

func (UnknownFeatureError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Registry maps feature identifiers to their declared Config and remembers
// which features have already warned about being enabled. It's not safe for
// concurrent mutation; register everything at startup, before concurrent
// reads begin.
type Registry struct {

	// LookupEnv finds override environment variables. It defaults to
	// os.LookupEnv and may be replaced, e.g. in tests.
	LookupEnv func(string) (string, bool)

	// Warn receives the one-time "[STAGE] feature ID is enabled." message
	// for WIP and EXPERIMENTAL features. It defaults to ui.Warn, which prints
	// even in --quiet mode.
	Warn func(string)

	configs map[string]Config
	warned  map[string]struct{}
}

// NewRegistry returns an empty Registry that reads overrides from the
// process environment and warns via the ui package.
func NewRegistry() *Registry {
	return &Registry{
		LookupEnv: os.LookupEnv,
		Warn:      func(s string) { ui.Warn(s) },
		configs:   make(map[string]Config),
		warned:    make(map[string]struct{}),
	}
}

// GetConfig returns the Config registered for id and true or, if id was never
// registered, the zero Config and false.
func (r *Registry) GetConfig(id string) (Config, bool) {
	cfg, ok := r.configs[id]
	return cfg, ok
}

// IDs returns every registered feature identifier, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.configs))
	for id := range r.configs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsEnabled reports whether the feature identified by id is enabled.
//
// ADK_ENABLE_<id> wins over ADK_DISABLE_<id>, which wins over the declared
// default. The first time a WIP or EXPERIMENTAL feature is found to be
// enabled, a warning is emitted; STABLE features never warn.
func (r *Registry) IsEnabled(id string) (bool, error) {
	cfg, ok := r.configs[id]
	if !ok {
		return false, UnknownFeatureError(id)
	}

	enabled := cfg.DefaultOn
	if r.truthy(EnablePrefix + id) {
		enabled = true
	} else if r.truthy(DisablePrefix + id) {
		enabled = false
	}

	if enabled && cfg.Stage != Stable {
		if _, ok := r.warned[id]; !ok {
			r.warned[id] = struct{}{}
			if r.Warn != nil {
				r.Warn(fmt.Sprintf("[%s] feature %s is enabled.", cfg.Stage, id))
			}
		}
	}

	return enabled, nil
}

// Register declares the feature identified by id, replacing any Config that
// was previously registered for it. The identifier isn't validated.
func (r *Registry) Register(id string, cfg Config) {
	r.configs[id] = cfg
}

// ResetForTesting forgets every registered feature and every warning.
//
// This is for testing purposes only.
func (r *Registry) ResetForTesting() {
	r.configs = make(map[string]Config)
	r.ResetWarningsForTesting()
}

// ResetWarningsForTesting forgets which features have already warned so that
// they'll warn again.
//
// This is for testing purposes only.
func (r *Registry) ResetWarningsForTesting() {
	r.warned = make(map[string]struct{})
}

func (r *Registry) truthy(name string) bool {
	lookupEnv := r.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	value, ok := lookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(value)
	return err == nil && b
}
