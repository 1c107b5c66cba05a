package features

import "fmt"

// Stage is how far along a feature is in its rollout.
type Stage int

// Stage constants are ordered from least to most mature.
const (
	WIP Stage = iota
	Experimental
	Stable
)

func (s Stage) String() string {
	switch s {
	case WIP:
		return "WIP"
	case Experimental:
		return "EXPERIMENTAL"
	case Stable:
		return "STABLE"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Config is a feature's declared rollout state.
type Config struct {
	Stage     Stage
	DefaultOn bool
}
