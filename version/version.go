package version

import "fmt"

var (
	Commit  = "0000000" // replaced at build time with the short Git commit; see Makefile
	Version = "1970.01" // replaced at build time with current computed version; see Makefile
)

// String returns the version and commit in the form printed by adk --version.
func String() string {
	return fmt.Sprintf("%s-%s", Version, Commit)
}
