/*
Package features gates functionality by rollout stage.

Every feature is registered with a Stage (WIP, EXPERIMENTAL, or STABLE) and
a default. At runtime the default may be overridden from the environment:

	ADK_ENABLE_<FEATURE>=true
	ADK_DISABLE_<FEATURE>=true

To add a new feature,
1. add a Feature constant in features.go
2. register it in that file's init

then circuit-break functionality behind it:

	if features.CodeInterpreterStderr.Enabled() {
		...
	}

The first time a WIP or EXPERIMENTAL feature turns out to be enabled, a
warning like "[EXPERIMENTAL] feature CODE_INTERPRETER_STDERR is enabled." is
printed, once per process.
*/
package features
