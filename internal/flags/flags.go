// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that reference flags in help text or diagnostics.
// IMPORTANT: These are flag *names* without leading dashes.
package flags

const (
	// Source
	FlagGitHub = "github"
	FlagAURURL = "aur-url"
	FlagMirror = "mirror"

	// Runtime
	FlagConcurrency = "concurrency"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagNoConsole     = "no-console"

	// Remove
	FlagAutoremove = "autoremove"
)
