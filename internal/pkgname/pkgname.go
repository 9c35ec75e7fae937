// Package pkgname validates untrusted package-name strings.
//
// Names are later passed as arguments to external tools (pacman, git,
// makepkg) and used as mirror branch selectors, so the accepted alphabet is
// deliberately narrow. Commands are always invoked with a discrete argument
// vector and never through a shell; this check is a defense-in-depth input
// contract on top of that, not the sole safeguard.
package pkgname

// Valid reports whether name is a well-formed package name: non-empty and
// composed solely of ASCII alphanumerics, '-', '_', '.', and '+'.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == '+':
		default:
			return false
		}
	}
	return true
}
