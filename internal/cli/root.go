package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "auh",
	Short: "Install and maintain AUR packages with bounded parallelism",
	Long: `auh installs Arch User Repository packages: it clones each package's build
recipe, builds it with makepkg, and installs it, running several packages in
parallel under a hard worker cap.

When the primary AUR endpoint is unreachable (or with --github), packages are
fetched from the branch-per-package GitHub mirror instead.

Examples:
	# Install packages from the AUR
	auh install yay pikaur

	# Force the GitHub mirror
	auh install --github yay

	# Update a package, or the whole system
	auh update yay
	auh update

	# Count installed packages that come from the AUR
	auh sync`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints outbound requests and executed commands)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
