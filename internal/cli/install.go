package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"auh/internal/aur"
	"auh/internal/build"
	"auh/internal/config"
	"auh/internal/engine"
	"auh/internal/execx"
	"auh/internal/flags"
	"auh/internal/gitclone"
	"auh/internal/mirror"
	"auh/internal/pacman"
)

var cfg = config.New()

var installCmd = &cobra.Command{
	Use:   "install [packages...]",
	Short: "Build and install packages from the AUR",
	Long: `Build and install one or more packages from the Arch User Repository.

For each package, auh clones the build recipe, runs makepkg, and installs the
result. Packages already installed are skipped. Up to --concurrency packages
build at once.

Source selection:
	The primary AUR endpoint is probed once per run. If it does not answer, the
	run falls back to the branch-per-package GitHub mirror; --github selects the
	mirror without probing. Mirror builds skip PGP verification because mirror
	checkouts lack the maintainers' keyrings.

Output:
	Console output is controlled by --console-format (default: text).
	--out writes an aggregate JSON array or NDJSON stream to a file.
	NDJSON mode emits one JSON object per line: lifecycle Events with a "type"
	field (run.started, pkg.result, run.finished).

Exit codes:
	0 = every package installed (or was already installed)
	1 = at least one package failed, or the run could not start

Examples:
	auh install yay pikaur

	# Eight parallel builds
	auh install --concurrency 8 yay pikaur paru

	# Machine-readable stream
	auh install --no-console --out results.ndjson yay
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		eng := newInstallEngine(cfg)
		os.Exit(eng.Install(context.Background(), cfg, args))
	},
}

func newRunner(cfg *config.Config) execx.Runner {
	s := execx.System{}
	if cfg.Runtime.Verbose {
		s.Trace = os.Stderr
	}
	return s
}

// statusPrinter emits per-package progress to stderr, but only when the
// console is in text mode; structured consoles stay machine-clean.
func statusPrinter(cfg *config.Config) func(name, msg string) {
	if cfg.Output.NoConsole || cfg.Output.ConsoleFormat != "text" {
		return nil
	}
	return func(name, msg string) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, msg)
	}
}

func newInstallEngine(cfg *config.Config) *engine.Engine {
	runner := newRunner(cfg)
	pac := pacman.New(runner)
	catalog := aur.New(cfg.Source.AURURL, aur.WithVerbose(cfg.Runtime.Verbose, nil))

	job := &build.Job{
		State:        pac,
		Catalog:      catalog,
		Git:          gitclone.New(runner),
		Build:        pacman.NewMakepkg(runner),
		MirrorRemote: strings.TrimSuffix(cfg.Source.MirrorURL, ".git") + ".git",
		Status:       statusPrinter(cfg),
	}

	eng := engine.NewEngine(job, catalog.Probe)
	eng.NewPreflight = func(ctx context.Context) build.BranchChecker {
		c, err := mirror.New(cfg.Source.MirrorURL, mirror.Token(ctx), mirror.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: mirror preflight unavailable: %v\n", err)
			return nil
		}
		return c
	}
	return eng
}

func init() {
	rootCmd.AddCommand(installCmd)

	// Source
	installCmd.Flags().BoolVar(&cfg.Source.ForceMirror, flags.FlagGitHub, false, "Install from the GitHub mirror without probing the AUR")
	installCmd.Flags().StringVar(&cfg.Source.AURURL, flags.FlagAURURL, cfg.Source.AURURL, "Base URL of the AUR endpoint")
	installCmd.Flags().StringVar(&cfg.Source.MirrorURL, flags.FlagMirror, cfg.Source.MirrorURL, "Branch-per-package mirror repository (github.com owner/repo URL)")

	// Output
	installCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	installCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	installCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	installCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out)")

	// Runtime
	installCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, 4, "Concurrent build workers (default: 4)")
}
