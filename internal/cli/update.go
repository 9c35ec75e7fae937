package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auh/internal/aur"
	"auh/internal/engine"
	"auh/internal/gitclone"
	"auh/internal/pacman"
)

var updateCmd = &cobra.Command{
	Use:   "update [packages...]",
	Short: "Update named packages, or the whole system",
	Long: `Update packages.

With no arguments, performs a full system upgrade (pacman -Syu). With package
names, each package the repositories carry is updated through the package
manager; packages the repositories do not carry are rebuilt from their AUR
recipe. A failed repository update is an error, it never silently falls back
to a rebuild.

Exit codes:
	0 = every update succeeded
	1 = at least one update failed
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		runner := newRunner(cfg)
		pac := pacman.New(runner)

		if len(args) == 0 {
			if err := pac.Upgrade(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		u := &engine.Updater{
			System:  pac,
			Catalog: aur.New(cfg.Source.AURURL, aur.WithVerbose(cfg.Runtime.Verbose, nil)),
			Git:     gitclone.New(runner),
			Build:   pacman.NewMakepkg(runner),
			Status:  statusPrinter(cfg),
		}

		failed := 0
		for _, name := range args {
			if err := u.UpdateOne(ctx, name); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
