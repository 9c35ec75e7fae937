package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auh/internal/flags"
	"auh/internal/pacman"
	"auh/internal/pkgname"
)

var removeAutoremove bool

var removeCmd = &cobra.Command{
	Use:   "remove [packages...]",
	Short: "Uninstall packages",
	Long: `Uninstall one or more packages.

Packages that are not installed are skipped with a note. With --autoremove,
dependencies that no other package needs are removed as well.

Exit codes:
	0 = every named package was removed or was not installed
	1 = at least one removal failed
`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		pac := pacman.New(newRunner(cfg))

		failed := 0
		for _, name := range args {
			if !pkgname.Valid(name) {
				fmt.Fprintf(os.Stderr, "Error: invalid package name %q\n", name)
				failed++
				continue
			}
			if !pac.Installed(ctx, name) {
				fmt.Fprintf(os.Stderr, "%s is not installed; skipping\n", name)
				continue
			}
			if err := pac.Remove(ctx, name, removeAutoremove); err != nil {
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
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVar(&removeAutoremove, flags.FlagAutoremove, false, "Also remove dependencies no other package needs")
}
