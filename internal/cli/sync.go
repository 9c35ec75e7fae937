package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auh/internal/aur"
	"auh/internal/engine"
	"auh/internal/flags"
	"auh/internal/pacman"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Count explicitly installed packages that come from the AUR",
	Long: `Count explicitly installed packages that the AUR knows about.

Every explicitly installed package (pacman -Qeq) is looked up in the AUR
catalog, up to --concurrency lookups at a time. Matches are listed one per
line, followed by a total. Packages the catalog cannot answer for are counted
as not from the AUR.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		pac := pacman.New(newRunner(cfg))

		names, err := pac.ExplicitlyInstalled(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		catalog := aur.New(cfg.Source.AURURL, aur.WithVerbose(cfg.Runtime.Verbose, nil))
		count, err := engine.CountAURPackages(ctx, names, catalog, cfg.Runtime.Concurrency, func(name string) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d explicitly installed packages come from the AUR\n", count, len(names))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, 4, "Concurrent catalog lookups (default: 4)")
}
