package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auh/internal/pacman"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clear the package cache",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		pac := pacman.New(newRunner(cfg))
		if err := pac.CleanCache(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
