package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/ui"
)

var (
	version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile string
	verbose bool
	noColor bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bakus",
		Short: "Rename completed downloads on a Bakus server",
		Long: `Bakus talks to a Bakus download server. It lists additions, queues new
magnet links, and renames finished downloads into library-friendly names:

  Movies:  "Title (Year).ext" and "Title (Year).<lang>.srt"
  TV:      "Title (Year) - s01e02[-e03][ - Episode Title].ext"

Titles, years, seasons, episode numbers and subtitle languages are guessed
from the file names and can be corrected with flags or interactively.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" {
				ui.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/bakus/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newAdditionsCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newRenameCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLanguagesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bakus %s\n", version)
		},
	}
}
