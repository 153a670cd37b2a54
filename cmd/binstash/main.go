package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/binstash/binstash/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		verbose     bool
		quiet       bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "binstash",
		Short:         "Pack versioned file trees into compact, deduplicated archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			if quiet {
				level = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println("binstash", version)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and non-error output")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "binstash: config: %v\n", err)
		return 1
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newStoreCmd(cfg, &quiet),
		newListCmd(),
		newChecksumCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "binstash: %v\n", err)
		return 1
	}
	return 0
}
