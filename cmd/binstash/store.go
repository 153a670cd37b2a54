package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/binstash/binstash/internal/batch"
	"github.com/binstash/binstash/internal/config"
	"github.com/binstash/binstash/internal/progress"
	"github.com/binstash/binstash/internal/repo"
	"github.com/binstash/binstash/internal/stats"
	"github.com/binstash/binstash/internal/ui"
)

const (
	defaultLevel     = 7
	defaultWindowLog = 27
)

func newStoreCmd(cfg config.Config, quiet *bool) *cobra.Command {
	var (
		dir      string
		level    int
		window   uint32
		workers  uint32
		excludes []string
	)

	cmd := &cobra.Command{
		Use:   "store <snapshot>",
		Short: "Pack a file tree into a new snapshot",
		Long: "Packs every regular file under the source directory into a single " +
			"compressed pack, records per-file content checksums in the pack " +
			"index, and tags the result with the given snapshot name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot := args[0]

			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			rules, err := repo.NewRuleSet(excludes)
			if err != nil {
				return err
			}

			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1")
			}

			collector := stats.NewCollector()
			enabled := !*quiet && isatty.IsTerminal(os.Stderr.Fd())

			// The object count is not known until the scan runs, so
			// the bar total is filled in by the first checkpoint.
			var reporter progress.Reporter = progress.Discard
			var bar progress.Reporter
			if enabled {
				reporter = progress.Func(func(completed, remaining int) {
					if bar == nil {
						bar = progress.NewBar(os.Stderr, completed+remaining, "packing", true)
					}
					bar.Checkpoint(completed, remaining)
				})
			}

			result, err := r.CreatePack(repo.CreateOptions{
				Snapshot:  snapshot,
				SourceDir: dir,
				Compression: batch.CompressionOptions{
					Level:      level,
					WindowLog:  window,
					NumWorkers: workers,
				},
				Rules:    rules,
				Reporter: reporter,
				Stats:    collector,
			})
			if err != nil {
				return err
			}

			if !*quiet {
				snap := collector.Snapshot()
				fmt.Fprintf(os.Stdout, "stored %s: %s files, %s -> %s (%.2fx) in %s\n",
					result.Pack,
					ui.FormatCount(int64(result.FileCount)),
					ui.FormatBytes(int64(result.BytesPacked)),
					ui.FormatBytes(result.BytesWritten),
					snap.Ratio(),
					ui.FormatDuration(snap.Elapsed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "source directory to pack")
	cmd.Flags().IntVar(&level, "level", configuredLevel(cfg), "zstd compression level")
	cmd.Flags().Uint32Var(&window, "window-log", configuredWindowLog(cfg), "zstd window log (window size = 1<<N)")
	cmd.Flags().Uint32Var(&workers, "workers", configuredWorkers(cfg), "total compression threads (1 = single-threaded)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "exclude files matching pattern (repeatable)")

	return cmd
}

func configuredLevel(cfg config.Config) int {
	if cfg.Defaults.Level != nil {
		return *cfg.Defaults.Level
	}
	return defaultLevel
}

func configuredWindowLog(cfg config.Config) uint32 {
	if cfg.Defaults.WindowLog != nil {
		return *cfg.Defaults.WindowLog
	}
	return defaultWindowLog
}

func configuredWorkers(cfg config.Config) uint32 {
	if cfg.Defaults.Workers != nil {
		return *cfg.Defaults.Workers
	}
	return uint32(runtime.NumCPU())
}
