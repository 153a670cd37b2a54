package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binstash/binstash/internal/batch"
)

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <file>...",
		Short: "Print content checksums for the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sums, err := batch.ComputeChecksums(args)
			if err != nil {
				return err
			}
			for i, sum := range sums {
				fmt.Fprintf(os.Stdout, "%s  %s\n", sum, args[i])
			}
			return nil
		},
	}
}
