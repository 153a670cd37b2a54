package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binstash/binstash/internal/repo"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [pack...]",
		Short: "Print the snapshots available in the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Find(".")
			if err != nil {
				return err
			}

			rows, err := r.Snapshots(args)
			if err != nil {
				return err
			}

			for _, row := range rows {
				fmt.Fprintln(os.Stdout, repo.FormatSnapshot(format, row))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "%s",
		"row format; placeholders: %s qualified snapshot, %t tag, "+
			"%h human size, %b size in bytes, %n file count")

	return cmd
}
