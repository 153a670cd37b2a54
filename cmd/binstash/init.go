package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binstash/binstash/internal/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			r, err := repo.Init(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "initialized empty repository in %s\n", r.Root())
			return nil
		},
	}
}
