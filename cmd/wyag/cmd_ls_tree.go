package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/wyag/pkg/repo"
)

func newLsTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <object>",
		Short: "Pretty-print a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			id, err := r.ResolveName(args[0])
			if err != nil {
				return err
			}

			rows, err := repo.ListTree(r.Store, id)
			if err != nil {
				return err
			}
			return repo.WriteTreeRows(cmd.OutOrStdout(), rows)
		},
	}
}
