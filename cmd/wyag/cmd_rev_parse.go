package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRevParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rev-parse <name>",
		Short: "Print the object id a name resolves to",
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
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
