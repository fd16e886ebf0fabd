package main

import (
	"github.com/spf13/cobra"
)

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <commit> <path>",
		Short: "Checkout a commit or tree inside of an empty directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			return r.Checkout(args[0], resolveAgainst(a.v.GetString("dir"), args[1]))
		},
	}
}
