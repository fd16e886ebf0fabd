package main

import (
	"github.com/spf13/cobra"

	"github.com/odvcencio/wyag/pkg/object"
	"github.com/odvcencio/wyag/pkg/repo"
)

func newCatFileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "cat-file <type> <object>",
		Short:     "Provide content of repository objects",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(object.TypeBlob), string(object.TypeCommit), string(object.TypeTree)},
		RunE: func(cmd *cobra.Command, args []string) error {
			objType, err := object.ParseObjectType(args[0])
			if err != nil {
				return err
			}

			r, err := a.openRepo()
			if err != nil {
				return err
			}
			id, err := r.ResolveName(args[1])
			if err != nil {
				return err
			}

			data, err := repo.CatFile(r.Store, id, objType)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
