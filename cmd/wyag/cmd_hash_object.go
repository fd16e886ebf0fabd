package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/wyag/pkg/object"
	"github.com/odvcencio/wyag/pkg/repo"
)

func newHashObjectCmd(a *app) *cobra.Command {
	var typeName string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object [-t type] [-w] <path>",
		Short: "Compute object ID and optionally create an object from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objType, err := object.ParseObjectType(typeName)
			if err != nil {
				return err
			}

			path := resolveAgainst(a.v.GetString("dir"), args[0])
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			var store *object.Store
			if write {
				r, err := a.openRepo()
				if err != nil {
					return err
				}
				store = r.Store
			}

			h, err := repo.HashObject(store, objType, data)
			if err != nil {
				return err
			}
			a.logger.Debug("hashed object", zap.String("path", path), zap.String("type", string(objType)), zap.Bool("written", write))
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", string(object.TypeBlob), "object type (blob, commit, tree)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the database")

	return cmd
}
