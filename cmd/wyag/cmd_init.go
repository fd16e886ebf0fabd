package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/wyag/pkg/repo"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new, empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.v.GetString("dir")
			if len(args) > 0 {
				path = resolveAgainst(path, args[0])
			}

			r, err := repo.Init(path, repo.WithLogger(a.logger))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty wyag repository in %s\n", r.WyagDir+string(filepath.Separator))
			return nil
		},
	}
}

// resolveAgainst interprets a path argument relative to the -C directory.
func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
