package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/odvcencio/wyag/pkg/repo"
)

func newLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "log [commit]",
		Short: "Display history of a given commit as a Graphviz digraph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "HEAD"
			if len(args) > 0 {
				start = args[0]
			}

			r, err := a.openRepo()
			if err != nil {
				return err
			}
			id, err := r.ResolveName(start)
			if err != nil {
				return err
			}

			edges, err := repo.LogGraph(r.Store, id)
			if err != nil {
				return err
			}
			a.logger.Debug("walked ancestry", zap.String("start", string(id)), zap.Int("edges", len(edges)))
			return repo.WriteGraphviz(cmd.OutOrStdout(), edges)
		},
	}
}
