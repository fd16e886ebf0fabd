package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/odvcencio/wyag/pkg/repo"
)

const version = "0.1.0-dev"

// app carries the state shared by every subcommand: flag/env
// configuration and the logger built from it.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "wyag",
		Short:         "A content tracker built on a git-compatible loose object store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.v.GetString("log_level"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringP("dir", "C", ".", "run as if started in this directory")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	a.v.SetEnvPrefix("WYAG")
	a.v.AutomaticEnv()
	a.v.SetDefault("dir", ".")
	a.v.SetDefault("log_level", "warn")
	_ = a.v.BindPFlag("dir", root.PersistentFlags().Lookup("dir"))
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCatFileCmd(a))
	root.AddCommand(newHashObjectCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newLsTreeCmd(a))
	root.AddCommand(newCheckoutCmd(a))
	root.AddCommand(newRevParseCmd(a))

	return root
}

// openRepo opens the repository enclosing the configured directory.
func (a *app) openRepo() (*repo.Repo, error) {
	return repo.Open(a.v.GetString("dir"), repo.WithLogger(a.logger))
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wyag %s\n", version)
		},
	}
}
