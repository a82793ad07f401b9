package main

import (
	"github.com/wyag/git-go/internal/pathutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	// C is a simpler version of git's -C: the directory commands operate
	// from, defaulting to the process's working directory.
	// https://git-scm.com/docs/git#Documentation/git.txt--Cltpathgt
	C pflag.Value
}

func newRootCmd(cwd string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "git-go",
		Short:         "git implementation in pure Go",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cfg := &globalFlags{
		C: pathutil.NewDirPathFlagWithDefault(cwd),
	}
	// like the other single-letter flags, -C is registered with its
	// shorthand doubling as the long name, pending shorthand-only
	// support in pflag: https://github.com/spf13/pflag/pull/256
	cmd.PersistentFlags().VarP(cfg.C, "C", "C",
		"Run as if git-go was started in the provided path instead of the current working directory.")

	// porcelain
	cmd.AddCommand(newInitCmd(cfg))
	cmd.AddCommand(newLogCmd(cfg))
	cmd.AddCommand(newCheckoutCmd(cfg))
	cmd.AddCommand(newTagCmd(cfg))

	// plumbing
	cmd.AddCommand(newCatFileCmd(cfg))
	cmd.AddCommand(newHashObjectCmd(cfg))
	cmd.AddCommand(newLsTreeCmd(cfg))
	cmd.AddCommand(newShowRefCmd(cfg))
	cmd.AddCommand(newRevParseCmd(cfg))

	return cmd
}
