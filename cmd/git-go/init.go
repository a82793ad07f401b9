package main

import (
	"path/filepath"

	git "github.com/wyag/git-go"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newInitCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty git repository",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
		dir := cfg.C.String()
		if len(args) > 0 {
			if filepath.IsAbs(args[0]) {
				dir = args[0]
			} else {
				dir = filepath.Join(cfg.C.String(), args[0])
			}
		}

		r, err := git.InitRepository(dir)
		if err != nil {
			return err
		}
		defer errutil.Close(r, &err)

		fprintln(cmd.OutOrStdout(), "Initialized empty Git repository in", r.GitDir())
		return nil
	}

	return cmd
}
