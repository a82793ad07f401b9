package main

import (
	"fmt"
	"io"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newLogCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [commit]",
		Short: "Print a Graphviz digraph of the commit history reachable from commit",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		start := ginternals.Head
		if len(args) > 0 {
			start = args[0]
		}
		return logCmd(cmd.OutOrStdout(), cfg, start)
	}

	return cmd
}

func logCmd(out io.Writer, cfg *globalFlags, name string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveToKind(name, object.TypeCommit, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "digraph wyaglog{")
	fmt.Fprintln(out, "  node[shape=rect]")
	err = r.WalkHistory(oid, func(c *object.Commit) error {
		fmt.Fprintf(out, "  c_%s [label=%q]\n", c.ID().String(), shortMessage(c.Message()))
		for _, p := range c.ParentIDs() {
			fmt.Fprintf(out, "  c_%s -> c_%s\n", c.ID().String(), p.String())
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "}")
	return nil
}

// shortMessage returns the first line of a commit message, the way
// `git log --oneline` summarizes a commit.
func shortMessage(msg string) string {
	for i, r := range msg {
		if r == '\n' {
			return msg[:i]
		}
	}
	return msg
}
