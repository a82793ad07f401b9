package main

import (
	"fmt"
	"io"
	"path"

	git "github.com/wyag/git-go"
	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newLsTreeCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls-tree <tree-ish>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
	}
	recurse := cmd.Flags().BoolP("r", "r", false, "Recurse into sub-trees")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return lsTreeCmd(cmd.OutOrStdout(), cfg, args[0], *recurse)
	}
	return cmd
}

func lsTreeCmd(out io.Writer, cfg *globalFlags, name string, recurse bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	oid, err := r.ResolveToKind(name, object.TypeTree, true)
	if err != nil {
		return err
	}

	return lsTree(out, r, oid, "", recurse)
}

func lsTree(out io.Writer, r *git.Repository, oid ginternals.Oid, prefix string, recurse bool) error {
	tree, err := r.GetTree(oid)
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		p := path.Join(prefix, e.Path)
		if recurse && e.Mode == object.ModeDirectory {
			if err := lsTree(out, r, e.ID, p, true); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%06o %s %s\t%s\n", e.Mode, e.Mode.ObjectType().String(), e.ID.String(), p)
	}
	return nil
}
