package main

import (
	"io"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newRevParseCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rev-parse <name>",
		Short: "Resolve a name to an object id",
		Args:  cobra.ExactArgs(1),
	}
	wyagType := cmd.Flags().String("wyag-type", "", "Type-follow the resolved object to the given type (blob, tree, commit, tag)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return revParseCmd(cmd.OutOrStdout(), cfg, args[0], *wyagType)
	}
	return cmd
}

func revParseCmd(out io.Writer, cfg *globalFlags, name, wantType string) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	var oid ginternals.Oid
	if wantType != "" {
		typ, terr := object.NewTypeFromString(wantType)
		if terr != nil {
			return xerrors.Errorf("%s: %w", wantType, terr)
		}
		oid, err = r.ResolveToKind(name, typ, true)
	} else {
		oid, err = r.Resolve(name)
	}
	if err != nil {
		return err
	}

	fprintln(out, oid.String())
	return nil
}
