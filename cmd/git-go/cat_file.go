package main

import (
	"errors"
	"io"
	"strconv"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCatFileCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat-file [<type>] <object>",
		Short: "Provide content or type and size information for repository objects",
		Args:  cobra.RangeArgs(1, 2),
	}

	typeOnly := cmd.Flags().BoolP("t", "t", false, "Instead of the content, show the object type identified by <object>.")
	sizeOnly := cmd.Flags().BoolP("s", "s", false, "Instead of the content, show the object size identified by <object>.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p := catFileParams{objectName: args[0]}
		if len(args) == 2 {
			p.typ = args[0]
			p.objectName = args[1]
		}
		return catFileCmd(cmd.OutOrStdout(), cfg, p, *typeOnly, *sizeOnly)
	}
	return cmd
}

type catFileParams struct {
	objectName string
	typ        string
}

func catFileCmd(out io.Writer, cfg *globalFlags, p catFileParams, typeOnly, sizeOnly bool) (err error) {
	if typeOnly && sizeOnly {
		return errors.New("option -s not supported with option -t")
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	var oid ginternals.Oid
	if p.typ != "" {
		typ, terr := object.NewTypeFromString(p.typ)
		if terr != nil {
			return xerrors.Errorf("%s: %w", p.typ, terr)
		}
		oid, err = r.ResolveToKind(p.objectName, typ, true)
	} else {
		oid, err = r.Resolve(p.objectName)
	}
	if err != nil {
		return err
	}

	o, err := r.GetObject(oid)
	if err != nil {
		return err
	}

	switch {
	case sizeOnly:
		fprintln(out, strconv.Itoa(o.Size()))
	case typeOnly:
		fprintln(out, o.Type().String())
	default:
		_, err = out.Write(o.Bytes())
	}
	return err
}
