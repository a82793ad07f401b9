package main

import (
	"io"
	"strings"

	git "github.com/wyag/git-go"
	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
)

func newTagCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag [name] [object]",
		Short: "Create or list tags",
		Args:  cobra.RangeArgs(0, 2),
	}
	annotate := cmd.Flags().BoolP("a", "a", false, "Create an annotated tag object instead of a lightweight ref")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name, objectName := "", ginternals.Head
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			objectName = args[1]
		}
		return tagCmd(cmd.OutOrStdout(), cfg, name, objectName, *annotate)
	}
	return cmd
}

func tagCmd(out io.Writer, cfg *globalFlags, name, objectName string, annotate bool) (err error) {
	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	if name == "" {
		return listTags(out, r)
	}

	oid, err := r.Resolve(objectName)
	if err != nil {
		return err
	}

	if annotate {
		target, err := r.GetObject(oid)
		if err != nil {
			return err
		}
		tag, err := object.NewTag(&object.TagParams{
			Target: target,
			Name:   name,
			Tagger: object.NewSignature("git-go", "git-go@localhost"),
		})
		if err != nil {
			return err
		}
		oid, err = r.WriteObject(tag.ToObject())
		if err != nil {
			return err
		}
	}

	return r.WriteReferenceSafe(ginternals.NewReference(ginternals.LocalTagFullName(name), oid))
}

func listTags(out io.Writer, r *git.Repository) error {
	const prefix = ginternals.RefsTagsPath + "/"
	return r.WalkReferences(func(ref *ginternals.Reference) error {
		if !strings.HasPrefix(ref.Name(), prefix) {
			return nil
		}
		fprintln(out, strings.TrimPrefix(ref.Name(), prefix))
		return nil
	})
}
