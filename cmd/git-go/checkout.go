package main

import (
	"io/fs"
	"os"
	"path/filepath"

	git "github.com/wyag/git-go"
	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/errutil"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
)

func newCheckoutCmd(cfg *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout <commit> <path>",
		Short: "Materialize the tree of a commit into an empty directory",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return checkoutCmd(cfg, args[0], args[1])
	}
	return cmd
}

func checkoutCmd(cfg *globalFlags, commitish, dest string) (err error) {
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(cfg.C.String(), dest)
	}

	r, err := loadRepository(cfg)
	if err != nil {
		return err
	}
	defer errutil.Close(r, &err)

	treeOid, err := r.ResolveToKind(commitish, object.TypeTree, true)
	if err != nil {
		return err
	}

	info, statErr := os.Stat(dest)
	switch {
	case statErr == nil:
		if !info.IsDir() {
			return xerrors.Errorf("%s: %w", dest, git.ErrNotADir)
		}
		entries, err := os.ReadDir(dest)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return xerrors.Errorf("%s: %w", dest, git.ErrRepoNotEmpty)
		}
	case os.IsNotExist(statErr):
		if err := os.MkdirAll(dest, 0o750); err != nil {
			return err
		}
	default:
		return statErr
	}

	return checkoutTree(r, treeOid, dest)
}

// checkoutTree recursively materializes the tree at oid under dest.
// Symlinks (mode 120000) are written as real symlinks when the host
// supports it, falling back to a regular file otherwise; submodules
// (gitlinks) are skipped, since submodule recursion is out of scope.
func checkoutTree(r *git.Repository, oid ginternals.Oid, dest string) error {
	tree, err := r.GetTree(oid)
	if err != nil {
		return err
	}

	for _, e := range tree.Entries() {
		p := filepath.Join(dest, e.Path)

		switch e.Mode {
		case object.ModeDirectory:
			if err := os.MkdirAll(p, 0o750); err != nil {
				return err
			}
			if err := checkoutTree(r, e.ID, p); err != nil {
				return err
			}
		case object.ModeGitLink:
			continue
		case object.ModeSymLink:
			b, err := r.GetBlob(e.ID)
			if err != nil {
				return err
			}
			if err := os.Symlink(string(b.BytesCopy()), p); err != nil {
				if err := os.WriteFile(p, b.BytesCopy(), 0o644); err != nil {
					return err
				}
			}
		default:
			b, err := r.GetBlob(e.ID)
			if err != nil {
				return err
			}
			mode := fs.FileMode(0o644)
			if e.Mode == object.ModeExecutable {
				mode = 0o755
			}
			if err := os.WriteFile(p, b.BytesCopy(), mode); err != nil {
				return err
			}
		}
	}
	return nil
}
