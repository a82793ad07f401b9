// Package fsbackend contains an implementation of the backend.Backend
// interface backed by an afero.Fs, so the object store and reference
// store can be exercised against an in-memory filesystem in tests as
// well as the real one in production.
package fsbackend

import (
	"os"
	"path/filepath"

	"github.com/wyag/git-go/backend"
	"github.com/wyag/git-go/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// we make sure the struct implements the interface
var _ backend.Backend = (*Backend)(nil)

// Backend is a Backend implementation that uses a filesystem (real or
// in-memory) to store objects and references.
type Backend struct {
	// root is the absolute path to the gitdir (".git"), rooted in fs
	root string
	fs   afero.Fs
}

// New returns a new Backend rooted at dotGitPath, reading and writing
// through fs. Passing afero.NewOsFs() gives the real filesystem.
func New(dotGitPath string, fs afero.Fs) *Backend {
	return &Backend{
		root: dotGitPath,
		fs:   fs,
	}
}

// Close is a no-op: the backend holds no file descriptors or other
// resources between calls.
func (b *Backend) Close() error {
	return nil
}

// Init initializes a repository, creating the directories and files
// git expects in a fresh gitdir. Calling it on an existing repository is safe; it
// will not overwrite a config that's already there.
func (b *Backend) Init() error {
	dirs := []string{
		"branches",
		gitpath.ObjectsPath,
		gitpath.RefsTagsPath,
		gitpath.RefsHeadsPath,
	}
	for _, d := range dirs {
		fullPath := b.systemPath(d)
		if err := b.fs.MkdirAll(fullPath, 0o750); err != nil {
			return xerrors.Errorf("could not create directory %s: %w", d, err)
		}
	}

	descPath := b.systemPath(gitpath.DescriptionPath)
	desc := []byte("Unnamed repository; edit this file 'description' to name the repository.\n")
	if err := afero.WriteFile(b.fs, descPath, desc, 0o644); err != nil {
		return xerrors.Errorf("could not create %s: %w", gitpath.DescriptionPath, err)
	}

	if err := b.setDefaultCfg(); err != nil {
		return xerrors.Errorf("could not set the default config: %w", err)
	}

	return nil
}

// systemPath returns an absolute, host-native path for name, a
// slash-separated path relative to the gitdir.
// Ex.: On windows "refs/heads/master" becomes "<root>\refs\heads\master"
func (b *Backend) systemPath(name string) string {
	switch os.PathSeparator {
	case '/':
		return filepath.Join(b.root, name)
	default:
		return filepath.Join(b.root, filepath.FromSlash(name))
	}
}
