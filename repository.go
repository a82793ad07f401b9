// Package git implements a minimal, local content-tracking system
// compatible on-disk with the Git object and reference model.
package git

import (
	"os"
	"path/filepath"

	"github.com/wyag/git-go/backend"
	"github.com/wyag/git-go/backend/fsbackend"
	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"github.com/wyag/git-go/internal/gitpath"
	"github.com/spf13/afero"
	"golang.org/x/xerrors"
)

// Repository ties a working tree to the object and reference database
// rooted at its .git directory.
type Repository struct {
	workTree string
	gitDir   string
	b        backend.Backend
}

// WorkTree returns the absolute path of the repository's working tree
func (r *Repository) WorkTree() string {
	return r.workTree
}

// GitDir returns the absolute path of the repository's .git directory
func (r *Repository) GitDir() string {
	return r.gitDir
}

// Close releases any resource held by the repository's backend
func (r *Repository) Close() error {
	return r.b.Close()
}

// InitRepository creates a new repository rooted at workTree.
// workTree may not exist yet (it is created), or may be an existing
// directory whose .git is absent or empty. A non-empty .git fails
// ErrRepoNotEmpty; a workTree or .git that exists but isn't a directory
// fails ErrNotADir.
func InitRepository(workTree string) (*Repository, error) {
	return InitRepositoryFS(workTree, afero.NewOsFs())
}

// InitRepositoryFS is InitRepository against an arbitrary afero.Fs, so
// repository creation can be exercised against afero.NewMemMapFs() in
// tests without touching the real filesystem.
func InitRepositoryFS(workTree string, fs afero.Fs) (*Repository, error) {
	info, err := fs.Stat(workTree)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, xerrors.Errorf("%s: %w", workTree, ErrNotADir)
		}
		empty, err := dirIsEmptyOrAbsent(fs, filepath.Join(workTree, gitpath.DotGitPath))
		if err != nil {
			return nil, err
		}
		if !empty {
			return nil, xerrors.Errorf("%s: %w", workTree, ErrRepoNotEmpty)
		}
	case os.IsNotExist(err):
		if err := fs.MkdirAll(workTree, 0o750); err != nil {
			return nil, xerrors.Errorf("could not create %s: %w", workTree, err)
		}
	default:
		return nil, xerrors.Errorf("could not stat %s: %w", workTree, err)
	}

	gitDir := filepath.Join(workTree, gitpath.DotGitPath)
	b := fsbackend.New(gitDir, fs)
	if err := b.Init(); err != nil {
		return nil, xerrors.Errorf("could not initialize repository: %w", err)
	}

	head := ginternals.NewSymbolicReference(ginternals.Head, ginternals.LocalBranchFullName(ginternals.Master))
	if err := b.WriteReference(head); err != nil {
		return nil, xerrors.Errorf("could not write HEAD: %w", err)
	}

	return &Repository{workTree: workTree, gitDir: gitDir, b: b}, nil
}

// dirIsEmptyOrAbsent returns whether path doesn't exist, or exists as an
// empty directory.
func dirIsEmptyOrAbsent(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, xerrors.Errorf("could not stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, xerrors.Errorf("%s: %w", path, ErrNotADir)
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return false, xerrors.Errorf("could not list %s: %w", path, err)
	}
	return len(entries) == 0, nil
}

// OpenRepository opens an existing repository rooted at workTree.
// ErrNotARepo is returned if workTree/.git isn't a directory;
// ErrBadVersion is returned if its config's core.repositoryformatversion
// isn't 0.
func OpenRepository(workTree string) (*Repository, error) {
	return OpenRepositoryFS(workTree, afero.NewOsFs())
}

// OpenRepositoryFS is OpenRepository against an arbitrary afero.Fs
func OpenRepositoryFS(workTree string, fs afero.Fs) (*Repository, error) {
	gitDir := filepath.Join(workTree, gitpath.DotGitPath)
	info, err := fs.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return nil, xerrors.Errorf("%s: %w", workTree, ErrNotARepo)
	}

	b := fsbackend.New(gitDir, fs)
	version, err := b.RepositoryFormatVersion()
	if err != nil {
		return nil, xerrors.Errorf("could not read repository config: %w", err)
	}
	if version != 0 {
		return nil, xerrors.Errorf("repositoryformatversion %d: %w", version, ErrBadVersion)
	}

	return &Repository{workTree: workTree, gitDir: gitDir, b: b}, nil
}

// FindRepository ascends from path, returning the repository rooted at
// the first ancestor (including path) whose .git is a directory.
// ErrRepoNotFound is returned once the filesystem root is reached.
func FindRepository(path string) (*Repository, error) {
	return FindRepositoryFS(path, afero.NewOsFs())
}

// FindRepositoryFS is FindRepository against an arbitrary afero.Fs
func FindRepositoryFS(path string, fs afero.Fs) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, xerrors.Errorf("could not resolve %s: %w", path, err)
	}

	for {
		info, err := fs.Stat(filepath.Join(abs, gitpath.DotGitPath))
		if err == nil && info.IsDir() {
			return OpenRepositoryFS(abs, fs)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, xerrors.Errorf("%s: %w", path, ErrRepoNotFound)
		}
		abs = parent
	}
}

// GetObject returns the object stored under oid
func (r *Repository) GetObject(oid ginternals.Oid) (*object.Object, error) {
	return r.b.Object(oid)
}

// WriteObject persists o in the object database and returns its oid
func (r *Repository) WriteObject(o *object.Object) (ginternals.Oid, error) {
	return r.b.WriteObject(o)
}

// GetBlob resolves oid and parses it as a Blob
func (r *Repository) GetBlob(oid ginternals.Oid) (*object.Blob, error) {
	o, err := r.GetObject(oid)
	if err != nil {
		return nil, err
	}
	return o.AsBlob(), nil
}

// GetTree resolves oid and parses it as a Tree
func (r *Repository) GetTree(oid ginternals.Oid) (*object.Tree, error) {
	o, err := r.GetObject(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTree()
}

// GetCommit resolves oid and parses it as a Commit
func (r *Repository) GetCommit(oid ginternals.Oid) (*object.Commit, error) {
	o, err := r.GetObject(oid)
	if err != nil {
		return nil, err
	}
	return o.AsCommit()
}

// GetTag resolves oid and parses it as a Tag
func (r *Repository) GetTag(oid ginternals.Oid) (*object.Tag, error) {
	o, err := r.GetObject(oid)
	if err != nil {
		return nil, err
	}
	return o.AsTag()
}

// GetReference returns the stored reference with the given name
func (r *Repository) GetReference(name string) (*ginternals.Reference, error) {
	return r.b.Reference(name)
}

// WriteReference writes ref to the reference store, overwriting any
// reference that already has the same name
func (r *Repository) WriteReference(ref *ginternals.Reference) error {
	return r.b.WriteReference(ref)
}

// WriteReferenceSafe writes ref to the reference store.
// ginternals.ErrRefExists is returned if a reference with the same name
// already exists
func (r *Repository) WriteReferenceSafe(ref *ginternals.Reference) error {
	return r.b.WriteReferenceSafe(ref)
}

// WalkReferences runs f on every reference stored under refs/, in
// lexical order of their full name
func (r *Repository) WalkReferences(f backend.RefWalkFunc) error {
	return r.b.WalkReferences(f)
}
