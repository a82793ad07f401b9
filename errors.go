package git

import "errors"

// Errors returned while opening, creating, or locating a repository.
var (
	// ErrNotARepo is returned when path/.git is missing or not a directory
	ErrNotARepo = errors.New("not a git repository")

	// ErrBadVersion is returned when core.repositoryformatversion isn't 0
	ErrBadVersion = errors.New("unsupported repository format version")

	// ErrRepoNotEmpty is returned when trying to create a repository over
	// an existing, non-empty .git directory
	ErrRepoNotEmpty = errors.New("repository already exists")

	// ErrNotADir is returned when a repository path exists but isn't a
	// directory
	ErrNotADir = errors.New("path exists and is not a directory")

	// ErrRepoNotFound is returned when no .git directory was found
	// ascending from the starting path to the filesystem root
	ErrRepoNotFound = errors.New("no git repository found")
)
