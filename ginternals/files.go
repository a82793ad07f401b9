package ginternals

import "path"

// Well-known paths rooted at the gitdir. We keep these in unix form since
// that's how reference names must be stored; backends are responsible
// for converting to the host's path separator when touching the
// filesystem.
const (
	RefsPath        = "refs"
	RefsTagsPath    = RefsPath + "/tags"
	RefsHeadsPath   = RefsPath + "/heads"
	RefsRemotesPath = RefsPath + "/remotes"
	ObjectsPath     = "objects"
)

// LocalTagFullName returns the full ref name of a tag.
// e.g. for "v1" returns "refs/tags/v1"
func LocalTagFullName(shortName string) string {
	return path.Join(RefsTagsPath, shortName)
}

// LocalBranchFullName returns the full ref name of a branch.
// e.g. for "main" returns "refs/heads/main"
func LocalBranchFullName(shortName string) string {
	return path.Join(RefsHeadsPath, shortName)
}

// RemoteBranchFullName returns the full ref name of a remote-tracking
// branch. e.g. for "origin/main" returns "refs/remotes/origin/main"
func RemoteBranchFullName(shortName string) string {
	return path.Join(RefsRemotesPath, shortName)
}
