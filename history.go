package git

import (
	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"golang.org/x/xerrors"
)

// CommitWalkFunc is run on every commit visited by WalkHistory
type CommitWalkFunc func(c *object.Commit) error

// WalkHistory visits every commit reachable from start by following
// parent edges, each exactly once, and runs f on it. Visit order is
// unspecified beyond "a commit is never visited before at least one of
// its children has been"; callers that need a specific topological or
// chronological order should sort afterwards. Uses an explicit stack
// rather than recursion so deep histories can't exhaust the call
// stack.
func (r *Repository) WalkHistory(start ginternals.Oid, f CommitWalkFunc) error {
	seen := map[ginternals.Oid]struct{}{}
	stack := []ginternals.Oid{start}

	for len(stack) > 0 {
		oid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[oid]; ok {
			continue
		}
		seen[oid] = struct{}{}

		c, err := r.GetCommit(oid)
		if err != nil {
			return xerrors.Errorf("could not load commit %s: %w", oid.String(), err)
		}
		if err := f(c); err != nil {
			return err
		}
		stack = append(stack, c.ParentIDs()...)
	}
	return nil
}
