package git

import (
	"regexp"
	"strings"

	"github.com/wyag/git-go/ginternals"
	"github.com/wyag/git-go/ginternals/object"
	"golang.org/x/xerrors"
)

// hexPrefixRE matches a candidate abbreviated or full object id.
var hexPrefixRE = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// Resolve turns a user-provided name into a single object id:
// candidates are accumulated across HEAD, a hex-prefix match, and
// refs/tags, refs/heads, refs/remotes lookups, all before a decision is
// made, so ambiguity across candidates is never masked by
// short-circuiting on the first match.
// ginternals.ErrRevisionNotFound is returned when no candidate matches;
// ginternals.ErrRevisionAmbiguous is returned when more than one does.
func (r *Repository) Resolve(name string) (ginternals.Oid, error) {
	candidates, err := r.resolveCandidates(name)
	if err != nil {
		return ginternals.NullOid, err
	}

	switch len(candidates) {
	case 0:
		return ginternals.NullOid, xerrors.Errorf("%s: %w", name, ginternals.ErrRevisionNotFound)
	case 1:
		return candidates[0], nil
	default:
		return ginternals.NullOid, xerrors.Errorf("%s matches multiple objects (%s): %w",
			name, strings.Join(hexStrings(candidates), ", "), ginternals.ErrRevisionAmbiguous)
	}
}

func hexStrings(oids []ginternals.Oid) []string {
	out := make([]string, len(oids))
	for i, o := range oids {
		out[i] = o.String()
	}
	return out
}

func (r *Repository) resolveCandidates(name string) ([]ginternals.Oid, error) {
	seen := map[ginternals.Oid]struct{}{}
	var out []ginternals.Oid
	add := func(oid ginternals.Oid) {
		if _, ok := seen[oid]; ok {
			return
		}
		seen[oid] = struct{}{}
		out = append(out, oid)
	}

	// Rule 1: HEAD resolves on its own, no other rule applies to it.
	// A zero target means the branch HEAD points at doesn't exist yet
	// (fresh repository, no commit), which isn't a candidate.
	if name == ginternals.Head {
		ref, err := r.b.Reference(ginternals.Head)
		if err != nil {
			if xerrors.Is(err, ginternals.ErrRefNotFound) {
				return out, nil
			}
			return nil, err
		}
		if !ref.Target().IsZero() {
			add(ref.Target())
		}
		return out, nil
	}

	// Rule 2: hex prefix, 4 to 40 characters.
	if hexPrefixRE.MatchString(name) {
		oids, err := r.b.ResolvePrefix(strings.ToLower(name))
		if err != nil {
			return nil, xerrors.Errorf("could not resolve prefix %s: %w", name, err)
		}
		for _, oid := range oids {
			add(oid)
		}
	}

	// Rules 3-5: refs/tags, refs/heads, refs/remotes, in that order.
	for _, refName := range []string{
		ginternals.LocalTagFullName(name),
		ginternals.LocalBranchFullName(name),
		ginternals.RemoteBranchFullName(name),
	} {
		ref, err := r.b.Reference(refName)
		if err != nil {
			if xerrors.Is(err, ginternals.ErrRefNotFound) {
				continue
			}
			return nil, err
		}
		add(ref.Target())
	}

	return out, nil
}

// ResolveToKind resolves name and then follows tag and commit
// indirection until an object of kind k is reached. With follow set to
// false the resolved object must already be of kind k.
func (r *Repository) ResolveToKind(name string, k object.Type, follow bool) (ginternals.Oid, error) {
	oid, err := r.Resolve(name)
	if err != nil {
		return ginternals.NullOid, err
	}
	return r.typeFollow(oid, k, follow)
}

func (r *Repository) typeFollow(oid ginternals.Oid, k object.Type, follow bool) (ginternals.Oid, error) {
	for {
		o, err := r.GetObject(oid)
		if err != nil {
			return ginternals.NullOid, err
		}
		if o.Type() == k {
			return oid, nil
		}
		if !follow {
			return ginternals.NullOid, xerrors.Errorf("%s is a %s, not a %s: %w",
				oid.String(), o.Type(), k, ginternals.ErrRevisionNotFound)
		}

		switch o.Type() {
		case object.TypeTag:
			tag, err := o.AsTag()
			if err != nil {
				return ginternals.NullOid, err
			}
			oid = tag.Target()
		case object.TypeCommit:
			if k != object.TypeTree {
				return ginternals.NullOid, xerrors.Errorf("%s: %w", oid.String(), ginternals.ErrRevisionNotFound)
			}
			c, err := o.AsCommit()
			if err != nil {
				return ginternals.NullOid, err
			}
			oid = c.TreeID()
		default:
			return ginternals.NullOid, xerrors.Errorf("%s: %w", oid.String(), ginternals.ErrRevisionNotFound)
		}
	}
}
