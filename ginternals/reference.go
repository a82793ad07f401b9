package ginternals

import (
	"bytes"
	"strings"

	"golang.org/x/xerrors"
)

// Well-known reference names
const (
	// Head is a reference to the current branch, or to a commit if
	// we're in detached-HEAD state
	Head = "HEAD"
	// Master is the default branch name used when none is specified
	Master = "master"
)

// maxRefResolveDepth bounds the number of symbolic indirections
// ResolveReference will follow before giving up. The reference model has
// no cycle-detection protocol of its own, so this
// is the implementation's defense against a symbolic ref that points at
// itself, directly or indirectly.
const maxRefResolveDepth = 10

// ReferenceType represents the type of a reference
type ReferenceType int8

const (
	// OidReference represents a reference that targets an Oid directly
	OidReference ReferenceType = 1
	// SymbolicReference represents a reference that targets another
	// reference
	SymbolicReference ReferenceType = 2
)

// Reference represents a git reference: a named pointer to an Oid, either
// direct or through a chain of symbolic indirections.
// https://git-scm.com/book/en/v2/Git-Internals-Git-References
type Reference struct {
	name   string
	target string
	id     Oid
	typ    ReferenceType
}

// NewReference returns a new Reference that targets an object directly
func NewReference(name string, target Oid) *Reference {
	return &Reference{
		typ:  OidReference,
		name: name,
		id:   target,
	}
}

// NewSymbolicReference returns a new Reference that targets another
// reference, e.g. HEAD targeting refs/heads/master.
func NewSymbolicReference(name, target string) *Reference {
	return &Reference{
		typ:    SymbolicReference,
		name:   name,
		target: target,
	}
}

// Name returns the full name of the reference, e.g. refs/heads/master
func (ref *Reference) Name() string {
	return ref.name
}

// Target returns the Oid targeted by the reference. For a symbolic
// reference this is only populated once the reference has been resolved.
func (ref *Reference) Target() Oid {
	return ref.id
}

// Type returns the type of the reference
func (ref *Reference) Type() ReferenceType {
	return ref.typ
}

// SymbolicTarget returns the name of the reference this one points to.
// Only meaningful when Type() is SymbolicReference.
func (ref *Reference) SymbolicTarget() string {
	return ref.target
}

// RefContent represents a method that returns the raw content of a
// reference file, decoupling resolution from any specific backend.
type RefContent func(name string) ([]byte, error)

// ResolveReference resolves a (possibly symbolic) reference down to the
// Oid it ultimately targets. A missing reference surfaces whatever error
// finder returns (typically ErrRefNotFound) — except when it's the
// target of a symbolic reference: a freshly initialized repository's
// HEAD legitimately points at a branch that doesn't exist yet, so that
// case returns the symbolic Reference with a zero Target().
func ResolveReference(name string, finder RefContent) (*Reference, error) {
	return resolveRef(name, finder, 0)
}

func resolveRef(name string, finder RefContent, depth int) (*Reference, error) {
	if depth > maxRefResolveDepth {
		return nil, xerrors.Errorf("%s: %w", name, ErrRefCycle)
	}
	if !IsRefNameValid(name) {
		return nil, xerrors.Errorf("%q: %w", name, ErrRefNameInvalid)
	}

	data, err := finder(name)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimRight(data, "\n")
	data = bytes.TrimSpace(data)

	if bytes.HasPrefix(data, []byte("ref: ")) {
		target := string(data[len("ref: "):])
		ref := &Reference{
			typ:    SymbolicReference,
			name:   name,
			target: target,
		}
		resolved, err := resolveRef(target, finder, depth+1)
		switch {
		case err == nil:
			ref.id = resolved.id
		case xerrors.Is(err, ErrRefNotFound):
			// unborn branch: the chain is valid, it just doesn't point
			// at anything yet
		default:
			return nil, err
		}
		return ref, nil
	}

	oid, err := NewOidFromHex(string(data))
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", name, ErrRefInvalid)
	}
	return &Reference{
		typ:  OidReference,
		name: name,
		id:   oid,
	}, nil
}

// IsRefNameValid returns whether name is a syntactically valid reference
// name. This follows the same rules git itself applies.
// https://stackoverflow.com/a/12093994/382879
func IsRefNameValid(name string) bool {
	if name == "" || name == "/" || name[len(name)-1] == '/' || name[len(name)-1] == '.' {
		return false
	}

	for i, c := range name {
		if c < 32 || c == 127 {
			return false
		}
		switch c {
		case '*', '?', '!', '^', ' ', '[', '\\', ':', '~':
			return false
		}
		if i < len(name)-1 {
			switch name[i : i+2] {
			case "@{", "..":
				return false
			}
		}
	}

	for _, s := range strings.Split(name, "/") {
		if s == "" || s[0] == '.' || s[len(s)-1] == '.' || strings.HasSuffix(s, ".lock") {
			return false
		}
	}

	return true
}
